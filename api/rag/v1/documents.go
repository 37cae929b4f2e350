package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// ListDocumentsReq 已入库文档列表请求
type ListDocumentsReq struct {
	g.Meta         `path:"/documents" method:"get" tags:"rag" summary:"列出已入库文档"`
	CollectionName string `p:"collection_name"` // 集合名过滤（可选）
}

// DocumentRecord 文档登记记录
type DocumentRecord struct {
	ID             string `json:"id"`              // 文档ID
	CollectionName string `json:"collection_name"` // 所属集合
	DocType        string `json:"doc_type"`        // 文档类型标签
	FileName       string `json:"file_name"`       // 文件名
	Loader         string `json:"loader"`          // 使用的加载策略
	ChunkCount     int    `json:"chunk_count"`     // 写入的分块数
	Status         int8   `json:"status"`          // 0=处理中 1=已完成 2=失败
	CreateTime     string `json:"create_time"`     // 登记时间
}

// ListDocumentsRes 已入库文档列表响应
type ListDocumentsRes struct {
	Documents []DocumentRecord `json:"documents"` // 文档记录列表
	Total     int              `json:"total"`     // 记录数量
}

package v1

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

// UploadReq 文档上传入库请求
// file 与 url 二选一，file 优先
type UploadReq struct {
	g.Meta         `path:"/upload" method:"post" mime:"multipart/form-data" tags:"rag" summary:"上传PDF文档并入库"`
	File           *ghttp.UploadFile `p:"file" type:"file"`                                     // 上传的PDF文件
	FileURL        string            `p:"url"`                                                 // 远程PDF地址（与file二选一）
	CollectionName string            `p:"collection_name" d:"default_collection"`              // 目标集合名
	DocType        string            `p:"doc_type" d:"GENERIC"`                                // 文档类型标签
	Loader         string            `p:"loader" d:"pymupdf"`                                  // 加载策略: pymupdf / smart
}

// UploadRes 文档上传入库响应
type UploadRes struct {
	Message       string `json:"message"`        // 结果描述
	Status        string `json:"status"`         // success / failed
	DocumentsSize int    `json:"documents_size"` // 写入的分块数量
}

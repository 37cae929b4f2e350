package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// ListCollectionsReq 集合列表请求
type ListCollectionsReq struct {
	g.Meta `path:"/collections" method:"get" tags:"rag" summary:"列出所有集合"`
}

// ListCollectionsRes 集合列表响应
type ListCollectionsRes struct {
	Collections []string `json:"collections"` // 集合名列表
	Total       int      `json:"total"`       // 集合数量
}

// DeleteCollectionReq 删除集合请求
type DeleteCollectionReq struct {
	g.Meta         `path:"/collections/:collection_name" method:"delete" tags:"rag" summary:"删除集合"`
	CollectionName string `p:"collection_name" v:"required#collection_name不能为空"` // 要删除的集合名
}

// DeleteCollectionRes 删除集合响应
type DeleteCollectionRes struct {
	Message string `json:"message"` // 结果描述
	Status  string `json:"status"`  // success / failed
}

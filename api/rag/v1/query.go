package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// QueryReq 检索问答请求
type QueryReq struct {
	g.Meta         `path:"/query" method:"get" tags:"rag" summary:"检索并合成答案"`
	Question       string `p:"q" v:"required#q不能为空"`                             // 用户问题
	CollectionName string `p:"collection_name" d:"default_collection"`           // 检索的集合名
	DocType        string `p:"doc_type"`                                         // 文档类型过滤（可选）
	ResponseMode   string `p:"response_mode" d:"compact"`                        // 答案合成模式
	TargetLanguage string `p:"target_language"`                                  // 答案翻译目标语言（可选）
}

// QueryRes 检索问答响应
type QueryRes struct {
	Question string           `json:"question"` // 原始问题
	Answer   string           `json:"answer"`   // 合成的答案
	Metadata []map[string]any `json:"metadata"` // 来源节点元数据记录
}

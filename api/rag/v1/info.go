package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// InfoReq 服务信息请求
type InfoReq struct {
	g.Meta `path:"/info" method:"get" tags:"rag" summary:"服务信息"`
}

// ResponseModeInfo 合成模式目录条目
type ResponseModeInfo struct {
	Name        string `json:"name"`        // 模式名
	Value       string `json:"value"`       // 机器可读取值
	Description string `json:"description"` // 行为描述
}

// InfoRes 服务信息响应
type InfoRes struct {
	Service       string             `json:"service"`        // 服务名
	Version       string             `json:"version"`        // 版本号
	VectorStore   string             `json:"vector_store"`   // 向量存储类型
	EmbedModel    string             `json:"embed_model"`    // embedding 模型名
	ChatModel     string             `json:"chat_model"`     // chat 模型名
	ResponseModes []ResponseModeInfo `json:"response_modes"` // 合成模式目录
	Loaders       []string           `json:"loaders"`        // 支持的加载策略
}

package rag

import (
	"context"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	"github.com/gobia/ragapi/core/loader"
	"github.com/gobia/ragapi/core/retriever"
	"github.com/gogf/gf/v2/frame/g"
)

// Info 服务信息接口
func (c *ControllerV1) Info(ctx context.Context, req *v1.InfoReq) (res *v1.InfoRes, err error) {
	catalog := retriever.ModeCatalog()
	modes := make([]v1.ResponseModeInfo, 0, len(catalog))
	for _, info := range catalog {
		modes = append(modes, v1.ResponseModeInfo{
			Name:        info.Name,
			Value:       info.Value,
			Description: info.Description,
		})
	}

	return &v1.InfoRes{
		Service:       "ragapi",
		Version:       "1.0.0",
		VectorStore:   g.Cfg().MustGet(ctx, "vectorStore.type", "milvus").String(),
		EmbedModel:    g.Cfg().MustGet(ctx, "embedding.model", "").String(),
		ChatModel:     g.Cfg().MustGet(ctx, "chat.model", "").String(),
		ResponseModes: modes,
		Loaders:       []string{string(loader.StrategyStructural), string(loader.StrategySemantic)},
	}, nil
}

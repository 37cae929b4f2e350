package rag

import (
	"context"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	ragLogic "github.com/gobia/ragapi/internal/logic/rag"
	"github.com/gogf/gf/v2/frame/g"
)

// Query 检索问答接口
func (c *ControllerV1) Query(ctx context.Context, req *v1.QueryReq) (res *v1.QueryRes, err error) {
	g.Log().Infof(ctx, "Query request received - Collection: %s, ResponseMode: %s", req.CollectionName, req.ResponseMode)

	result, err := ragLogic.Query(ctx, req.CollectionName, req.Question, req.DocType, req.ResponseMode, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	return &v1.QueryRes{
		Question: result.Question,
		Answer:   result.Answer,
		Metadata: result.Metadata,
	}, nil
}

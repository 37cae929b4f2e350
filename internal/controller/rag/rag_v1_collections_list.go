package rag

import (
	"context"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	ragLogic "github.com/gobia/ragapi/internal/logic/rag"
)

// ListCollections 集合列表接口
func (c *ControllerV1) ListCollections(ctx context.Context, req *v1.ListCollectionsReq) (res *v1.ListCollectionsRes, err error) {
	collections, err := ragLogic.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	return &v1.ListCollectionsRes{
		Collections: collections,
		Total:       len(collections),
	}, nil
}

package rag

import (
	"context"
	"fmt"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	ragLogic "github.com/gobia/ragapi/internal/logic/rag"
	"github.com/gogf/gf/v2/frame/g"
)

// DeleteCollection 删除集合接口
func (c *ControllerV1) DeleteCollection(ctx context.Context, req *v1.DeleteCollectionReq) (res *v1.DeleteCollectionRes, err error) {
	g.Log().Infof(ctx, "DeleteCollection request received - Collection: %s", req.CollectionName)

	if err := ragLogic.DeleteCollection(ctx, req.CollectionName); err != nil {
		return nil, err
	}

	return &v1.DeleteCollectionRes{
		Message: fmt.Sprintf("Collection %s deleted", req.CollectionName),
		Status:  "success",
	}, nil
}

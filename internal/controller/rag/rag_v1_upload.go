package rag

import (
	"context"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	ragLogic "github.com/gobia/ragapi/internal/logic/rag"
	"github.com/gogf/gf/v2/frame/g"
)

// Upload 文档上传入库接口
func (c *ControllerV1) Upload(ctx context.Context, req *v1.UploadReq) (res *v1.UploadRes, err error) {
	g.Log().Infof(ctx, "Upload request received - Collection: %s, DocType: %s, Loader: %s", req.CollectionName, req.DocType, req.Loader)

	out, err := ragLogic.Upload(ctx, &ragLogic.UploadInput{
		File:           req.File,
		FileURL:        req.FileURL,
		CollectionName: req.CollectionName,
		DocType:        req.DocType,
		Loader:         req.Loader,
	})
	if err != nil {
		return nil, err
	}

	return &v1.UploadRes{
		Message:       "Documents uploaded and processed successfully",
		Status:        "success",
		DocumentsSize: out.DocumentsSize,
	}, nil
}

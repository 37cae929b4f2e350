package rag

import (
	"context"

	v1 "github.com/gobia/ragapi/api/rag/v1"
	ragLogic "github.com/gobia/ragapi/internal/logic/rag"
)

// ListDocuments 已入库文档列表接口
func (c *ControllerV1) ListDocuments(ctx context.Context, req *v1.ListDocumentsReq) (res *v1.ListDocumentsRes, err error) {
	docs, err := ragLogic.ListDocuments(ctx, req.CollectionName)
	if err != nil {
		return nil, err
	}

	records := make([]v1.DocumentRecord, 0, len(docs))
	for _, doc := range docs {
		record := v1.DocumentRecord{
			ID:             doc.ID,
			CollectionName: doc.CollectionName,
			DocType:        doc.DocType,
			FileName:       doc.FileName,
			Loader:         doc.Loader,
			ChunkCount:     doc.ChunkCount,
			Status:         doc.Status,
		}
		if doc.CreateTime != nil {
			record.CreateTime = doc.CreateTime.Format("2006-01-02 15:04:05")
		}
		records = append(records, record)
	}

	return &v1.ListDocumentsRes{
		Documents: records,
		Total:     len(records),
	}, nil
}

package dao

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	gormModel "github.com/gobia/ragapi/internal/model/gorm"
)

// CreateDocument 登记一条文档记录
func CreateDocument(ctx context.Context, doc *gormModel.RagDocuments) error {
	err := GetDB().WithContext(ctx).Create(doc).Error
	if err != nil {
		g.Log().Errorf(ctx, "Failed to create document record %s: %v", doc.ID, err)
		return err
	}
	return nil
}

// UpdateDocumentStatus 更新文档状态与分块数量
func UpdateDocumentStatus(ctx context.Context, docId string, status int8, chunkCount int) error {
	err := GetDB().WithContext(ctx).
		Model(&gormModel.RagDocuments{}).
		Where("id = ?", docId).
		Updates(map[string]any{
			"status":      status,
			"chunk_count": chunkCount,
		}).Error
	if err != nil {
		g.Log().Errorf(ctx, "Failed to update document status %s: %v", docId, err)
		return err
	}
	return nil
}

// UpdateDocumentArchive 补记归档位置
func UpdateDocumentArchive(ctx context.Context, docId, localPath, bucket, location string) error {
	err := GetDB().WithContext(ctx).
		Model(&gormModel.RagDocuments{}).
		Where("id = ?", docId).
		Updates(map[string]any{
			"local_file_path": localPath,
			"rustfs_bucket":   bucket,
			"rustfs_location": location,
		}).Error
	if err != nil {
		g.Log().Errorf(ctx, "Failed to update document archive %s: %v", docId, err)
		return err
	}
	return nil
}

// ListDocuments 按集合名列出文档记录，collectionName 为空时返回全部
func ListDocuments(ctx context.Context, collectionName string) ([]gormModel.RagDocuments, error) {
	var docs []gormModel.RagDocuments
	query := GetDB().WithContext(ctx).Order("create_time DESC")
	if collectionName != "" {
		query = query.Where("collection_name = ?", collectionName)
	}
	if err := query.Find(&docs).Error; err != nil {
		g.Log().Errorf(ctx, "Failed to list documents: %v", err)
		return nil, err
	}
	return docs, nil
}

// DeleteDocumentsByCollection 集合删除后清理对应登记记录
func DeleteDocumentsByCollection(ctx context.Context, collectionName string) error {
	err := GetDB().WithContext(ctx).
		Where("collection_name = ?", collectionName).
		Delete(&gormModel.RagDocuments{}).Error
	if err != nil {
		g.Log().Errorf(ctx, "Failed to delete document records for collection %s: %v", collectionName, err)
		return err
	}
	return nil
}

package rag

import (
	"context"
	"os"
	"time"

	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/errors"
	"github.com/gobia/ragapi/core/file_store"
	"github.com/gobia/ragapi/core/loader"
	"github.com/gobia/ragapi/core/retriever"
	"github.com/gobia/ragapi/internal/dao"
	gormModel "github.com/gobia/ragapi/internal/model/gorm"
	"github.com/gobia/ragapi/internal/service"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/google/uuid"
)

// UploadInput 文档入库参数
type UploadInput struct {
	File           *ghttp.UploadFile
	FileURL        string
	CollectionName string
	DocType        string
	Loader         string
}

// UploadOutput 文档入库结果
type UploadOutput struct {
	DocumentsSize int
}

// Upload 文档入库：落盘 → 加载 → 管线入库 → 归档 → 登记
// 整体受 rag.uploadTimeout 墙钟预算约束，超时返回错误，
// 但已写入向量库的分块不回滚
func Upload(ctx context.Context, in *UploadInput) (*UploadOutput, error) {
	if !common.ValidateCollectionName(in.CollectionName) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid collection name: %s", in.CollectionName)
	}
	if in.DocType == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "doc_type is required")
	}

	// 加载策略在任何加载工作前校验
	strategy, err := loader.ParseStrategy(in.Loader)
	if err != nil {
		return nil, err
	}

	filePath, fileName, cleanup, err := resolveSource(ctx, in)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// 文档登记是尽力而为的，失败不阻塞入库
	docId := uuid.New().String()
	if dao.Enabled() {
		now := time.Now()
		if err := dao.CreateDocument(ctx, &gormModel.RagDocuments{
			ID:             docId,
			CollectionName: in.CollectionName,
			DocType:        in.DocType,
			FileName:       fileName,
			Loader:         string(strategy),
			Status:         gormModel.DocStatusIngesting,
			CreateTime:     &now,
		}); err != nil {
			g.Log().Warningf(ctx, "Document registry write failed, continuing: %v", err)
		}
	}

	cfg := service.GetRagConfig(ctx)
	ingestCtx, cancel := context.WithTimeout(ctx, cfg.UploadTimeout)
	defer cancel()

	count, err := ingest(ingestCtx, strategy, filePath, in.CollectionName, in.DocType)
	if err != nil {
		if dao.Enabled() {
			_ = dao.UpdateDocumentStatus(ctx, docId, gormModel.DocStatusFailed, 0)
		}
		if ingestCtx.Err() == context.DeadlineExceeded {
			return nil, errors.Newf(errors.ErrUploadTimeout, "upload processing exceeded %s: %v", cfg.UploadTimeout, err)
		}
		return nil, err
	}

	archiveOriginal(ctx, docId, in.CollectionName, fileName, filePath)

	if dao.Enabled() {
		_ = dao.UpdateDocumentStatus(ctx, docId, gormModel.DocStatusReady, count)
	}

	g.Log().Infof(ctx, "Upload complete: collection=%s doc_type=%s file=%s chunks=%d", in.CollectionName, in.DocType, fileName, count)
	return &UploadOutput{DocumentsSize: count}, nil
}

// resolveSource 解析文档来源：上传文件落临时盘，URL 直接透传给加载器
func resolveSource(ctx context.Context, in *UploadInput) (filePath, fileName string, cleanup func(), err error) {
	noop := func() {}

	if in.File != nil {
		fileName = in.File.Filename
		src, err := in.File.Open()
		if err != nil {
			return "", "", noop, errors.Newf(errors.ErrFileUploadFailed, "failed to open upload file: %v", err)
		}
		defer src.Close()

		tmpPath, err := file_store.SaveTempFile(ctx, fileName, src)
		if err != nil {
			return "", "", noop, err
		}
		return tmpPath, fileName, func() {
			if err := os.Remove(tmpPath); err != nil {
				g.Log().Warningf(ctx, "Failed to remove temp file %s: %v", tmpPath, err)
			}
		}, nil
	}

	if in.FileURL != "" {
		if !common.IsURL(in.FileURL) {
			return "", "", noop, errors.Newf(errors.ErrInvalidParameter, "url must be an http(s) address")
		}
		return in.FileURL, file_store.GetFileNameFromURL(in.FileURL), noop, nil
	}

	return "", "", noop, errors.Newf(errors.ErrInvalidParameter, "either file or url is required")
}

// ingest 按策略加载文档并写入向量库
func ingest(ctx context.Context, strategy loader.Strategy, filePath, collection, docType string) (int, error) {
	var (
		ldr loader.Loader
		err error
	)
	switch strategy {
	case loader.StrategySemantic:
		vm, verr := common.GetVisionModel(ctx)
		if verr != nil {
			return 0, errors.Newf(errors.ErrLoaderFailed, "semantic loader requires a configured model: %v", verr)
		}
		ldr, err = loader.NewSemanticLoader(ctx, vm)
	default:
		ldr, err = loader.NewStructuralLoader(ctx)
	}
	if err != nil {
		return 0, err
	}

	fragments, err := ldr.Load(ctx, filePath)
	if err != nil {
		return 0, err
	}

	pipeline, err := service.GetPipeline(ctx)
	if err != nil {
		return 0, err
	}
	return pipeline.Ingest(ctx, fragments, collection, docType)
}

// archiveOriginal 原始文件归档，失败只记录不影响入库结果
func archiveOriginal(ctx context.Context, docId, collection, fileName, filePath string) {
	if common.IsURL(filePath) {
		return
	}

	src, err := os.Open(filePath)
	if err != nil {
		g.Log().Warningf(ctx, "Archive skipped, cannot reopen %s: %v", filePath, err)
		return
	}
	defer src.Close()

	var (
		localPath string
		bucket    string
		key       string
	)
	if file_store.GetStorageType() == file_store.StorageTypeRustFS {
		rc := file_store.GetRustfsConfig()
		localPath, key, err = file_store.ArchiveToRustFS(ctx, rc.Client, rc.BucketName, collection, fileName, src)
		bucket = rc.BucketName
	} else {
		localPath, err = file_store.ArchiveToLocal(ctx, collection, fileName, src)
	}
	if err != nil {
		g.Log().Warningf(ctx, "Archive failed for %s: %v", fileName, err)
		return
	}

	if dao.Enabled() {
		_ = dao.UpdateDocumentArchive(ctx, docId, localPath, bucket, key)
	}
}

// Query 检索问答
// targetLanguage 非空时对合成的答案做翻译
func Query(ctx context.Context, collection, question, docType, responseMode, targetLanguage string) (*retriever.QueryResult, error) {
	// 未知合成模式在任何检索或模型调用前拒绝
	mode, err := retriever.ParseResponseMode(responseMode)
	if err != nil {
		return nil, err
	}

	engine, err := service.GetRetrievalEngine(ctx)
	if err != nil {
		return nil, err
	}

	var docTypeFilter *string
	if docType != "" {
		docTypeFilter = &docType
	}

	result, err := engine.Query(ctx, collection, question, docTypeFilter, mode)
	if err != nil {
		return nil, err
	}

	if targetLanguage != "" && result.Answer != "" {
		tr, err := service.GetTranslator(ctx)
		if err != nil {
			return nil, err
		}
		translated, err := tr.Translate(ctx, result.Answer, targetLanguage)
		if err != nil {
			return nil, err
		}
		result.Answer = translated.Translated
	}

	return result, nil
}

// ListCollections 列出所有集合
func ListCollections(ctx context.Context) ([]string, error) {
	store, err := service.GetVectorStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.ListCollections(ctx)
}

// DeleteCollection 删除集合，集合不存在返回 404 语义的错误
func DeleteCollection(ctx context.Context, collectionName string) error {
	if !common.ValidateCollectionName(collectionName) {
		return errors.Newf(errors.ErrInvalidParameter, "invalid collection name: %s", collectionName)
	}

	store, err := service.GetVectorStore(ctx)
	if err != nil {
		return err
	}

	exists, err := store.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Newf(errors.ErrCollectionNotFound, "collection not found: %s", collectionName)
	}

	if err := store.DeleteCollection(ctx, collectionName); err != nil {
		return err
	}

	// 登记记录跟随集合一起清理
	if dao.Enabled() {
		if err := dao.DeleteDocumentsByCollection(ctx, collectionName); err != nil {
			g.Log().Warningf(ctx, "Failed to clean document records for %s: %v", collectionName, err)
		}
	}
	return nil
}

// ListDocuments 列出已入库文档登记记录
func ListDocuments(ctx context.Context, collectionName string) ([]gormModel.RagDocuments, error) {
	if !dao.Enabled() {
		return nil, errors.Newf(errors.ErrOperationFailed, "document registry is not configured")
	}
	return dao.ListDocuments(ctx, collectionName)
}

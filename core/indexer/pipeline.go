package indexer

import (
	"context"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/config"
	"github.com/gobia/ragapi/core/errors"
	"github.com/gobia/ragapi/core/vector_store"
	"github.com/gogf/gf/v2/frame/g"
)

// 单次向量库写入的分块条数
const insertBatchSize = 100

// Pipeline 文档入库管线：分割 → 元数据规整 → 富化 → 向量化 → 顺序写入
type Pipeline struct {
	splitter document.Transformer
	enricher *Enricher
	embedder Embedder
	store    vector_store.VectorStore
	dim      int
}

// NewPipeline 组装入库管线
// enricher 可为 nil（关闭富化），其余组件必填
func NewPipeline(ctx context.Context, cfg *config.RagConfig, embedder Embedder, store vector_store.VectorStore, enricher *Enricher, dim int) (*Pipeline, error) {
	if embedder == nil || store == nil {
		return nil, errors.Newf(errors.ErrInvalidParameter, "pipeline requires embedder and vector store")
	}

	splitter, err := NewSplitter(ctx, cfg.ChunkSize, cfg.OverlapSize)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		splitter: splitter,
		enricher: enricher,
		embedder: embedder,
		store:    store,
		dim:      dim,
	}, nil
}

// Ingest 将原始片段入库到指定集合，返回写入的分块数量
// 入库是追加式的：重复上传同一文档会产生并存的新节点
func (x *Pipeline) Ingest(ctx context.Context, fragments []*schema.Document, collection, docType string) (int, error) {
	if len(fragments) == 0 {
		return 0, errors.Newf(errors.ErrEmptyDocument, "no fragments to ingest")
	}

	chunks, err := SplitDocuments(ctx, x.splitter, fragments)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, errors.Newf(errors.ErrEmptyDocument, "splitting produced no chunks")
	}

	// 每个分块的元数据在写入前规整并打上文档类型
	for _, chunk := range chunks {
		chunk.MetaData = common.SanitizeMetadata(chunk.MetaData, docType)
	}

	if x.enricher != nil {
		chunks = x.enricher.Enrich(ctx, chunks)
		// 富化产生的新字段同样要过规整
		for _, chunk := range chunks {
			chunk.MetaData = common.SanitizeMetadata(chunk.MetaData, docType)
		}
	}

	vectors, err := EmbedChunks(ctx, x.embedder, chunks, x.dim)
	if err != nil {
		return 0, err
	}

	if err := x.store.EnsureCollection(ctx, collection); err != nil {
		return 0, err
	}

	// 批次串行写入，保证节点顺序与分块顺序一致
	inserted := 0
	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		ids, err := x.store.InsertVectors(ctx, collection, chunks[start:end], vectors[start:end])
		if err != nil {
			return inserted, errors.Newf(errors.ErrIngestionFailed, "insert failed for chunks %d-%d: %v", start, end-1, err)
		}
		inserted += len(ids)
	}

	g.Log().Infof(ctx, "Ingested %d chunks into collection %s (doc_type=%s)", inserted, collection, docType)
	return inserted, nil
}

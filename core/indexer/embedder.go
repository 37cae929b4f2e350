package indexer

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// 单次 embedding 请求最多携带的文本条数
const embedBatchSize = 10

// Embedder 文本向量化接口，生产实现为 common.CustomEmbedder
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string, dimensions int) ([][]float32, error)
}

// EmbedChunks 按批顺序向量化分块文本
// 批次串行执行以保持与分块顺序一致的结果序；任一批次失败整个入库失败，
// 错误信息指明失败的分块区间，不做内部重试
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []*schema.Document, dim int) ([][]float32, error) {
	if len(chunks) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Content)
		}

		batch, err := embedder.EmbedStrings(ctx, texts, dim)
		if err != nil {
			return nil, errors.Newf(errors.ErrEmbeddingFailed, "embedding failed for chunks %d-%d: %v", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, errors.Newf(errors.ErrEmbeddingFailed, "embedding returned %d vectors for %d chunks (%d-%d)", len(batch), len(texts), start, end-1)
		}
		vectors = append(vectors, batch...)
	}

	g.Log().Debugf(ctx, "Embedded %d chunks in %d batches", len(chunks), (len(chunks)+embedBatchSize-1)/embedBatchSize)
	return vectors, nil
}

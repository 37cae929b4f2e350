package indexer

import (
	"context"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
)

// NewSplitter 创建递归字符分割器
// 分隔符按优先级递减：段落 > 行 > 句 > 空格
func NewSplitter(ctx context.Context, chunkSize, overlapSize int) (document.Transformer, error) {
	if chunkSize <= 0 || overlapSize < 0 || overlapSize >= chunkSize {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid splitter config: chunkSize=%d overlapSize=%d", chunkSize, overlapSize)
	}

	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   chunkSize,
		OverlapSize: overlapSize,
		Separators:  []string{"\n\n", "\n", "。", ". ", " "},
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrIngestionFailed, "failed to create splitter: %v", err)
	}
	return splitter, nil
}

// SplitDocuments 对片段做二次分割，保留来源元数据
// 分割器会把父片段元数据复制到每个子块
func SplitDocuments(ctx context.Context, splitter document.Transformer, fragments []*schema.Document) ([]*schema.Document, error) {
	if len(fragments) == 0 {
		return []*schema.Document{}, nil
	}

	chunks, err := splitter.Transform(ctx, fragments)
	if err != nil {
		return nil, errors.Newf(errors.ErrIngestionFailed, "document splitting failed: %v", err)
	}
	return chunks, nil
}

package indexer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/config"
	"github.com/stretchr/testify/assert"
)

// fakeEmbedder 确定性向量桩，记录调用批次
type fakeEmbedder struct {
	batches [][]string
	err     error
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, dimensions int) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, texts)
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, dimensions)
	}
	return vectors, nil
}

// fakeStore 内存向量存储桩，记录写入顺序
type fakeStore struct {
	collections map[string]bool
	inserted    []*schema.Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string]bool)}
}

func (f *fakeStore) EnsureCollection(ctx context.Context, name string) error {
	f.collections[name] = true
	return nil
}

func (f *fakeStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	return f.collections[name], nil
}

func (f *fakeStore) ListCollections(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeStore) DeleteCollection(ctx context.Context, name string) error {
	delete(f.collections, name)
	return nil
}

func (f *fakeStore) InsertVectors(ctx context.Context, collection string, chunks []*schema.Document, vectors [][]float32) ([]string, error) {
	ids := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		f.inserted = append(f.inserted, chunk)
		ids = append(ids, fmt.Sprintf("id-%d", len(f.inserted)))
	}
	return ids, nil
}

func (f *fakeStore) Search(ctx context.Context, collection string, vector []float32, topK int, filterExpr string) ([]*schema.Document, error) {
	return []*schema.Document{}, nil
}

func testRagConfig() *config.RagConfig {
	return &config.RagConfig{
		ChunkSize:   200,
		OverlapSize: 20,
		TopK:        3,
	}
}

func TestPipelineIngest(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	embedder := &fakeEmbedder{}

	pipeline, err := NewPipeline(ctx, testRagConfig(), embedder, store, nil, 16)
	assert.NoError(t, err)

	fragments := []*schema.Document{
		{
			Content: strings.Repeat("第一页内容。", 60),
			MetaData: map[string]any{
				"file_path":  "/tmp/a.pdf",
				"page_label": 1,
			},
		},
		{
			Content: strings.Repeat("第二页内容。", 60),
			MetaData: map[string]any{
				"file_path":  "/tmp/a.pdf",
				"page_label": 2,
			},
		},
	}

	count, err := pipeline.Ingest(ctx, fragments, "test_collection", "manual")
	assert.NoError(t, err)
	assert.Greater(t, count, 0)
	assert.Equal(t, count, len(store.inserted))

	// 集合惰性创建
	assert.True(t, store.collections["test_collection"])

	// 每个写入分块的元数据都已规整
	for _, chunk := range store.inserted {
		assert.Equal(t, "manual", chunk.MetaData[common.MetaDocType])
		assert.Equal(t, "a.pdf", chunk.MetaData[common.MetaFileName])
	}
}

func TestPipelineIngestEmpty(t *testing.T) {
	ctx := context.Background()
	pipeline, err := NewPipeline(ctx, testRagConfig(), &fakeEmbedder{}, newFakeStore(), nil, 16)
	assert.NoError(t, err)

	_, err = pipeline.Ingest(ctx, nil, "test_collection", "manual")
	assert.Error(t, err)
}

func TestPipelineIngestEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	embedder := &fakeEmbedder{err: fmt.Errorf("upstream down")}

	pipeline, err := NewPipeline(ctx, testRagConfig(), embedder, store, nil, 16)
	assert.NoError(t, err)

	fragments := []*schema.Document{
		{Content: "content", MetaData: map[string]any{"page_label": 1}},
	}
	_, err = pipeline.Ingest(ctx, fragments, "test_collection", "manual")
	assert.Error(t, err)
	// 向量化失败时不写入任何分块
	assert.Empty(t, store.inserted)
}

func TestEmbedChunksBatching(t *testing.T) {
	ctx := context.Background()
	embedder := &fakeEmbedder{}

	chunks := make([]*schema.Document, 25)
	for i := range chunks {
		chunks[i] = &schema.Document{Content: fmt.Sprintf("chunk %d", i)}
	}

	vectors, err := EmbedChunks(ctx, embedder, chunks, 8)
	assert.NoError(t, err)
	assert.Len(t, vectors, 25)
	// 25 个分块按批大小 10 切成 3 批，顺序提交
	assert.Len(t, embedder.batches, 3)
	assert.Equal(t, "chunk 0", embedder.batches[0][0])
	assert.Equal(t, "chunk 20", embedder.batches[2][0])
}

func TestEmbedChunksEmpty(t *testing.T) {
	vectors, err := EmbedChunks(context.Background(), &fakeEmbedder{}, nil, 8)
	assert.NoError(t, err)
	assert.Empty(t, vectors)
}

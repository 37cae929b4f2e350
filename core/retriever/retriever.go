package retriever

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/errors"
	"github.com/gobia/ragapi/core/indexer"
	"github.com/gobia/ragapi/core/vector_store"
	"github.com/gogf/gf/v2/frame/g"
)

// QueryResult 一次检索问答的结果
type QueryResult struct {
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Metadata []map[string]any `json:"metadata"`
}

// Engine 检索问答引擎：向量召回 + 答案合成
type Engine struct {
	embedder    indexer.Embedder
	store       vector_store.VectorStore
	synthesizer *Synthesizer
	topK        int
	dim         int
}

// NewEngine 创建检索引擎
func NewEngine(embedder indexer.Embedder, store vector_store.VectorStore, synthesizer *Synthesizer, topK, dim int) (*Engine, error) {
	if embedder == nil || store == nil || synthesizer == nil {
		return nil, errors.Newf(errors.ErrInvalidParameter, "retrieval engine requires embedder, vector store and synthesizer")
	}
	if topK <= 0 {
		topK = 3
	}
	return &Engine{
		embedder:    embedder,
		store:       store,
		synthesizer: synthesizer,
		topK:        topK,
		dim:         dim,
	}, nil
}

// Query 在指定集合中检索并合成答案
// docType 非 nil 时检索按文档类型做精确过滤；
// 集合不存在时惰性创建后返回空结果集的答案
func (x *Engine) Query(ctx context.Context, collection, question string, docType *string, mode ResponseMode) (*QueryResult, error) {
	if !common.ValidateCollectionName(collection) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid collection name: %s", collection)
	}

	if err := x.store.EnsureCollection(ctx, collection); err != nil {
		return nil, err
	}

	nodes, err := x.retrieve(ctx, collection, question, docType)
	if err != nil {
		return nil, err
	}

	answer, err := x.synthesizer.Synthesize(ctx, mode, question, nodes)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Question: question,
		Answer:   answer,
		Metadata: x.sourceRecords(nodes),
	}, nil
}

// retrieve 向量召回 top-K 节点
func (x *Engine) retrieve(ctx context.Context, collection, question string, docType *string) ([]*schema.Document, error) {
	vectors, err := x.embedder.EmbedStrings(ctx, []string{question}, x.dim)
	if err != nil {
		return nil, errors.Newf(errors.ErrRetrievalFailed, "failed to embed question: %v", err)
	}
	if len(vectors) != 1 {
		return nil, errors.Newf(errors.ErrRetrievalFailed, "embedding returned %d vectors for one question", len(vectors))
	}

	var filterExpr string
	if docType != nil {
		filterExpr = vector_store.DocTypeFilterExpr(*docType)
	}

	nodes, err := x.store.Search(ctx, collection, vectors[0], x.topK, filterExpr)
	if err != nil {
		return nil, errors.Newf(errors.ErrRetrievalFailed, "vector search failed: %v", err)
	}

	g.Log().Debugf(ctx, "Retrieved %d nodes from collection %s", len(nodes), collection)
	return nodes, nil
}

// sourceRecords 将召回节点的元数据重整为来源记录列表，保持召回顺序
// 每个节点按自身存储的 doc_type 再次规整，入库前的遗漏在出口兜底
func (x *Engine) sourceRecords(nodes []*schema.Document) []map[string]any {
	records := make([]map[string]any, 0, len(nodes))
	for _, node := range nodes {
		nodeType, _ := node.MetaData[common.MetaDocType].(string)
		records = append(records, common.MetadataRecord(node.ID, node.MetaData, &nodeType))
	}
	return records
}

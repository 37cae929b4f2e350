package vector_store

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/errors"
	milvusModel "github.com/gobia/ragapi/internal/model/milvus"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/google/uuid"
	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
)

// MilvusStore Milvus向量数据库实现
type MilvusStore struct {
	client   *milvusclient.Client
	database string
	dim      int
}

// InitializeMilvusStore 按配置文件连接 Milvus 并创建存储实例
func InitializeMilvusStore(ctx context.Context) (VectorStore, error) {
	address := g.Cfg().MustGet(ctx, "milvus.address", "").String()
	database := g.Cfg().MustGet(ctx, "milvus.database", "default").String()
	dim := g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int()

	if address == "" {
		return nil, errors.Newf(errors.ErrVectorStoreInit, "milvus.address is required but not found in config file")
	}

	g.Log().Infof(ctx, "Connecting to Milvus at: %s, database: %s", address, database)

	client, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: address,
		DBName:  database,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreInit, "failed to create milvus client (address: %s, database: %s): %v", address, database, err)
	}

	return NewMilvusStore(&VectorStoreConfig{
		Type:     VectorStoreTypeMilvus,
		Client:   client,
		Database: database,
		Dim:      dim,
	})
}

// NewMilvusStore 创建Milvus向量存储实例
func NewMilvusStore(config *VectorStoreConfig) (VectorStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	client, ok := config.Client.(*milvusclient.Client)
	if !ok {
		return nil, fmt.Errorf("client must be *milvusclient.Client")
	}

	if config.Database == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}

	dim := config.Dim
	if dim <= 0 {
		dim = 1024
	}

	return &MilvusStore{
		client:   client,
		database: config.Database,
		dim:      dim,
	}, nil
}

// EnsureCollection 获取或创建集合
// 已存在时直接返回，不存在时按标准 chunk schema 创建并加载
func (m *MilvusStore) EnsureCollection(ctx context.Context, collectionName string) error {
	if !common.ValidateCollectionName(collectionName) {
		return errors.Newf(errors.ErrInvalidParameter, "invalid collection name: %s", collectionName)
	}

	exists, err := m.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	collSchema := &entity.Schema{
		CollectionName: collectionName,
		Description:    "Document chunks with embeddings",
		AutoID:         false,
		Fields:         milvusModel.GetStandardCollectionFields(fmt.Sprintf("%d", m.dim)),
	}

	err = m.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(collectionName, collSchema).WithIndexOptions(
		milvusclient.NewCreateIndexOption(collectionName, "vector", index.NewHNSWIndex(entity.L2, 64, 128))))
	if err != nil {
		return errors.Newf(errors.ErrVectorStoreInit, "failed to create Milvus collection: %v", err)
	}

	// Load collection into memory
	_, err = m.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(collectionName))
	if err != nil {
		return errors.Newf(errors.ErrVectorStoreInit, "failed to load Milvus collection: %v", err)
	}

	g.Log().Infof(ctx, "Collection '%s' created with dimension %d, index built and loaded", collectionName, m.dim)
	return nil
}

// CollectionExists 检查集合是否存在
func (m *MilvusStore) CollectionExists(ctx context.Context, collectionName string) (bool, error) {
	has, err := m.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(collectionName))
	if err != nil {
		return false, errors.Newf(errors.ErrVectorSearch, "failed to check if collection exists: %v", err)
	}
	return has, nil
}

// ListCollections 列出所有集合名称
func (m *MilvusStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := m.client.ListCollections(ctx, milvusclient.NewListCollectionOption())
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorSearch, "failed to list collections: %v", err)
	}
	return names, nil
}

// DeleteCollection 删除集合
func (m *MilvusStore) DeleteCollection(ctx context.Context, collectionName string) error {
	err := m.client.DropCollection(ctx, milvusclient.NewDropCollectionOption(collectionName))
	if err != nil {
		return errors.Newf(errors.ErrOperationFailed, "failed to delete collection: %v", err)
	}
	g.Log().Infof(ctx, "Collection '%s' deleted", collectionName)
	return nil
}

// InsertVectors 插入向量数据 - 直接使用float32向量
// 写入顺序与传入的 chunks 顺序一致
func (m *MilvusStore) InsertVectors(ctx context.Context, collectionName string, chunks []*schema.Document, vectors [][]float32) ([]string, error) {
	if len(chunks) != len(vectors) {
		return nil, errors.Newf(errors.ErrVectorInsert, "chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}

	ids := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	docTypes := make([]string, len(chunks))
	metadataList := make([][]byte, len(chunks))

	for idx, chunk := range chunks {
		// 生成chunk ID（如果不存在）
		if len(chunk.ID) == 0 {
			chunk.ID = uuid.New().String()
		}
		ids[idx] = chunk.ID

		// 截断文本（如果需要）
		texts[idx] = truncateString(chunk.Content, 65535)

		// doc_type 单独成列，保证过滤检索总是良定义
		docType, _ := chunk.MetaData[common.MetaDocType].(string)
		if docType == "" {
			return nil, errors.Newf(errors.ErrVectorInsert, "doc_type missing in metadata for chunk %s", chunk.ID)
		}
		docTypes[idx] = docType

		metaBytes, err := marshalMetadata(chunk.MetaData)
		if err != nil {
			return nil, errors.Newf(errors.ErrVectorInsert, "failed to marshal metadata for chunk %s: %v", chunk.ID, err)
		}
		metadataList[idx] = metaBytes
	}

	columns := []column.Column{
		column.NewColumnVarChar("id", ids),
		column.NewColumnVarChar("text", texts),
		column.NewColumnFloatVector("vector", m.dim, vectors),
		column.NewColumnVarChar("doc_type", docTypes),
		column.NewColumnJSONBytes("metadata", metadataList),
	}

	insertOpt := milvusclient.NewColumnBasedInsertOption(collectionName, columns...)
	result, err := m.client.Insert(ctx, insertOpt)
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorInsert, "failed to insert vectors: %v", err)
	}

	g.Log().Infof(ctx, "Successfully inserted %d vectors into collection '%s'", result.InsertCount, collectionName)
	return ids, nil
}

// Search 向量相似度检索
// 集合不存在时返回空结果（查询路径的 get-or-create 语义）
func (m *MilvusStore) Search(ctx context.Context, collectionName string, vector []float32, topK int, filterExpr string) ([]*schema.Document, error) {
	exists, err := m.CollectionExists(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []*schema.Document{}, nil
	}

	searchOpt := milvusclient.NewSearchOption(collectionName, topK, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField("vector").
		WithOutputFields("id", "text", "doc_type", "metadata").
		WithConsistencyLevel(entity.ClBounded)

	if filterExpr != "" {
		searchOpt = searchOpt.WithFilter(filterExpr)
	}

	results, err := m.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorSearch, "search has error: %v", err)
	}

	if len(results) == 0 {
		return []*schema.Document{}, nil
	}

	return convertResultsToDocuments(results[0].Fields, results[0].Scores)
}

// convertResultsToDocuments 转换搜索结果为文档
func convertResultsToDocuments(columns []column.Column, scores []float32) ([]*schema.Document, error) {
	if len(columns) == 0 {
		return []*schema.Document{}, nil
	}

	numDocs := columns[0].Len()
	result := make([]*schema.Document, numDocs)
	for i := range result {
		result[i] = &schema.Document{
			MetaData: make(map[string]any),
		}
	}

	for i := 0; i < numDocs && i < len(scores); i++ {
		result[i].WithScore(float64(scores[i]))
	}

	for _, col := range columns {
		switch col.Name() {
		case "id":
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					return nil, fmt.Errorf("failed to get id: %w", err)
				}
				if str, ok := val.(string); ok {
					result[i].ID = str
				}
			}
		case "text":
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					return nil, fmt.Errorf("failed to get text: %w", err)
				}
				if str, ok := val.(string); ok {
					result[i].Content = str
				}
			}
		case "metadata":
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil || val == nil {
					continue
				}

				var raw []byte
				switch v := val.(type) {
				case string:
					raw = []byte(v)
				case []byte:
					raw = v
				default:
					continue
				}

				var metadata map[string]any
				if err := sonic.Unmarshal(raw, &metadata); err == nil {
					for k, mv := range metadata {
						result[i].MetaData[k] = mv
					}
				}
			}
		default:
			// doc_type 等其他字段并入 metadata
			for i := 0; i < col.Len(); i++ {
				val, err := col.Get(i)
				if err != nil {
					continue
				}
				result[i].MetaData[col.Name()] = val
			}
		}
	}

	return result, nil
}

// Helper functions

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return []byte("{}"), nil
	}
	return sonic.Marshal(metadata)
}

// DocTypeFilterExpr 构造 doc_type 精确匹配过滤表达式
func DocTypeFilterExpr(docType string) string {
	return fmt.Sprintf(`doc_type == "%s"`, common.SanitizeMilvusString(docType))
}

package vector_store

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// VectorStoreType 向量数据库类型
type VectorStoreType string

const (
	VectorStoreTypeMilvus VectorStoreType = "milvus"
	// 未来可以扩展其他类型
	// VectorStoreTypeChroma VectorStoreType = "chroma"
	// VectorStoreTypeWeaviate VectorStoreType = "weaviate"
)

// VectorStoreConfig 向量数据库配置
type VectorStoreConfig struct {
	Type     VectorStoreType // 向量数据库类型
	Client   interface{}     // 客户端实例
	Database string          // 数据库名称
	Dim      int             // 向量维度
}

// VectorStore 向量数据库接口
// 集合惰性创建（首次引用时），从不隐式删除
type VectorStore interface {
	// EnsureCollection 获取或创建集合（get-or-create 语义）
	EnsureCollection(ctx context.Context, collectionName string) error

	// CollectionExists 检查集合是否存在
	CollectionExists(ctx context.Context, collectionName string) (bool, error)

	// ListCollections 列出所有集合名称
	ListCollections(ctx context.Context) ([]string, error)

	// DeleteCollection 删除集合
	DeleteCollection(ctx context.Context, collectionName string) error

	// InsertVectors 插入向量数据，按传入顺序写入，返回写入的 chunk ID 列表
	InsertVectors(ctx context.Context, collectionName string, chunks []*schema.Document, vectors [][]float32) ([]string, error)

	// Search 向量相似度检索，filterExpr 为空表示不过滤
	// 集合不存在时返回空结果而非错误
	Search(ctx context.Context, collectionName string, vector []float32, topK int, filterExpr string) ([]*schema.Document, error)
}

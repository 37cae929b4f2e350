package vector_store

import (
	"context"
	"fmt"

	"github.com/gogf/gf/v2/frame/g"
)

// NewVectorStore 按配置的类型创建向量存储实例
func NewVectorStore(ctx context.Context) (VectorStore, error) {
	storeType := VectorStoreType(g.Cfg().MustGet(ctx, "vectorStore.type", string(VectorStoreTypeMilvus)).String())

	switch storeType {
	case VectorStoreTypeMilvus:
		return InitializeMilvusStore(ctx)
	default:
		return nil, fmt.Errorf("unsupported vector store type: %s", storeType)
	}
}

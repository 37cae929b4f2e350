package service

import (
	"context"

	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/config"
	"github.com/gobia/ragapi/core/indexer"
	"github.com/gobia/ragapi/core/retriever"
	"github.com/gobia/ragapi/core/translator"
	"github.com/gobia/ragapi/core/vector_store"
	"github.com/gogf/gf/v2/frame/g"
)

// 进程级共享实例：启动时初始化一次，之后只读共享
var (
	vectorStore     vector_store.VectorStore
	embedder        *common.CustomEmbedder
	ragConfig       *config.RagConfig
	embeddingConfig *config.EmbeddingConfig
	pipeline        *indexer.Pipeline
	engine          *retriever.Engine
	textTranslator  *translator.Translator
)

// GetVectorStore 获取向量存储单例
func GetVectorStore(ctx context.Context) (vector_store.VectorStore, error) {
	if vectorStore != nil {
		return vectorStore, nil
	}
	store, err := vector_store.NewVectorStore(ctx)
	if err != nil {
		return nil, err
	}
	vectorStore = store
	return store, nil
}

// GetEmbedder 获取 embedding 客户端单例
func GetEmbedder(ctx context.Context) (*common.CustomEmbedder, error) {
	if embedder != nil {
		return embedder, nil
	}
	emb, err := common.NewEmbedding(ctx, GetEmbeddingConfig(ctx))
	if err != nil {
		return nil, err
	}
	embedder = emb
	return emb, nil
}

// GetEmbeddingConfig 获取 embedding 配置单例
func GetEmbeddingConfig(ctx context.Context) *config.EmbeddingConfig {
	if embeddingConfig == nil {
		embeddingConfig = config.LoadEmbeddingConfig(ctx)
	}
	return embeddingConfig
}

// GetRagConfig 获取管线配置单例
func GetRagConfig(ctx context.Context) *config.RagConfig {
	if ragConfig == nil {
		ragConfig = config.LoadRagConfig(ctx)
	}
	return ragConfig
}

// GetPipeline 获取入库管线单例
func GetPipeline(ctx context.Context) (*indexer.Pipeline, error) {
	if pipeline != nil {
		return pipeline, nil
	}

	cfg := GetRagConfig(ctx)
	emb, err := GetEmbedder(ctx)
	if err != nil {
		return nil, err
	}
	store, err := GetVectorStore(ctx)
	if err != nil {
		return nil, err
	}

	// 富化失败只降级不报错，chat 模型缺失时直接关闭富化
	var enricher *indexer.Enricher
	if cfg.EnableEnrich {
		cm, err := common.GetChatModel(ctx)
		if err != nil {
			g.Log().Warningf(ctx, "Chat model unavailable, metadata enrichment disabled: %v", err)
		} else {
			enricher = indexer.NewEnricher(cm, cfg.QuestionCount, cfg.TitleSampleChunks)
		}
	}

	p, err := indexer.NewPipeline(ctx, cfg, emb, store, enricher, GetEmbeddingConfig(ctx).Dim)
	if err != nil {
		return nil, err
	}
	pipeline = p
	return p, nil
}

// GetRetrievalEngine 获取检索引擎单例
func GetRetrievalEngine(ctx context.Context) (*retriever.Engine, error) {
	if engine != nil {
		return engine, nil
	}

	cfg := GetRagConfig(ctx)
	emb, err := GetEmbedder(ctx)
	if err != nil {
		return nil, err
	}
	store, err := GetVectorStore(ctx)
	if err != nil {
		return nil, err
	}

	cm, err := common.GetChatModel(ctx)
	if err != nil {
		g.Log().Warningf(ctx, "Chat model unavailable, synthesis modes requiring LLM will fail: %v", err)
		cm = nil
	}

	e, err := retriever.NewEngine(emb, store, retriever.NewSynthesizer(cm, cfg.ContextWindow), cfg.TopK, GetEmbeddingConfig(ctx).Dim)
	if err != nil {
		return nil, err
	}
	engine = e
	return e, nil
}

// GetTranslator 获取翻译器单例
func GetTranslator(ctx context.Context) (*translator.Translator, error) {
	if textTranslator != nil {
		return textTranslator, nil
	}
	cm, err := common.GetChatModel(ctx)
	if err != nil {
		return nil, err
	}
	defaultLanguage := g.Cfg().MustGet(ctx, "translate.defaultLanguage", "English").String()
	textTranslator = translator.NewTranslator(cm, defaultLanguage)
	return textTranslator, nil
}

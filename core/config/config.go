package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gogf/gf/v2/frame/g"
)

// ValidateConfiguration validates all required configuration items
func ValidateConfiguration(ctx context.Context) error {
	var missingConfigs []string
	var warnings []string

	// 验证 Milvus 配置
	milvusAddress := g.Cfg().MustGet(ctx, "milvus.address", "").String()
	if milvusAddress == "" {
		missingConfigs = append(missingConfigs, "milvus.address")
	}

	// 验证 Embedding 配置
	if g.Cfg().MustGet(ctx, "embedding.apiKey", "").String() == "" {
		missingConfigs = append(missingConfigs, "embedding.apiKey")
	}
	if g.Cfg().MustGet(ctx, "embedding.baseURL", "").String() == "" {
		missingConfigs = append(missingConfigs, "embedding.baseURL")
	}
	if g.Cfg().MustGet(ctx, "embedding.model", "").String() == "" {
		missingConfigs = append(missingConfigs, "embedding.model")
	}

	// 验证 Chat 配置
	if g.Cfg().MustGet(ctx, "chat.apiKey", "").String() == "" {
		warnings = append(warnings, "chat.apiKey is not set")
	}
	if g.Cfg().MustGet(ctx, "chat.model", "").String() == "" {
		warnings = append(warnings, "chat.model is not set")
	}

	// 鉴权 token 未配置时所有接口开放访问
	if g.Cfg().MustGet(ctx, "server.apiToken", "").String() == "" {
		warnings = append(warnings, "server.apiToken is not set, all routes are unauthenticated")
	}

	// 文档登记库未配置时仅关闭登记功能
	if g.Cfg().MustGet(ctx, "database.default.host", "").String() == "" {
		warnings = append(warnings, "database.default.host is not set, document registry disabled")
	}

	if len(warnings) > 0 {
		g.Log().Warningf(ctx, "Configuration warnings:\n- %s", strings.Join(warnings, "\n- "))
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration items:\n- %s\n\nPlease check your config.yaml file and ensure all required settings are properly configured", strings.Join(missingConfigs, "\n- "))
	}

	g.Log().Info(ctx, "✓ All required configuration items are present")

	return nil
}

// EmbeddingConfig embedding 服务配置
type EmbeddingConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	Dim            int
}

// EmbeddingConfig 实现 common.EmbeddingConfig 接口
func (c *EmbeddingConfig) GetAPIKey() string         { return c.APIKey }
func (c *EmbeddingConfig) GetBaseURL() string        { return c.BaseURL }
func (c *EmbeddingConfig) GetEmbeddingModel() string { return c.EmbeddingModel }

// LoadEmbeddingConfig 读取 embedding 配置
func LoadEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	return &EmbeddingConfig{
		APIKey:         g.Cfg().MustGet(ctx, "embedding.apiKey", "").String(),
		BaseURL:        g.Cfg().MustGet(ctx, "embedding.baseURL", "").String(),
		EmbeddingModel: g.Cfg().MustGet(ctx, "embedding.model", "").String(),
		Dim:            g.Cfg().MustGet(ctx, "milvus.dim", 1024).Int(),
	}
}

// RagConfig 文档入库与检索管线参数
type RagConfig struct {
	ChunkSize         int           // 分块大小（必须大于 OverlapSize）
	OverlapSize       int           // 分块重叠大小
	TopK              int           // 检索返回数量
	UploadTimeout     time.Duration // 上传处理整体超时
	EnableEnrich      bool          // 是否启用标题/问题富化
	QuestionCount     int           // 每块生成的候选问题数量
	TitleSampleChunks int           // 参与标题生成的前导分块数
	ContextWindow     int           // 合成时可用的上下文 token 预算
}

// LoadRagConfig 读取管线配置
func LoadRagConfig(ctx context.Context) *RagConfig {
	return &RagConfig{
		ChunkSize:         g.Cfg().MustGet(ctx, "rag.chunkSize", 1024).Int(),
		OverlapSize:       g.Cfg().MustGet(ctx, "rag.overlapSize", 128).Int(),
		TopK:              g.Cfg().MustGet(ctx, "rag.topK", 3).Int(),
		UploadTimeout:     time.Duration(g.Cfg().MustGet(ctx, "rag.uploadTimeout", 600).Int()) * time.Second,
		EnableEnrich:      g.Cfg().MustGet(ctx, "rag.enableEnrich", true).Bool(),
		QuestionCount:     g.Cfg().MustGet(ctx, "rag.questionCount", 3).Int(),
		TitleSampleChunks: g.Cfg().MustGet(ctx, "rag.titleSampleChunks", 5).Int(),
		ContextWindow:     g.Cfg().MustGet(ctx, "chat.contextWindow", 8000).Int(),
	}
}

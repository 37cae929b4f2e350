package cmd

import (
	"context"

	"github.com/gobia/ragapi/core/config"
	"github.com/gobia/ragapi/core/file_store"
	"github.com/gobia/ragapi/internal/dao"
	"github.com/gobia/ragapi/internal/service"
	"github.com/gogf/gf/v2/frame/g"
)

func init() {
	ctx := context.Background()

	g.Log().Info(ctx, "Validating application configuration...")
	err := config.ValidateConfiguration(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Configuration validation failed:\n%v", err)
	}

	// 文档登记库可选，未配置时跳过
	if g.Cfg().MustGet(ctx, "database.default.host", "").String() != "" {
		if err = dao.InitDB(); err != nil {
			g.Log().Fatalf(ctx, "Database connection initialization failed: %v", err)
		}
	}

	// 初始化归档存储
	file_store.InitStorage()

	// 初始化向量存储
	if _, err = service.GetVectorStore(ctx); err != nil {
		g.Log().Fatalf(ctx, "Vector store initialization failed: %v", err)
	}

	// 预构建入库管线与检索引擎，尽早暴露配置问题
	if _, err = service.GetPipeline(ctx); err != nil {
		g.Log().Fatalf(ctx, "Ingestion pipeline initialization failed: %v", err)
	}
	if _, err = service.GetRetrievalEngine(ctx); err != nil {
		g.Log().Fatalf(ctx, "Retrieval engine initialization failed: %v", err)
	}

	g.Log().Info(ctx, "✓ All components initialized successfully")
}

package file_store

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
)

// InitStorage 初始化归档存储
// 未配置 rustfs 时回落到本地存储
func InitStorage() {
	ctx := gctx.New()

	storageTypeStr := g.Cfg().MustGet(ctx, "storage.type", "local").String()

	switch storageTypeStr {
	case "rustfs":
		rustfsEndpoint := g.Cfg().MustGet(ctx, "rustfs.endpoint", "").String()
		if rustfsEndpoint == "" {
			SetStorageType(StorageTypeLocal)
			g.Log().Infof(ctx, "RustFS not configured, using local storage")
			InitUploadDirectories()
			return
		}

		SetStorageType(StorageTypeRustFS)
		rustfsAccessKey := g.Cfg().MustGet(ctx, "rustfs.accessKey").String()
		rustfsSecretKey := g.Cfg().MustGet(ctx, "rustfs.secretKey").String()
		rustfsBucketName := g.Cfg().MustGet(ctx, "rustfs.bucketName").String()
		rustfsSsl := g.Cfg().MustGet(ctx, "rustfs.ssl", false).Bool()

		err := InitRustFS(ctx, rustfsEndpoint, rustfsAccessKey, rustfsSecretKey, rustfsBucketName, rustfsSsl)
		if err != nil {
			g.Log().Fatalf(ctx, "failed to initialize RustFS: %v", err)
			return
		}

		g.Log().Infof(ctx, "Using RustFS storage as configured")
		InitUploadDirectories()
	default:
		SetStorageType(StorageTypeLocal)
		g.Log().Infof(ctx, "Using local storage as configured")
		InitUploadDirectories()
	}
}

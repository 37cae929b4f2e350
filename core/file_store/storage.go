package file_store

import (
	"os"
	"path/filepath"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
)

// StorageType 归档存储类型
type StorageType string

const (
	StorageTypeRustFS StorageType = "rustfs"
	StorageTypeLocal  StorageType = "local"
)

var storageType StorageType

// InitUploadDirectories 初始化 upload 目录结构
func InitUploadDirectories() {
	ctx := gctx.New()

	wd, err := os.Getwd()
	if err != nil {
		g.Log().Warningf(ctx, "Failed to get working directory: %v", err)
		return
	}

	uploadDirs := []string{
		filepath.Join(wd, "upload"),
		filepath.Join(wd, "upload/rag_file"),
		filepath.Join(wd, "upload/tmp"),
	}

	for _, dir := range uploadDirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			g.Log().Warningf(ctx, "Failed to create directory %s: %v", dir, err)
		}
	}
}

// SetStorageType 设置存储类型
func SetStorageType(storageTypeVal StorageType) {
	storageType = storageTypeVal
}

// GetStorageType 获取存储类型
func GetStorageType() StorageType {
	return storageType
}

package file_store

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobia/ragapi/core/errors"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type RustfsConfig struct {
	Client     *minio.Client
	BucketName string
}

var rustfsConfig RustfsConfig

// InitRustFS 初始化 RustFS 存储
func InitRustFS(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, ssl bool) error {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: ssl,
	})
	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to create MinIO client: %v", err)
	}

	rustfsConfig = RustfsConfig{
		Client:     client,
		BucketName: bucketName,
	}

	// bucket 已存在则跳过创建
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to check if bucket exists: %v", err)
	}
	if exists {
		g.Log().Printf(ctx, "Bucket '%s' already exists, skipping creation.", bucketName)
		return nil
	}

	err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: ""})
	if err != nil {
		return errors.Newf(errors.ErrInternalError, "failed to create bucket: %v", err)
	}

	g.Log().Printf(ctx, "Created bucket '%s'", bucketName)
	return nil
}

// GetRustfsConfig 获取RustFS配置
func GetRustfsConfig() *RustfsConfig {
	return &rustfsConfig
}

// ArchiveToRustFS 归档原始文件：先落本地，再上传对象存储
// 对象 key：rag_file/集合名/文件名
func ArchiveToRustFS(ctx context.Context, client *minio.Client, bucketName string, collection string, fileName string, file io.Reader) (localPath string, rustfsKey string, err error) {
	localPath, err = ArchiveToLocal(ctx, collection, fileName, file)
	if err != nil {
		return "", "", err
	}

	rustfsKey = filepath.Join("rag_file", collection, fileName)

	uploadFile, err := os.Open(localPath)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to open local file for upload: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to open local file for upload: %v", err)
	}
	defer uploadFile.Close()

	stat, err := uploadFile.Stat()
	if err != nil {
		g.Log().Errorf(ctx, "Failed to get file stat: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to get file stat: %v", err)
	}
	fileSize := stat.Size()

	// 探测内容类型后重置读指针
	buffer := make([]byte, 512)
	_, err = uploadFile.Read(buffer)
	if err != nil && err != io.EOF {
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to read file header: %v", err)
	}
	if _, err = uploadFile.Seek(0, 0); err != nil {
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to seek file to beginning: %v", err)
	}

	contentType := http.DetectContentType(buffer)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, bucketName, rustfsKey, uploadFile, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		g.Log().Errorf(ctx, "Failed to upload file to RustFS: %v", err)
		return localPath, "", errors.Newf(errors.ErrFileUploadFailed, "failed to upload to RustFS: %v", err)
	}

	g.Log().Infof(ctx, "File uploaded to RustFS: bucket=%s, key=%s", bucketName, rustfsKey)
	return localPath, rustfsKey, nil
}

// GetFileNameFromURL 从URL中提取文件名
func GetFileNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	name := parts[len(parts)-1]
	if name == "" {
		name = "unknown_file"
	}
	return name
}

// DeleteObject 删除指定的对象
func DeleteObject(ctx context.Context, client *minio.Client, bucketName, objectName string) error {
	err := client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Newf(errors.ErrOperationFailed, "failed to delete object %s: %v", objectName, err)
	}
	g.Log().Infof(ctx, "Deleted object '%s' from bucket '%s'", objectName, bucketName)
	return nil
}

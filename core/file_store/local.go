package file_store

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gobia/ragapi/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// ArchiveToLocal 将已入库的原始文件归档到本地存储
// 路径：upload/rag_file/集合名/文件名
func ArchiveToLocal(ctx context.Context, collection string, fileName string, file io.Reader) (finalPath string, err error) {
	targetDir := filepath.Join("upload", "rag_file", collection)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		g.Log().Errorf(ctx, "Failed to create directory %s: %v", targetDir, err)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create directory %s: %v", targetDir, err)
	}

	finalPath = filepath.Join(targetDir, fileName)

	destFile, err := os.Create(finalPath)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to create file %s: %v", finalPath, err)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create file %s: %v", finalPath, err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, file)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to write file %s: %v", finalPath, err)
		// 删除写入失败的残留文件
		_ = os.Remove(finalPath)
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to write file %s: %v", finalPath, err)
	}

	g.Log().Infof(ctx, "File archived to local storage: %s", finalPath)
	return finalPath, nil
}

// SaveTempFile 将上传内容写入临时文件，处理完由调用方清理
func SaveTempFile(ctx context.Context, fileName string, file io.Reader) (string, error) {
	targetDir := filepath.Join("upload", "tmp")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create directory %s: %v", targetDir, err)
	}

	tmpFile, err := os.CreateTemp(targetDir, "upload-*-"+fileName)
	if err != nil {
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, file); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", errors.Newf(errors.ErrFileUploadFailed, "failed to write temp file: %v", err)
	}

	g.Log().Debugf(ctx, "Upload buffered to temp file: %s", tmpFile.Name())
	return tmpFile.Name(), nil
}

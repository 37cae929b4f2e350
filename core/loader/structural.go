package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	document_url "github.com/cloudwego/eino-ext/components/document/loader/url"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/errors"
)

// StructuralLoader 结构化 PDF 加载器
// 使用确定性 PDF 文本抽取，一页产出一个片段，元数据至少包含页码与来源路径
type StructuralLoader struct {
	fileLoader document.Loader
	urlLoader  document.Loader
}

// NewStructuralLoader 创建结构化加载器
func NewStructuralLoader(ctx context.Context) (*StructuralLoader, error) {
	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, errors.Newf(errors.ErrLoaderFailed, "failed to create pdf parser: %v", err)
	}

	fldr, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		UseNameAsID: false,
		Parser:      pdfParser,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrLoaderFailed, "failed to create file loader: %v", err)
	}

	uldr, err := document_url.NewLoader(ctx, &document_url.LoaderConfig{})
	if err != nil {
		return nil, errors.Newf(errors.ErrLoaderFailed, "failed to create url loader: %v", err)
	}

	return &StructuralLoader{
		fileLoader: fldr,
		urlLoader:  uldr,
	}, nil
}

// Load 抽取 PDF 文本，每页一个片段
func (x *StructuralLoader) Load(ctx context.Context, filePath string) ([]*schema.Document, error) {
	if !common.IsURL(filePath) && !strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		return nil, errors.Newf(errors.ErrUnsupportedFileKind, "only PDF files are accepted, got: %s", filepath.Base(filePath))
	}

	var (
		docs []*schema.Document
		err  error
	)
	if common.IsURL(filePath) {
		docs, err = x.urlLoader.Load(ctx, document.Source{URI: filePath})
	} else {
		docs, err = x.fileLoader.Load(ctx, document.Source{URI: filePath})
	}
	if err != nil {
		return nil, errors.Newf(errors.ErrLoaderFailed, "structural loader failed for %s: %v", filePath, err)
	}

	// 过滤空白页，补充页级元数据
	fragments := make([]*schema.Document, 0, len(docs))
	for i, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		if doc.MetaData == nil {
			doc.MetaData = make(map[string]any)
		}
		doc.MetaData[common.MetaFilePath] = filePath
		doc.MetaData[MetaPageLabel] = i + 1
		doc.MetaData[MetaLoader] = string(StrategyStructural)
		fragments = append(fragments, doc)
	}

	if len(fragments) == 0 {
		return nil, errors.Newf(errors.ErrEmptyDocument, "no extractable text in %s", filepath.Base(filePath))
	}

	return fragments, nil
}

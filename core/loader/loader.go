package loader

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
)

// Strategy 文档加载策略标签，在边界处校验
type Strategy string

const (
	// StrategyStructural 结构化加载：确定性 PDF 文本抽取，一页一个片段
	StrategyStructural Strategy = "pymupdf"
	// StrategySemantic 语义加载：LLM 上下文分块，块边界由模型决定
	StrategySemantic Strategy = "smart"
)

// 元数据字段
const (
	MetaPageLabel  = "page_label"
	MetaChunkIndex = "chunk_index"
	MetaSection    = "section"
	MetaLoader     = "loader"
)

// Loader 将文档路径转为带页级元数据的原始片段序列
// 两种策略返回同一种片段形状（schema.Document）
type Loader interface {
	Load(ctx context.Context, filePath string) ([]*schema.Document, error)
}

// ParseStrategy 校验并解析加载策略标签
// 未知标签在任何加载工作开始前拒绝
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStructural, StrategySemantic:
		return Strategy(s), nil
	case "":
		return StrategyStructural, nil
	default:
		return "", errors.Newf(errors.ErrInvalidParameter, "unknown loader strategy: %q (expected %q or %q)", s, StrategyStructural, StrategySemantic)
	}
}

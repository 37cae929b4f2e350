package indexer

import (
	"context"
	"fmt"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gogf/gf/v2/frame/g"
)

// 富化元数据字段
const (
	MetaDocumentTitle     = "document_title"
	MetaQuestionsAnswered = "questions_this_excerpt_can_answer"
)

const titlePromptTemplate = `Context: %s

Give a concise title that summarizes what this document is about.
Respond with the title only, no quotes, no explanation.`

const questionsPromptTemplate = `Here is the context:
%s

Given the contextual information, generate %d questions this context can
provide specific answers to which are unlikely to be found elsewhere.
Respond with the questions only, one per line, no numbering.`

// Enricher 对分块做 LLM 元数据富化（文档标题 + 候选问题）
// 富化是尽力而为的：任何失败只记录日志，不中断入库
type Enricher struct {
	model             einoModel.BaseChatModel
	questionCount     int
	titleSampleChunks int
}

// NewEnricher 创建富化器，model 为 nil 时富化退化为空操作
func NewEnricher(model einoModel.BaseChatModel, questionCount, titleSampleChunks int) *Enricher {
	return &Enricher{
		model:             model,
		questionCount:     questionCount,
		titleSampleChunks: titleSampleChunks,
	}
}

// Enrich 为每个分块补充 document_title 与候选问题
func (x *Enricher) Enrich(ctx context.Context, chunks []*schema.Document) []*schema.Document {
	if x.model == nil || len(chunks) == 0 {
		return chunks
	}

	// 标题从前导分块采样生成，整批共享
	title := x.generateTitle(ctx, chunks)

	for i, chunk := range chunks {
		if chunk.MetaData == nil {
			chunk.MetaData = make(map[string]any)
		}
		if title != "" {
			chunk.MetaData[MetaDocumentTitle] = title
		}

		questions := x.generateQuestions(ctx, chunk.Content)
		if questions != "" {
			chunk.MetaData[MetaQuestionsAnswered] = questions
		} else {
			g.Log().Warningf(ctx, "Question enrichment skipped for chunk %d", i)
		}
	}

	return chunks
}

func (x *Enricher) generateTitle(ctx context.Context, chunks []*schema.Document) string {
	sample := chunks
	if len(sample) > x.titleSampleChunks {
		sample = sample[:x.titleSampleChunks]
	}

	var sb strings.Builder
	for _, chunk := range sample {
		sb.WriteString(chunk.Content)
		sb.WriteString("\n")
	}

	resp, err := x.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(titlePromptTemplate, sb.String())),
	})
	if err != nil {
		g.Log().Warningf(ctx, "Title enrichment failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Content)
}

func (x *Enricher) generateQuestions(ctx context.Context, content string) string {
	resp, err := x.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(questionsPromptTemplate, content, x.questionCount)),
	})
	if err != nil {
		g.Log().Warningf(ctx, "Question enrichment failed: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Content)
}

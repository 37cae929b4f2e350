package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/common"
	"github.com/gobia/ragapi/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

const semanticChunkPrompt = `You are a document chunking assistant. Split the document below into
self-contained, contextually bounded chunks suitable for retrieval. Each chunk
should cover one coherent topic or section and stay under roughly 300 words.
Respond with a JSON array only, no prose, where each element is an object:
{"text": "<chunk text>", "section": "<short section label>"}`

// SemanticLoader 语义加载器
// 将整篇文档交给 LLM 做上下文分块，块数与页数无关
// 模型调用是阻塞网络请求，必须在工作 goroutine 中执行，
// 避免嵌套 LLM 调用阻塞正在处理请求的主执行流
type SemanticLoader struct {
	structural *StructuralLoader
	model      einoModel.BaseChatModel
}

// semanticChunk 模型返回的单个分块
type semanticChunk struct {
	Text    string `json:"text"`
	Section string `json:"section"`
}

// NewSemanticLoader 创建语义加载器
// model 为配置的 vision/chat 模型句柄，由调用方注入
func NewSemanticLoader(ctx context.Context, model einoModel.BaseChatModel) (*SemanticLoader, error) {
	if model == nil {
		return nil, errors.Newf(errors.ErrInvalidParameter, "semantic loader requires a chat model")
	}
	structural, err := NewStructuralLoader(ctx)
	if err != nil {
		return nil, err
	}
	return &SemanticLoader{
		structural: structural,
		model:      model,
	}, nil
}

// Load 全文语义分块
// 上游限流/超时错误原样上抛，不做内部重试
func (x *SemanticLoader) Load(ctx context.Context, filePath string) ([]*schema.Document, error) {
	// 先做确定性文本抽取，拿到全文
	pages, err := x.structural.Load(ctx, filePath)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Content
	}
	fullText := strings.Join(texts, "\n\n")

	// 模型调用下放到工作 goroutine，join 点在 select 处
	type chunkResult struct {
		chunks []semanticChunk
		err    error
	}
	resultChan := make(chan chunkResult, 1)
	errChan := make(chan error, 1)

	common.SafeGoWithError(ctx, "semantic-chunking", func() error {
		messages := []*schema.Message{
			schema.SystemMessage(semanticChunkPrompt),
			schema.UserMessage(fullText),
		}
		resp, err := x.model.Generate(ctx, messages)
		if err != nil {
			resultChan <- chunkResult{err: errors.Newf(errors.ErrLoaderFailed, "semantic chunking model call failed: %v", err)}
			return nil
		}

		chunks, err := parseChunkResponse(resp.Content)
		if err != nil {
			resultChan <- chunkResult{err: errors.Newf(errors.ErrLoaderFailed, "semantic chunking returned malformed output: %v", err)}
			return nil
		}
		resultChan <- chunkResult{chunks: chunks}
		return nil
	}, errChan)

	var chunks []semanticChunk
	select {
	case <-ctx.Done():
		return nil, errors.Newf(errors.ErrLoaderFailed, "semantic chunking aborted: %v", ctx.Err())
	case err := <-errChan:
		if err != nil {
			return nil, errors.Newf(errors.ErrLoaderFailed, "semantic chunking worker failed: %v", err)
		}
		result := <-resultChan
		if result.err != nil {
			return nil, result.err
		}
		chunks = result.chunks
	}

	fragments := make([]*schema.Document, 0, len(chunks))
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk.Text) == "" {
			continue
		}
		fragments = append(fragments, &schema.Document{
			Content: chunk.Text,
			MetaData: map[string]any{
				common.MetaFilePath: filePath,
				MetaChunkIndex:      i,
				MetaSection:         chunk.Section,
				MetaLoader:          string(StrategySemantic),
			},
		})
	}

	if len(fragments) == 0 {
		return nil, errors.Newf(errors.ErrEmptyDocument, "semantic chunking produced no chunks for %s", filepath.Base(filePath))
	}

	g.Log().Infof(ctx, "Semantic loader produced %d chunks from %s", len(fragments), filepath.Base(filePath))
	return fragments, nil
}

// parseChunkResponse 解析模型返回的 JSON 分块数组
// 容忍 markdown 代码围栏包裹
func parseChunkResponse(content string) ([]semanticChunk, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var chunks []semanticChunk
	if err := sonic.Unmarshal([]byte(trimmed), &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

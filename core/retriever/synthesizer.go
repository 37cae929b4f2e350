package retriever

import (
	"context"
	"fmt"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
)

const textQAPromptTemplate = `Context information is below.
---------------------
%s
---------------------
Given the context information and not prior knowledge, answer the query.
Query: %s
Answer: `

const refinePromptTemplate = `The original query is as follows: %s
We have provided an existing answer: %s
We have the opportunity to refine the existing answer (only if needed) with
some more context below.
---------------------
%s
---------------------
Given the new context, refine the original answer to better answer the query.
If the context isn't useful, return the original answer.
Refined Answer: `

const treeSummarizePromptTemplate = `Context information from multiple sources is below.
---------------------
%s
---------------------
Given the information from multiple sources and not prior knowledge, answer the query.
Query: %s
Answer: `

const accumulateSeparator = "\n---------------------\n"

// Synthesizer 基于检索结果合成自然语言答案
// 上下文预算按字符数/4 粗估 token 数，对照模型上下文窗口
type Synthesizer struct {
	model         einoModel.BaseChatModel
	contextWindow int
}

// NewSynthesizer 创建答案合成器
func NewSynthesizer(model einoModel.BaseChatModel, contextWindow int) *Synthesizer {
	return &Synthesizer{
		model:         model,
		contextWindow: contextWindow,
	}
}

// Synthesize 按指定模式合成答案
// no_text 与 context_only 不触发任何模型调用
func (x *Synthesizer) Synthesize(ctx context.Context, mode ResponseMode, question string, nodes []*schema.Document) (string, error) {
	// 模式合法性先于一切分支判定，空结果集也不放过未知模式
	if _, ok := responseModes[mode]; !ok {
		return "", errors.Newf(errors.ErrInvalidResponseMode, "unknown response mode: %q", mode)
	}

	switch mode {
	case ModeNoText:
		return "", nil
	case ModeContextOnly:
		return joinNodeTexts(nodes), nil
	case ModeGeneration:
		return x.generate(ctx, question)
	}

	if x.model == nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "chat model is not configured")
	}
	if len(nodes) == 0 {
		return "Empty Response", nil
	}

	switch mode {
	case ModeRefine:
		return x.refine(ctx, question, nodeTexts(nodes))
	case ModeCompact:
		return x.refine(ctx, question, x.compact(nodeTexts(nodes)))
	case ModeSimpleSummarize:
		return x.simpleSummarize(ctx, question, nodes)
	case ModeTreeSummarize:
		return x.treeSummarize(ctx, question, nodeTexts(nodes))
	case ModeAccumulate:
		return x.accumulate(ctx, question, nodeTexts(nodes))
	case ModeCompactAccumulate:
		return x.accumulate(ctx, question, x.compact(nodeTexts(nodes)))
	}
	return "", errors.Newf(errors.ErrInvalidResponseMode, "unknown response mode: %q", mode)
}

func (x *Synthesizer) generate(ctx context.Context, question string) (string, error) {
	if x.model == nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "chat model is not configured")
	}
	return x.callModel(ctx, question)
}

// refine 逐段迭代：首段走 QA 模板，其后每段带上已有答案走精炼模板
func (x *Synthesizer) refine(ctx context.Context, question string, texts []string) (string, error) {
	var answer string
	for i, text := range texts {
		var prompt string
		if i == 0 {
			prompt = fmt.Sprintf(textQAPromptTemplate, text, question)
		} else {
			prompt = fmt.Sprintf(refinePromptTemplate, question, answer, text)
		}

		resp, err := x.callModel(ctx, prompt)
		if err != nil {
			return "", err
		}
		answer = resp
	}
	return answer, nil
}

// simpleSummarize 所有文本进单次调用，超出上下文窗口直接报错
func (x *Synthesizer) simpleSummarize(ctx context.Context, question string, nodes []*schema.Document) (string, error) {
	contextText := joinNodeTexts(nodes)
	prompt := fmt.Sprintf(textQAPromptTemplate, contextText, question)
	if estimateTokens(prompt) > x.contextWindow {
		return "", errors.Newf(errors.ErrQueryFailed, "context exceeds model window (%d tokens estimated, window %d), use a different response mode", estimateTokens(prompt), x.contextWindow)
	}
	return x.callModel(ctx, prompt)
}

// treeSummarize 自底向上：每轮把文本打包成若干上下文，分别汇总，
// 直到剩下单个汇总结果
func (x *Synthesizer) treeSummarize(ctx context.Context, question string, texts []string) (string, error) {
	for len(texts) > 1 {
		packed := x.compact(texts)
		summaries := make([]string, 0, len(packed))
		for _, text := range packed {
			resp, err := x.callModel(ctx, fmt.Sprintf(treeSummarizePromptTemplate, text, question))
			if err != nil {
				return "", err
			}
			summaries = append(summaries, resp)
		}
		if len(packed) == len(texts) && len(packed) > 1 {
			// 打包无法再收敛时合并一次防止死循环
			texts = []string{strings.Join(summaries, "\n")}
		} else {
			texts = summaries
		}
	}

	return x.callModel(ctx, fmt.Sprintf(treeSummarizePromptTemplate, texts[0], question))
}

// accumulate 每段独立作答后按固定分隔符拼接
func (x *Synthesizer) accumulate(ctx context.Context, question string, texts []string) (string, error) {
	answers := make([]string, 0, len(texts))
	for _, text := range texts {
		resp, err := x.callModel(ctx, fmt.Sprintf(textQAPromptTemplate, text, question))
		if err != nil {
			return "", err
		}
		answers = append(answers, resp)
	}
	return strings.Join(answers, accumulateSeparator), nil
}

// compact 把文本贪心打包进尽量少的上下文缓冲，每个缓冲不超过窗口预算
func (x *Synthesizer) compact(texts []string) []string {
	// 给提示词模板与生成余量预留约四分之一窗口
	budget := x.contextWindow * 3 / 4
	if budget <= 0 {
		return texts
	}

	packed := make([]string, 0, len(texts))
	var current strings.Builder
	for _, text := range texts {
		if current.Len() > 0 && estimateTokens(current.String()+"\n\n"+text) > budget {
			packed = append(packed, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(text)
	}
	if current.Len() > 0 {
		packed = append(packed, current.String())
	}
	return packed
}

func (x *Synthesizer) callModel(ctx context.Context, prompt string) (string, error) {
	resp, err := x.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "chat model call failed: %v", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// estimateTokens 按 4 字符 ≈ 1 token 粗估
func estimateTokens(text string) int {
	return len(text) / 4
}

func nodeTexts(nodes []*schema.Document) []string {
	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		texts = append(texts, node.Content)
	}
	return texts
}

func joinNodeTexts(nodes []*schema.Document) string {
	return strings.Join(nodeTexts(nodes), "\n\n")
}

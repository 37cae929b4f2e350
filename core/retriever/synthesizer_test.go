package retriever

import (
	"context"
	"fmt"
	"strings"
	"testing"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
	"github.com/stretchr/testify/assert"
)

// stubChatModel 计数型模型桩，按调用次数返回固定应答
type stubChatModel struct {
	calls int
	reply func(call int, prompt string) string
	err   error
}

func (s *stubChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...einoModel.Option) (*schema.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	prompt := ""
	if len(in) > 0 {
		prompt = in[len(in)-1].Content
	}
	reply := fmt.Sprintf("answer-%d", s.calls)
	if s.reply != nil {
		reply = s.reply(s.calls, prompt)
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (s *stubChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("stream not supported in stub")
}

func makeNodes(texts ...string) []*schema.Document {
	nodes := make([]*schema.Document, 0, len(texts))
	for i, text := range texts {
		nodes = append(nodes, &schema.Document{
			ID:      fmt.Sprintf("node-%d", i),
			Content: text,
		})
	}
	return nodes
}

func TestSynthesizeNoLLMModes(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)
	ctx := context.Background()
	nodes := makeNodes("first chunk", "second chunk")

	t.Run("no_text不调用模型", func(t *testing.T) {
		answer, err := syn.Synthesize(ctx, ModeNoText, "q", nodes)
		assert.NoError(t, err)
		assert.Equal(t, "", answer)
		assert.Equal(t, 0, stub.calls)
	})

	t.Run("context_only返回拼接文本", func(t *testing.T) {
		answer, err := syn.Synthesize(ctx, ModeContextOnly, "q", nodes)
		assert.NoError(t, err)
		assert.Equal(t, "first chunk\n\nsecond chunk", answer)
		assert.Equal(t, 0, stub.calls)
	})
}

func TestSynthesizeRefine(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)
	nodes := makeNodes("a", "b", "c")

	answer, err := syn.Synthesize(context.Background(), ModeRefine, "q", nodes)
	assert.NoError(t, err)
	// refine 每个节点一次调用，最终答案是最后一轮的输出
	assert.Equal(t, 3, stub.calls)
	assert.Equal(t, "answer-3", answer)
}

func TestSynthesizeCompact(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)
	nodes := makeNodes("short a", "short b", "short c")

	answer, err := syn.Synthesize(context.Background(), ModeCompact, "q", nodes)
	assert.NoError(t, err)
	// 三段短文本打包进一个上下文，只需一次调用
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "answer-1", answer)
}

func TestSynthesizeSimpleSummarize(t *testing.T) {
	t.Run("正常窗口", func(t *testing.T) {
		stub := &stubChatModel{}
		syn := NewSynthesizer(stub, 8000)
		answer, err := syn.Synthesize(context.Background(), ModeSimpleSummarize, "q", makeNodes("a", "b"))
		assert.NoError(t, err)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, "answer-1", answer)
	})

	t.Run("超出窗口报错", func(t *testing.T) {
		stub := &stubChatModel{}
		syn := NewSynthesizer(stub, 10)
		long := strings.Repeat("long text ", 100)
		_, err := syn.Synthesize(context.Background(), ModeSimpleSummarize, "q", makeNodes(long))
		assert.Error(t, err)
		assert.Equal(t, 0, stub.calls)

		appErr := errors.GetAppError(err)
		assert.NotNil(t, appErr)
		assert.Equal(t, errors.ErrQueryFailed, appErr.Code)
	})
}

func TestSynthesizeTreeSummarize(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)

	answer, err := syn.Synthesize(context.Background(), ModeTreeSummarize, "q", makeNodes("a", "b", "c"))
	assert.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.GreaterOrEqual(t, stub.calls, 1)
}

func TestSynthesizeAccumulate(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)

	answer, err := syn.Synthesize(context.Background(), ModeAccumulate, "q", makeNodes("a", "b"))
	assert.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, "answer-1"+accumulateSeparator+"answer-2", answer)
}

func TestSynthesizeGeneration(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)

	// generation 忽略上下文，空结果集也正常作答
	answer, err := syn.Synthesize(context.Background(), ModeGeneration, "q", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "answer-1", answer)
}

func TestSynthesizeEmptyNodes(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)

	answer, err := syn.Synthesize(context.Background(), ModeTreeSummarize, "q", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Empty Response", answer)
	assert.Equal(t, 0, stub.calls)
}

func TestSynthesizeUnknownMode(t *testing.T) {
	stub := &stubChatModel{}
	syn := NewSynthesizer(stub, 8000)

	// 空结果集也要先拒绝未知模式，不触发任何模型调用
	_, err := syn.Synthesize(context.Background(), ResponseMode("summarize_everything"), "q", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, stub.calls)

	appErr := errors.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidResponseMode, appErr.Code)
}

func TestSynthesizeModelFailure(t *testing.T) {
	stub := &stubChatModel{err: fmt.Errorf("upstream 429")}
	syn := NewSynthesizer(stub, 8000)

	_, err := syn.Synthesize(context.Background(), ModeRefine, "q", makeNodes("a"))
	assert.Error(t, err)

	appErr := errors.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, errors.ErrLLMCallFailed, appErr.Code)
}

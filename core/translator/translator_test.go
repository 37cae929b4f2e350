package translator

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

// echoModel 将提示词中的原文原样返回的模型桩
// 用于模拟"原文已是目标语言"的确定性翻译行为
type echoModel struct {
	reply string
	err   error
}

func (e *echoModel) Generate(ctx context.Context, in []*schema.Message, opts ...einoModel.Option) (*schema.Message, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.reply != "" {
		return schema.AssistantMessage(e.reply, nil), nil
	}
	// 翻译提示词以空行分隔正文，取正文部分回显
	prompt := in[len(in)-1].Content
	parts := strings.SplitN(prompt, "\n\n", 2)
	text := prompt
	if len(parts) == 2 {
		text = parts[1]
	}
	return schema.AssistantMessage(text, nil), nil
}

func (e *echoModel) Stream(ctx context.Context, in []*schema.Message, opts ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("stream not supported in stub")
}

func TestTranslate(t *testing.T) {
	tr := NewTranslator(&echoModel{reply: "hello"}, "English")

	result, err := tr.Translate(context.Background(), "你好", "English")
	assert.NoError(t, err)
	assert.Equal(t, "你好", result.Original)
	assert.Equal(t, "hello", result.Translated)
	assert.Equal(t, "English", result.TargetLanguage)
}

func TestTranslateAlreadyInTargetLanguage(t *testing.T) {
	tr := NewTranslator(&echoModel{}, "English")

	// 原文已是目标语言时译文应保持不变
	result, err := tr.Translate(context.Background(), "already English", "English")
	assert.NoError(t, err)
	assert.Equal(t, "already English", result.Translated)
}

func TestTranslateDefaultLanguage(t *testing.T) {
	tr := NewTranslator(&echoModel{}, "English")

	result, err := tr.Translate(context.Background(), "你好", "")
	assert.NoError(t, err)
	assert.Equal(t, "English", result.TargetLanguage)
}

func TestTranslateEmptyText(t *testing.T) {
	tr := NewTranslator(&echoModel{}, "English")

	_, err := tr.Translate(context.Background(), "   ", "English")
	assert.Error(t, err)

	appErr := errors.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidParameter, appErr.Code)
}

func TestTranslateModelFailure(t *testing.T) {
	tr := NewTranslator(&echoModel{err: fmt.Errorf("upstream timeout")}, "English")

	_, err := tr.Translate(context.Background(), "你好", "English")
	assert.Error(t, err)

	appErr := errors.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTranslationFailed, appErr.Code)
}

func TestTranslateNilModel(t *testing.T) {
	tr := NewTranslator(nil, "English")

	_, err := tr.Translate(context.Background(), "你好", "English")
	assert.Error(t, err)
}

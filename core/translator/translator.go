package translator

import (
	"context"
	"fmt"
	"strings"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gobia/ragapi/core/errors"
)

const translatePromptTemplate = `Translate the following text into %s, preserving the original
meaning, tone and formatting. If the text is already in the target language,
return it unchanged. Respond with the translation only, no explanation.

%s`

// Result 翻译结果
type Result struct {
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	TargetLanguage string `json:"target_language"`
}

// Translator LLM 文本翻译器
type Translator struct {
	model           einoModel.BaseChatModel
	defaultLanguage string
}

// NewTranslator 创建翻译器
func NewTranslator(model einoModel.BaseChatModel, defaultLanguage string) *Translator {
	if defaultLanguage == "" {
		defaultLanguage = "English"
	}
	return &Translator{
		model:           model,
		defaultLanguage: defaultLanguage,
	}
}

// Translate 将文本翻译到目标语言
// targetLanguage 为空时使用配置的默认语言
func (x *Translator) Translate(ctx context.Context, text, targetLanguage string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "text is required")
	}
	if targetLanguage == "" {
		targetLanguage = x.defaultLanguage
	}
	if x.model == nil {
		return nil, errors.Newf(errors.ErrTranslationFailed, "chat model is not configured")
	}

	resp, err := x.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(translatePromptTemplate, targetLanguage, text)),
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrTranslationFailed, "translation model call failed: %v", err)
	}

	return &Result{
		Original:       text,
		Translated:     strings.TrimSpace(resp.Content),
		TargetLanguage: targetLanguage,
	}, nil
}

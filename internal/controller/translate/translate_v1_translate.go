package translate

import (
	"context"

	v1 "github.com/gobia/ragapi/api/translate/v1"
	"github.com/gobia/ragapi/internal/service"
)

// Translate 文本翻译接口
func (c *ControllerV1) Translate(ctx context.Context, req *v1.TranslateReq) (res *v1.TranslateRes, err error) {
	tr, err := service.GetTranslator(ctx)
	if err != nil {
		return nil, err
	}

	result, err := tr.Translate(ctx, req.Text, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	return &v1.TranslateRes{
		Original:       result.Original,
		Translated:     result.Translated,
		TargetLanguage: result.TargetLanguage,
	}, nil
}

package v1

import (
	"github.com/gogf/gf/v2/frame/g"
)

// TranslateReq 文本翻译请求
type TranslateReq struct {
	g.Meta         `path:"/translate" method:"post" tags:"translate" summary:"文本翻译"`
	Text           string `p:"text" json:"text" v:"required#text不能为空"` // 待翻译文本
	TargetLanguage string `p:"target_language" json:"target_language" d:"English"` // 目标语言
}

// TranslateRes 文本翻译响应
type TranslateRes struct {
	Original       string `json:"original"`        // 原文
	Translated     string `json:"translated"`      // 译文
	TargetLanguage string `json:"target_language"` // 目标语言
}

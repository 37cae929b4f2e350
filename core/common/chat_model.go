package common

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/gogf/gf/v2/frame/g"
)

// 进程级模型单例：启动后构建一次，只读共享，请求间无需额外同步
var (
	chatModel   einoModel.BaseChatModel
	visionModel einoModel.BaseChatModel
)

// newChatModel 按配置的 provider 创建 ChatModel（openai 兼容 / qwen）
func newChatModel(ctx context.Context, section string) (einoModel.BaseChatModel, error) {
	provider := g.Cfg().MustGet(ctx, section+".provider", "openai").String()
	apiKey := g.Cfg().MustGet(ctx, section+".apiKey", "").String()
	baseURL := g.Cfg().MustGet(ctx, section+".baseURL", "").String()
	model := g.Cfg().MustGet(ctx, section+".model", "").String()

	switch provider {
	case "qwen":
		return qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   model,
		})
	default:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   model,
		})
	}
}

// GetChatModel 获取生成/合成用的 ChatModel 单例
func GetChatModel(ctx context.Context) (einoModel.BaseChatModel, error) {
	if chatModel != nil {
		return chatModel, nil
	}
	cm, err := newChatModel(ctx, "chat")
	if err != nil {
		return nil, err
	}
	chatModel = cm
	return cm, nil
}

// GetVisionModel 获取语义分块（smart loader）使用的模型单例
// 未单独配置 vision 段时回退到 chat 模型
func GetVisionModel(ctx context.Context) (einoModel.BaseChatModel, error) {
	if visionModel != nil {
		return visionModel, nil
	}
	if g.Cfg().MustGet(ctx, "vision.model", "").String() == "" {
		return GetChatModel(ctx)
	}
	cm, err := newChatModel(ctx, "vision")
	if err != nil {
		return nil, err
	}
	visionModel = cm
	return cm, nil
}

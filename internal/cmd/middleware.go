package cmd

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gobia/ragapi/core/errors"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

const (
	contentTypeEventStream  = "text/event-stream"
	contentTypeOctetStream  = "application/octet-stream"
	contentTypeMixedReplace = "multipart/x-mixed-replace"
)

// 文档上传大小限制: 100MB
const maxUploadSize = 100 << 20

var streamContentType = []string{contentTypeEventStream, contentTypeOctetStream, contentTypeMixedReplace}

// MiddlewareMultipartMaxMemory 限制文档上传请求体大小
func MiddlewareMultipartMaxMemory(r *ghttp.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		r.Middleware.Next()
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		r.Response.WriteStatus(http.StatusRequestEntityTooLarge)
		r.Response.WriteJson(g.Map{
			"code":    int(errors.ErrInvalidParameter),
			"message": "File size exceeds the upload limit (100MB)",
		})
		return
	}

	r.Middleware.Next()
}

// MiddlewareHandlerResponse 统一响应处理
// 成功时直接输出处理器返回的扁平 JSON；
// 失败时按业务错误码映射 HTTP 状态码
func MiddlewareHandlerResponse(r *ghttp.Request) {
	r.Middleware.Next()

	// 处理器已自行写出内容时不再包装
	if r.Response.BufferLength() > 0 || r.Response.Writer.BytesWritten() > 0 {
		return
	}

	// 流式响应不做统一包装
	mediaType, _, _ := mime.ParseMediaType(r.Response.Header().Get("Content-Type"))
	for _, ct := range streamContentType {
		if mediaType == ct {
			return
		}
	}

	err := r.GetError()
	if err == nil {
		r.Response.WriteJson(r.GetHandlerResponse())
		return
	}

	appErr := errors.GetAppError(err)
	if appErr != nil {
		r.Response.WriteStatus(appErr.HTTPStatusCode())
		r.Response.WriteJson(g.Map{
			"code":    int(appErr.Code),
			"message": appErr.Message,
		})
		return
	}

	// 参数校验等框架错误归为 400，其余 500
	status := http.StatusInternalServerError
	code := errors.ErrInternalError
	if gerror.Code(err) == gcode.CodeValidationFailed || r.Response.Status == http.StatusBadRequest {
		status = http.StatusBadRequest
		code = errors.ErrInvalidParameter
	}
	r.Response.WriteStatus(status)
	r.Response.WriteJson(g.Map{
		"code":    int(code),
		"message": err.Error(),
	})
}

// MiddlewareAuth Bearer token 鉴权
// server.apiToken 未配置时所有路由开放访问
func MiddlewareAuth(r *ghttp.Request) {
	token := g.Cfg().MustGet(r.Context(), "server.apiToken", "").String()
	if token == "" {
		r.Middleware.Next()
		return
	}

	auth := r.Header.Get("Authorization")
	if auth != "Bearer "+token {
		r.Response.WriteStatus(http.StatusUnauthorized)
		r.Response.WriteJson(g.Map{
			"code":    int(errors.ErrUnauthorized),
			"message": "invalid or missing bearer token",
		})
		return
	}

	r.Middleware.Next()
}

package cmd

import (
	"context"

	"github.com/gobia/ragapi/internal/controller/rag"
	"github.com/gobia/ragapi/internal/controller/translate"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/gogf/gf/v2/os/gcmd"
)

var (
	Main = gcmd.Command{
		Name:  "main",
		Usage: "main",
		Brief: "start rag http server",
		Func: func(ctx context.Context, parser *gcmd.Parser) (err error) {
			s := g.Server()

			s.Group("/api", func(group *ghttp.RouterGroup) {
				group.Middleware(MiddlewareHandlerResponse, ghttp.MiddlewareCORS, MiddlewareAuth, MiddlewareMultipartMaxMemory)
				group.Group("/rag", func(ragGroup *ghttp.RouterGroup) {
					ragGroup.Bind(
						rag.NewV1(),
					)
				})
				group.Bind(
					translate.NewV1(),
				)
			})
			s.Run()
			return nil
		},
	}
)

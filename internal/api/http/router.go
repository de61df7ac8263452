// Copyright 2026 Abir4testing
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/hertz-contrib/jwt"

	"pdf-sharing/internal/api/http/middleware"
	"pdf-sharing/internal/upload"
)

// maxRequestBody 请求体上限：文件上限之外预留 multipart 边界与表单字段的开销
const maxRequestBody = upload.MaxFileSize + 1<<20

// Router HTTP 路由器：持有 Handler 与中间件，Build 时装配 Hertz 实例
type Router struct {
	handler        *Handler
	middleware     *middleware.Middleware
	jwtAuth        *jwt.HertzJWTMiddleware
	rateLimitQPS   float64
	rateLimitBurst int
}

// NewRouter 创建 HTTP 路由器
func NewRouter(handler *Handler, mw *middleware.Middleware) *Router {
	return &Router{
		handler:    handler,
		middleware: mw,
	}
}

// SetJWT 启用 /api/system 组的 JWT 认证（含 /api/auth/login 登录端点）
func (r *Router) SetJWT(jwtAuth *jwt.HertzJWTMiddleware) {
	r.jwtAuth = jwtAuth
}

// SetRateLimit 启用口令类端点的限流
func (r *Router) SetRateLimit(qps float64, burst int) {
	r.rateLimitQPS = qps
	r.rateLimitBurst = burst
}

// Build 创建 Hertz 实例并注册全部路由，addr 如 ":8080"
func (r *Router) Build(addr string, opts ...config.Option) *server.Hertz {
	serverOpts := append([]config.Option{
		server.WithHostPorts(addr),
		server.WithMaxRequestBodySize(maxRequestBody),
	}, opts...)
	h := server.Default(serverOpts...)
	r.Register(h)
	return h
}

// Register 在已有 Hertz 实例上注册路由（测试时直接传入 server.Default）
func (r *Router) Register(h *server.Hertz) {
	api := h.Group("/api", r.middleware.CORS())

	api.GET("/health", r.handler.HealthCheck)
	api.POST("/upload", r.handler.Upload)
	api.GET("/search", r.handler.Search)

	// 口令类端点可选限流，同一令牌桶抑制在线爆破
	pdf := api.Group("/pdf")
	if r.rateLimitQPS > 0 {
		pdf.Use(r.middleware.RateLimit(r.rateLimitQPS, r.rateLimitBurst))
	}
	pdf.GET("/:ownerName/:filename", r.handler.RetrieveInline)
	pdf.POST("/download", r.handler.Download)
	pdf.POST("/verify-password", r.handler.VerifyPassword)

	system := api.Group("/system")
	if r.jwtAuth != nil {
		api.POST("/auth/login", r.jwtAuth.LoginHandler)
		api.POST("/auth/refresh", r.jwtAuth.RefreshHandler)
		system.Use(r.jwtAuth.MiddlewareFunc())
	}
	system.GET("/status", r.handler.SystemStatus)
	system.GET("/metrics", r.handler.SystemMetrics)
}

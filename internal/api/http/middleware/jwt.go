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

package middleware

import (
	"context"
	"crypto/subtle"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"
)

const identityKey = "user"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewJWTAuth 创建管理端点用 JWT 中间件。
// 凭据来自环境变量 PDFSHARE_ADMIN_USER（默认 admin）与 PDFSHARE_ADMIN_PASSWORD，
// 后者为空时所有登录都会被拒绝。
func NewJWTAuth(key []byte, timeout, maxRefresh time.Duration) (*jwt.HertzJWTMiddleware, error) {
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "pdf-sharing admin",
		Key:         key,
		Timeout:     timeout,
		MaxRefresh:  maxRefresh,
		IdentityKey: identityKey,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if v, ok := data.(string); ok {
				return jwt.MapClaims{identityKey: v}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(c context.Context, ctx *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(c, ctx)
			return claims[identityKey]
		},
		Authenticator: func(c context.Context, ctx *app.RequestContext) (interface{}, error) {
			var req loginRequest
			if err := ctx.BindJSON(&req); err != nil {
				return nil, jwt.ErrMissingLoginValues
			}
			adminUser := os.Getenv("PDFSHARE_ADMIN_USER")
			if adminUser == "" {
				adminUser = "admin"
			}
			adminPass := os.Getenv("PDFSHARE_ADMIN_PASSWORD")
			if adminPass == "" {
				return nil, jwt.ErrFailedAuthentication
			}
			if subtle.ConstantTimeCompare([]byte(req.Username), []byte(adminUser)) != 1 ||
				subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPass)) != 1 {
				return nil, jwt.ErrFailedAuthentication
			}
			return req.Username, nil
		},
		Unauthorized: func(c context.Context, ctx *app.RequestContext, code int, message string) {
			ctx.JSON(code, map[string]string{"error": message})
		},
	})
}

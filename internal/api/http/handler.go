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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	papp "pdf-sharing/internal/app"
	"pdf-sharing/internal/upload"
	pkgerrors "pdf-sharing/pkg/errors"
	"pdf-sharing/pkg/metrics"
)

// Handler HTTP 处理器：所有业务出口走 PDFService，自己只做协议编解码
type Handler struct {
	svc       *papp.PDFService
	startedAt time.Time
}

// NewHandler 创建 HTTP 处理器
func NewHandler(svc *papp.PDFService) *Handler {
	return &Handler{
		svc:       svc,
		startedAt: time.Now(),
	}
}

// writeError 把 service 层错误映射为统一的 {error, details?} 响应体。
// 非 APIError 的错误按 500 处理，避免 handler 漏掉任何出口路径。
func writeError(c context.Context, ctx *app.RequestContext, err error) {
	apiErr, ok := pkgerrors.AsAPIError(err)
	if !ok {
		hlog.CtxErrorf(c, "未分类错误: %v", err)
		ctx.JSON(consts.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
		})
		return
	}
	body := map[string]string{"error": apiErr.Message}
	if apiErr.Kind == pkgerrors.KindInternal {
		hlog.CtxErrorf(c, "%s: %v", apiErr.Message, apiErr.Err)
		if apiErr.Err != nil {
			body["details"] = apiErr.Err.Error()
		}
	}
	ctx.JSON(apiErr.Status, body)
}

// HealthCheck 健康检查
// GET /api/health
func (h *Handler) HealthCheck(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"service":   "pdf-sharing-api",
	})
}

// Upload 上传 PDF（multipart：file + ownerName + 可选 password）
// POST /api/upload
func (h *Handler) Upload(c context.Context, ctx *app.RequestContext) {
	start := time.Now()

	fileHeader, err := ctx.FormFile("file")
	ownerName := string(ctx.FormValue("ownerName"))
	if err != nil || ownerName == "" {
		metrics.UploadTotal.WithLabelValues("validation").Inc()
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "File and username are required",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		metrics.UploadTotal.WithLabelValues("internal").Inc()
		writeError(c, ctx, pkgerrors.Internal("Failed to upload file", err))
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		metrics.UploadTotal.WithLabelValues("internal").Inc()
		writeError(c, ctx, pkgerrors.Internal("Failed to upload file", err))
		return
	}

	result, err := h.svc.Upload(c, &papp.UploadInput{
		OwnerName:         ownerName,
		OriginalFilename:  fileHeader.Filename,
		DeclaredMediaType: fileHeader.Header.Get("Content-Type"),
		Password:          string(ctx.FormValue("password")),
		Data:              data,
	})
	if err != nil {
		if apiErr, ok := pkgerrors.AsAPIError(err); ok && apiErr.Kind == pkgerrors.KindValidation {
			metrics.UploadTotal.WithLabelValues("validation").Inc()
		} else {
			metrics.UploadTotal.WithLabelValues("internal").Inc()
		}
		writeError(c, ctx, err)
		return
	}

	metrics.UploadTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(len(data)))
	metrics.UploadDuration.Observe(time.Since(start).Seconds())
	hlog.CtxInfof(c, "PDF 已上传 owner=%s filename=%s size=%d protected=%v",
		ownerName, result.Filename, len(data), result.IsProtected)

	ctx.JSON(consts.StatusOK, map[string]interface{}{
		"message":     "File uploaded successfully",
		"filename":    result.Filename,
		"fileUrl":     result.URL,
		"isProtected": result.IsProtected,
	})
}

// Search 按 ownerName 查询文件投影
// GET /api/search?ownerName=
func (h *Handler) Search(c context.Context, ctx *app.RequestContext) {
	pdfs, err := h.svc.Search(c, ctx.Query("ownerName"))
	if err != nil {
		writeError(c, ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]interface{}{
		"success": true,
		"pdfs":    pdfs,
	})
}

// RetrieveInline 浏览器内联查看入口
// GET /api/pdf/:ownerName/:filename?password=
func (h *Handler) RetrieveInline(c context.Context, ctx *app.RequestContext) {
	start := time.Now()
	ownerName := ctx.Param("ownerName")
	filename := ctx.Param("filename")
	if ownerName == "" || filename == "" {
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "Invalid request parameters",
		})
		return
	}
	// 路径段可能带 URL 编码（上传名含时间戳前缀，通常无需，但保持与客户端编码兼容）
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}

	result, err := h.svc.Fetch(c, ownerName, filename, ctx.Query("password"))
	if err != nil {
		metrics.RetrievalTotal.WithLabelValues("inline", retrievalResult(err)).Inc()
		writeError(c, ctx, err)
		return
	}

	metrics.RetrievalTotal.WithLabelValues("inline", "ok").Inc()
	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.Filename))
	ctx.Data(consts.StatusOK, upload.MediaTypePDF, result.Data)
}

type downloadRequest struct {
	FileID   string `json:"fileId"`
	Password string `json:"password"`
}

// Download 下载入口：按 fileId 取文件，attachment 方式返回
// POST /api/pdf/download
func (h *Handler) Download(c context.Context, ctx *app.RequestContext) {
	start := time.Now()
	var req downloadRequest
	if err := ctx.BindJSON(&req); err != nil || req.FileID == "" {
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "File ID is required",
		})
		return
	}

	result, err := h.svc.FetchByID(c, req.FileID, req.Password)
	if err != nil {
		metrics.RetrievalTotal.WithLabelValues("download", retrievalResult(err)).Inc()
		writeError(c, ctx, err)
		return
	}

	metrics.RetrievalTotal.WithLabelValues("download", "ok").Inc()
	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	ctx.Data(consts.StatusOK, upload.MediaTypePDF, result.Data)
}

type verifyPasswordRequest struct {
	FileID   string `json:"fileId"`
	Password string `json:"password"`
}

// VerifyPassword 只校验口令不回传文件，前端打开查看器前使用
// POST /api/pdf/verify-password
func (h *Handler) VerifyPassword(c context.Context, ctx *app.RequestContext) {
	var req verifyPasswordRequest
	if err := ctx.BindJSON(&req); err != nil || req.FileID == "" || req.Password == "" {
		metrics.PasswordVerifyTotal.WithLabelValues("missing").Inc()
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "File ID and password are required",
		})
		return
	}

	if err := h.svc.VerifyPassword(c, req.FileID, req.Password); err != nil {
		metrics.PasswordVerifyTotal.WithLabelValues("invalid").Inc()
		writeError(c, ctx, err)
		return
	}

	metrics.PasswordVerifyTotal.WithLabelValues("ok").Inc()
	ctx.JSON(consts.StatusOK, map[string]interface{}{
		"message":  "Password verified successfully",
		"verified": true,
	})
}

// SystemStatus 系统状态
// GET /api/system/status
func (h *Handler) SystemStatus(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]interface{}{
		"service":        "pdf-sharing-api",
		"status":         "running",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"timestamp":      time.Now().Unix(),
	})
}

// SystemMetrics Prometheus 指标导出
// GET /api/system/metrics
func (h *Handler) SystemMetrics(c context.Context, ctx *app.RequestContext) {
	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		hlog.CtxErrorf(c, "导出指标失败: %v", err)
		ctx.JSON(consts.StatusInternalServerError, map[string]string{
			"error": "Internal server error",
		})
		return
	}
	ctx.Data(consts.StatusOK, "text/plain; version=0.0.4; charset=utf-8", buf.Bytes())
}

// retrievalResult 将检索错误归入指标 result 标签
func retrievalResult(err error) string {
	apiErr, ok := pkgerrors.AsAPIError(err)
	if !ok {
		return "internal"
	}
	switch apiErr.Kind {
	case pkgerrors.KindAuth:
		return "auth"
	case pkgerrors.KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

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
	"encoding/json"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"golang.org/x/crypto/bcrypt"

	papp "pdf-sharing/internal/app"
	"pdf-sharing/internal/storage/metadata"
	"pdf-sharing/internal/storage/object"
	"pdf-sharing/pkg/auth"
	"pdf-sharing/pkg/log"
)

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()
	logger, err := log.NewLogger(&log.Config{Level: "error"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	svc := papp.NewPDFService(
		metadata.NewMemoryStore(),
		object.NewMemoryStore(),
		nil,
		auth.NewPasswordHasherWithCost(bcrypt.MinCost),
		logger,
	)
	h := server.Default(server.WithHostPorts(":0"))
	NewRouter(NewHandler(svc), nil).registerForTest(h)
	return h
}

// registerForTest 与 Register 相同但不挂 CORS 中间件，避免测试关心响应头
func (r *Router) registerForTest(h *server.Hertz) {
	api := h.Group("/api")
	api.GET("/health", r.handler.HealthCheck)
	api.POST("/upload", r.handler.Upload)
	api.GET("/search", r.handler.Search)
	api.GET("/pdf/:ownerName/:filename", r.handler.RetrieveInline)
	api.POST("/pdf/download", r.handler.Download)
	api.POST("/pdf/verify-password", r.handler.VerifyPassword)
	api.GET("/system/status", r.handler.SystemStatus)
	api.GET("/system/metrics", r.handler.SystemMetrics)
}

// multipartUpload 构造 multipart 请求体；contentType 为空时省略文件 part 的 Content-Type
func multipartUpload(t *testing.T, ownerName, filename, password, contentType string, data []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if data != nil {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		if contentType != "" {
			partHeader.Set("Content-Type", contentType)
		}
		part, err := w.CreatePart(partHeader)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("part.Write: %v", err)
		}
	}
	if ownerName != "" {
		_ = w.WriteField("ownerName", ownerName)
	}
	if password != "" {
		_ = w.WriteField("password", password)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}
	return buf.Bytes(), w.FormDataContentType()
}

func doUpload(t *testing.T, h *server.Hertz, ownerName, filename, password string, data []byte) *ut.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, ownerName, filename, password, "application/pdf", data)
	return ut.PerformRequest(h.Engine, "POST", "/api/upload",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: contentType})
}

// searchFirstID 上传后通过搜索拿到文件 ID 与生成的文件名
func searchFirstID(t *testing.T, h *server.Hertz, ownerName string) (string, string) {
	t.Helper()
	w := ut.PerformRequest(h.Engine, "GET", "/api/search?ownerName="+ownerName, &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("search status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	var out struct {
		PDFs []struct {
			ID       string `json:"id"`
			Filename string `json:"filename"`
		} `json:"pdfs"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		t.Fatalf("unmarshal search: %v", err)
	}
	if len(out.PDFs) == 0 {
		t.Fatal("search returned no pdfs")
	}
	return out.PDFs[0].ID, out.PDFs[0].Filename
}

func TestHealthCheck(t *testing.T) {
	h := newTestServer(t)
	w := ut.PerformRequest(h.Engine, "GET", "/api/health", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Errorf("HealthCheck status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("ok")) {
		t.Errorf("HealthCheck body: %s", resp.Body())
	}
}

func TestUploadSuccess(t *testing.T) {
	h := newTestServer(t)
	w := doUpload(t, h, "alice", "report.pdf", "", []byte("%PDF-1.4 data"))
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("upload status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	if !bytes.Contains(resp.Body(), []byte("File uploaded successfully")) {
		t.Errorf("upload body: %s", resp.Body())
	}
	if !bytes.Contains(resp.Body(), []byte(`"isProtected":false`)) {
		t.Errorf("upload body missing isProtected: %s", resp.Body())
	}
}

func TestUploadMissingFields(t *testing.T) {
	h := newTestServer(t)

	// 缺文件
	body, contentType := multipartUpload(t, "alice", "", "", "", nil)
	w := ut.PerformRequest(h.Engine, "POST", "/api/upload",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: contentType})
	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("missing file: status got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("File and username are required")) {
		t.Errorf("missing file body: %s", resp.Body())
	}

	// 缺 ownerName
	body, contentType = multipartUpload(t, "", "doc.pdf", "", "application/pdf", []byte("x"))
	w = ut.PerformRequest(h.Engine, "POST", "/api/upload",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: contentType})
	resp = w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("missing owner: status got %d", resp.StatusCode())
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	h := newTestServer(t)
	body, contentType := multipartUpload(t, "alice", "notes.txt", "", "text/plain", []byte("plain text"))
	w := ut.PerformRequest(h.Engine, "POST", "/api/upload",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: contentType})
	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("non-pdf status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("Only PDF files are allowed")) {
		t.Errorf("non-pdf body: %s", resp.Body())
	}
}

func TestSearch(t *testing.T) {
	h := newTestServer(t)

	// 无参数
	w := ut.PerformRequest(h.Engine, "GET", "/api/search", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("no param status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("Username is required")) {
		t.Errorf("no param body: %s", resp.Body())
	}

	// 无记录
	w = ut.PerformRequest(h.Engine, "GET", "/api/search?ownerName=nobody", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp = w.Result()
	if resp.StatusCode() != 404 {
		t.Errorf("empty status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("No PDFs found for this username")) {
		t.Errorf("empty body: %s", resp.Body())
	}

	// 命中，投影不含口令哈希
	doUpload(t, h, "alice", "report.pdf", "pw", []byte("data"))
	w = ut.PerformRequest(h.Engine, "GET", "/api/search?ownerName=alice", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp = w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("hit status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	if !bytes.Contains(resp.Body(), []byte(`"isProtected":true`)) {
		t.Errorf("hit body missing isProtected: %s", resp.Body())
	}
	if bytes.Contains(resp.Body(), []byte("$2")) {
		t.Errorf("search body leaks password hash: %s", resp.Body())
	}
}

func TestRetrieveInline(t *testing.T) {
	h := newTestServer(t)
	data := []byte("%PDF-1.4 inline body")
	doUpload(t, h, "alice", "doc.pdf", "", data)
	_, filename := searchFirstID(t, h, "alice")

	w := ut.PerformRequest(h.Engine, "GET", "/api/pdf/alice/"+filename, &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("inline status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	if !bytes.Equal(resp.Body(), data) {
		t.Errorf("inline body mismatch: %s", resp.Body())
	}
	if got := string(resp.Header.ContentType()); got != "application/pdf" {
		t.Errorf("inline content type: got %s", got)
	}
	if got := string(resp.Header.Get("Content-Disposition")); !bytes.Contains([]byte(got), []byte("inline")) {
		t.Errorf("inline disposition: got %s", got)
	}
}

func TestRetrieveInlineProtected(t *testing.T) {
	h := newTestServer(t)
	doUpload(t, h, "alice", "secret.pdf", "hunter2", []byte("data"))
	_, filename := searchFirstID(t, h, "alice")

	// 无口令 401
	w := ut.PerformRequest(h.Engine, "GET", "/api/pdf/alice/"+filename, &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 401 {
		t.Errorf("no password status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("Password required")) {
		t.Errorf("no password body: %s", resp.Body())
	}

	// 错口令 401
	w = ut.PerformRequest(h.Engine, "GET", "/api/pdf/alice/"+filename+"?password=wrong", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp = w.Result()
	if resp.StatusCode() != 401 {
		t.Errorf("wrong password status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("Invalid password")) {
		t.Errorf("wrong password body: %s", resp.Body())
	}

	// 正确口令 200
	w = ut.PerformRequest(h.Engine, "GET", "/api/pdf/alice/"+filename+"?password=hunter2", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp = w.Result()
	if resp.StatusCode() != 200 {
		t.Errorf("correct password status: got %d body %s", resp.StatusCode(), resp.Body())
	}
}

func TestRetrieveInlineNotFound(t *testing.T) {
	h := newTestServer(t)
	w := ut.PerformRequest(h.Engine, "GET", "/api/pdf/alice/missing.pdf", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 404 {
		t.Errorf("not found status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("PDF file not found")) {
		t.Errorf("not found body: %s", resp.Body())
	}
}

func TestDownload(t *testing.T) {
	h := newTestServer(t)
	data := []byte("%PDF-1.4 download body")
	doUpload(t, h, "alice", "dl.pdf", "pw", data)
	id, _ := searchFirstID(t, h, "alice")

	// 缺 fileId
	body := []byte(`{}`)
	w := ut.PerformRequest(h.Engine, "POST", "/api/pdf/download",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("missing fileId status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("File ID is required")) {
		t.Errorf("missing fileId body: %s", resp.Body())
	}

	// 未知 fileId
	body = []byte(`{"fileId":"does-not-exist","password":"pw"}`)
	w = ut.PerformRequest(h.Engine, "POST", "/api/pdf/download",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp = w.Result()
	if resp.StatusCode() != 404 {
		t.Errorf("unknown fileId status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("PDF not found")) {
		t.Errorf("unknown fileId body: %s", resp.Body())
	}

	// 正确口令 attachment 下载，内容逐字节一致
	body = []byte(`{"fileId":"` + id + `","password":"pw"}`)
	w = ut.PerformRequest(h.Engine, "POST", "/api/pdf/download",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp = w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("download status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	if !bytes.Equal(resp.Body(), data) {
		t.Errorf("download body mismatch")
	}
	if got := string(resp.Header.Get("Content-Disposition")); !bytes.Contains([]byte(got), []byte("attachment")) {
		t.Errorf("download disposition: got %s", got)
	}
}

func TestVerifyPassword(t *testing.T) {
	h := newTestServer(t)
	doUpload(t, h, "alice", "secret.pdf", "pw", []byte("data"))
	id, _ := searchFirstID(t, h, "alice")

	// 缺参数
	body := []byte(`{"fileId":"` + id + `"}`)
	w := ut.PerformRequest(h.Engine, "POST", "/api/pdf/verify-password",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Errorf("missing password status: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("File ID and password are required")) {
		t.Errorf("missing password body: %s", resp.Body())
	}

	// 错口令
	body = []byte(`{"fileId":"` + id + `","password":"wrong"}`)
	w = ut.PerformRequest(h.Engine, "POST", "/api/pdf/verify-password",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp = w.Result()
	if resp.StatusCode() != 401 {
		t.Errorf("wrong password status: got %d", resp.StatusCode())
	}

	// 正确口令
	body = []byte(`{"fileId":"` + id + `","password":"pw"}`)
	w = ut.PerformRequest(h.Engine, "POST", "/api/pdf/verify-password",
		&ut.Body{Body: bytes.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp = w.Result()
	if resp.StatusCode() != 200 {
		t.Errorf("verify status: got %d body %s", resp.StatusCode(), resp.Body())
	}
	if !bytes.Contains(resp.Body(), []byte("Password verified successfully")) {
		t.Errorf("verify body: %s", resp.Body())
	}
}

func TestSystemEndpoints(t *testing.T) {
	h := newTestServer(t)

	w := ut.PerformRequest(h.Engine, "GET", "/api/system/status", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Errorf("status endpoint: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("running")) {
		t.Errorf("status body: %s", resp.Body())
	}

	w = ut.PerformRequest(h.Engine, "GET", "/api/system/metrics", &ut.Body{Body: bytes.NewReader(nil), Len: 0})
	resp = w.Result()
	if resp.StatusCode() != 200 {
		t.Errorf("metrics endpoint: got %d", resp.StatusCode())
	}
	if !bytes.Contains(resp.Body(), []byte("pdfshare_")) {
		t.Errorf("metrics body: %s", resp.Body())
	}
}

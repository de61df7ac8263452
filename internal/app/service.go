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

package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"pdf-sharing/internal/storage/cache"
	"pdf-sharing/internal/storage/metadata"
	"pdf-sharing/internal/storage/object"
	"pdf-sharing/internal/upload"
	"pdf-sharing/pkg/auth"
	pkgerrors "pdf-sharing/pkg/errors"
	"pdf-sharing/pkg/log"
	"pdf-sharing/pkg/metrics"
)

const defaultSearchCacheTTL = 30 * time.Second

// PDFService 核心门面：上传、检索、口令校验。API 层仅依赖此类型，不直接调用 storage。
// 进程级单例，由 bootstrap 装配后传入 handler。
type PDFService struct {
	meta     metadata.Store
	blobs    object.Store
	cache    cache.Store // 可为 nil（未启用）
	hasher   *auth.PasswordHasher
	logger   *log.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewPDFService 创建 PDFService；cacheStore 可为 nil
func NewPDFService(meta metadata.Store, blobs object.Store, cacheStore cache.Store, hasher *auth.PasswordHasher, logger *log.Logger) *PDFService {
	return &PDFService{
		meta:     meta,
		blobs:    blobs,
		cache:    cacheStore,
		hasher:   hasher,
		logger:   logger,
		cacheTTL: defaultSearchCacheTTL,
		now:      time.Now,
	}
}

// SetSearchCacheTTL 覆盖搜索投影缓存时长
func (s *PDFService) SetSearchCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

func searchCacheKey(ownerName string) string {
	return "search:" + ownerName
}

func blobPath(ownerName, filename string) string {
	return ownerName + "/" + filename
}

func accessURL(ownerName, filename string) string {
	return "/api/pdf/" + ownerName + "/" + filename
}

// Upload 校验并落盘一次上传：先写 blob，再插入元数据；插入失败时删除已写 blob 补偿
func (s *PDFService) Upload(ctx context.Context, in *UploadInput) (*UploadResult, error) {
	if in.OwnerName == "" || len(in.Data) == 0 {
		return nil, pkgerrors.Validation("File and username are required")
	}
	if in.DeclaredMediaType != upload.MediaTypePDF {
		return nil, pkgerrors.Validation("Only PDF files are allowed")
	}
	if int64(len(in.Data)) > upload.MaxFileSize {
		return nil, pkgerrors.Validation("File size must be less than 10MB")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, pkgerrors.Validation("Password must be at most 72 characters")
	}
	// 页数仅作元数据补充；解析失败不拒绝上传（校验门禁只看声明类型与大小）
	pages, err := upload.CountPages(in.Data)
	if err != nil {
		s.logger.Warn("PDF 页数解析失败", "owner", in.OwnerName, "filename", in.OriginalFilename, "error", err)
		pages = 0
	}

	safeName := upload.SafeFilename(in.OriginalFilename, s.now())
	path := blobPath(in.OwnerName, safeName)

	if err := s.blobs.Put(ctx, path, bytes.NewReader(in.Data), int64(len(in.Data))); err != nil {
		return nil, pkgerrors.Internal("Failed to upload file", err)
	}

	var passwordHash string
	if in.Password != "" {
		passwordHash, err = s.hasher.Hash(in.Password)
		if err != nil {
			// 口令哈希失败时回收已写 blob
			_ = s.blobs.Delete(ctx, path)
			return nil, pkgerrors.Internal("Failed to upload file", err)
		}
	}

	rec := &metadata.FileRecord{
		ID:           uuid.NewString(),
		OwnerName:    in.OwnerName,
		Filename:     safeName,
		IsProtected:  passwordHash != "",
		PasswordHash: passwordHash,
		Size:         int64(len(in.Data)),
		Pages:        pages,
		CreatedAt:    s.now().Unix(),
	}
	if err := s.meta.Create(ctx, rec); err != nil {
		// 元数据插入失败：删除 blob，避免产生孤儿文件
		_ = s.blobs.Delete(ctx, path)
		return nil, pkgerrors.Internal("Failed to upload file", err)
	}

	s.invalidateSearch(ctx, in.OwnerName)

	return &UploadResult{
		Filename:    safeName,
		URL:         accessURL(in.OwnerName, safeName),
		IsProtected: rec.IsProtected,
	}, nil
}

// Search 查询 owner 的全部文件投影，最新在前；无记录时返回 NotFound
func (s *PDFService) Search(ctx context.Context, ownerName string) ([]*PDFInfo, error) {
	if ownerName == "" {
		return nil, pkgerrors.Validation("Username is required")
	}

	if s.cache != nil {
		var cached []*PDFInfo
		if err := s.cache.Get(ctx, searchCacheKey(ownerName), &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	recs, err := s.meta.ListByOwner(ctx, ownerName)
	if err != nil {
		return nil, pkgerrors.Internal("Failed to search PDFs", err)
	}
	if len(recs) == 0 {
		return nil, pkgerrors.NotFound("No PDFs found for this username")
	}

	out := make([]*PDFInfo, len(recs))
	for i, r := range recs {
		out[i] = &PDFInfo{
			ID:          r.ID,
			Filename:    r.Filename,
			OwnerName:   r.OwnerName,
			IsProtected: r.IsProtected,
			URL:         accessURL(r.OwnerName, r.Filename),
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, searchCacheKey(ownerName), out, s.cacheTTL); err != nil {
			s.logger.Warn("写入搜索缓存失败", "owner", ownerName, "error", err)
		}
	}
	return out, nil
}

// authorize 共享的口令门禁：三个带口令入口共用，禁止各自分叉
func (s *PDFService) authorize(rec *metadata.FileRecord, password string) error {
	if !rec.IsProtected {
		return nil
	}
	if password == "" {
		return pkgerrors.Auth("Password required")
	}
	if !s.hasher.Verify(password, rec.PasswordHash) {
		return pkgerrors.Auth("Invalid password")
	}
	return nil
}

// Fetch 按 (owner, filename) 检索：门禁通过后返回原始字节
func (s *PDFService) Fetch(ctx context.Context, ownerName, filename, password string) (*FetchResult, error) {
	rec, err := s.meta.GetByOwnerAndFilename(ctx, ownerName, filename)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, pkgerrors.NotFound("PDF file not found")
		}
		return nil, pkgerrors.Internal("Internal server error", err)
	}
	if err := s.authorize(rec, password); err != nil {
		return nil, err
	}
	return s.readBlob(ctx, rec)
}

// FetchByID 按 ID 检索（下载入口）：与 Fetch 共用门禁与读取逻辑
func (s *PDFService) FetchByID(ctx context.Context, id, password string) (*FetchResult, error) {
	rec, err := s.meta.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, pkgerrors.NotFound("PDF not found")
		}
		return nil, pkgerrors.Internal("Internal server error", err)
	}
	if err := s.authorize(rec, password); err != nil {
		return nil, err
	}
	return s.readBlob(ctx, rec)
}

// VerifyPassword 只校验口令，不读文件
func (s *PDFService) VerifyPassword(ctx context.Context, id, password string) error {
	rec, err := s.meta.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return pkgerrors.NotFound("PDF not found")
		}
		return pkgerrors.Internal("Error verifying password", err)
	}
	if !rec.IsProtected {
		return pkgerrors.Validation("This file is not password protected")
	}
	if !s.hasher.Verify(password, rec.PasswordHash) {
		return pkgerrors.Auth("Invalid password")
	}
	return nil
}

// readBlob 读取记录对应的 blob；记录存在但 blob 缺失是数据一致性故障，
// 记日志并计数后按 404 返回，与"无此记录"区分
func (s *PDFService) readBlob(ctx context.Context, rec *metadata.FileRecord) (*FetchResult, error) {
	path := blobPath(rec.OwnerName, rec.Filename)
	rc, err := s.blobs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			metrics.ConsistencyFaultTotal.Inc()
			s.logger.Error("数据一致性故障：元数据存在但 blob 缺失",
				"id", rec.ID, "owner", rec.OwnerName, "filename", rec.Filename)
			return nil, pkgerrors.NotFound("File not found on server")
		}
		return nil, pkgerrors.Internal("Internal server error", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, pkgerrors.Internal("Internal server error", err)
	}
	return &FetchResult{
		Filename: rec.Filename,
		Data:     data,
		Size:     int64(len(data)),
	}, nil
}

// invalidateSearch 上传后使 owner 的搜索投影缓存失效
func (s *PDFService) invalidateSearch(ctx context.Context, ownerName string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, searchCacheKey(ownerName)); err != nil {
		s.logger.Warn("搜索缓存失效失败", "owner", ownerName, "error", err)
	}
}

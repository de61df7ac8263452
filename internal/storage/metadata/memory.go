package metadata

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgerrors "pdf-sharing/pkg/errors"
)

// MemoryStore 内存元数据存储实现
type MemoryStore struct {
	records []*FileRecord // 插入顺序
	byID    map[string]*FileRecord
	mu      sync.RWMutex
}

// NewMemoryStore 创建新的内存元数据存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*FileRecord),
	}
}

// Create 创建文件记录
func (s *MemoryStore) Create(ctx context.Context, rec *FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return fmt.Errorf("file record with ID %s already exists", rec.ID)
	}
	for _, r := range s.records {
		if r.OwnerName == rec.OwnerName && r.Filename == rec.Filename {
			return fmt.Errorf("file %s already exists for owner %s", rec.Filename, rec.OwnerName)
		}
	}

	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	cp := *rec
	s.records = append(s.records, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

// Get 根据 ID 获取文件记录
func (s *MemoryStore) Get(ctx context.Context, id string) (*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.byID[id]
	if !exists {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "file record %s", id)
	}
	cp := *rec
	return &cp, nil
}

// GetByOwnerAndFilename 根据 (owner, filename) 获取文件记录
func (s *MemoryStore) GetByOwnerAndFilename(ctx context.Context, ownerName, filename string) (*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.OwnerName == ownerName && r.Filename == filename {
			cp := *r
			return &cp, nil
		}
	}
	return nil, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "file %s/%s", ownerName, filename)
}

// ListByOwner 列出 owner 的全部文件记录，最新在前
func (s *MemoryStore) ListByOwner(ctx context.Context, ownerName string) ([]*FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*FileRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].OwnerName == ownerName {
			cp := *s.records[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Close 关闭存储连接（内存实现为空操作）
func (s *MemoryStore) Close() error {
	return nil
}

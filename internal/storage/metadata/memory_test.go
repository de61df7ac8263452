package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "pdf-sharing/pkg/errors"
)

func rec(id, owner, filename string) *FileRecord {
	return &FileRecord{
		ID:        id,
		OwnerName: owner,
		Filename:  filename,
		Size:      1024,
		Pages:     3,
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r := rec("id-1", "alice", "1700000000000-report.pdf")
	require.NoError(t, s.Create(ctx, r))
	assert.NotZero(t, r.CreatedAt, "Create should stamp CreatedAt")

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.OwnerName)
	assert.Equal(t, "1700000000000-report.pdf", got.Filename)

	got, err = s.GetByOwnerAndFilename(ctx, "alice", "1700000000000-report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound), "err = %v", err)

	_, err = s.GetByOwnerAndFilename(ctx, "alice", "nope.pdf")
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound), "err = %v", err)
}

func TestMemoryStoreDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, rec("id-1", "alice", "a.pdf")))
	assert.Error(t, s.Create(ctx, rec("id-1", "bob", "b.pdf")), "duplicate ID must fail")
	assert.Error(t, s.Create(ctx, rec("id-2", "alice", "a.pdf")), "duplicate (owner, filename) must fail")
	// 同名文件属于不同 owner 是允许的
	assert.NoError(t, s.Create(ctx, rec("id-3", "bob", "a.pdf")))
}

func TestMemoryStoreListByOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, rec("id-1", "alice", "first.pdf")))
	require.NoError(t, s.Create(ctx, rec("id-2", "alice", "second.pdf")))
	require.NoError(t, s.Create(ctx, rec("id-3", "bob", "other.pdf")))

	out, err := s.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "second.pdf", out[0].Filename, "newest first")
	assert.Equal(t, "first.pdf", out[1].Filename)

	out, err = s.ListByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, rec("id-1", "alice", "a.pdf")))

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	got.OwnerName = "mallory"

	again, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.OwnerName, "mutating a returned record must not affect the store")
}

package object

import (
	"context"
	"io"
)

// Store 对象存储接口；path 形如 "{ownerName}/{filename}"
type Store interface {
	// Put 写入对象
	Put(ctx context.Context, path string, data io.Reader, size int64) error
	// Get 读取对象
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete 删除对象
	Delete(ctx context.Context, path string) error
	// Exists 检查对象是否存在
	Exists(ctx context.Context, path string) (bool, error)
	// Close 关闭存储连接
	Close() error
}

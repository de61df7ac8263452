package metadata

import (
	"context"
)

// Store 文件元数据存储接口
type Store interface {
	// Create 创建文件记录
	Create(ctx context.Context, rec *FileRecord) error
	// Get 根据 ID 获取文件记录
	Get(ctx context.Context, id string) (*FileRecord, error)
	// GetByOwnerAndFilename 根据 (owner, filename) 获取文件记录
	GetByOwnerAndFilename(ctx context.Context, ownerName, filename string) (*FileRecord, error)
	// ListByOwner 列出 owner 的全部文件记录，按插入顺序倒序（最新在前）
	ListByOwner(ctx context.Context, ownerName string) ([]*FileRecord, error)
	// Close 关闭存储连接
	Close() error
}

// FileRecord 一个已上传 PDF 的元数据行；创建后不可变，无更新/删除操作
type FileRecord struct {
	ID           string `json:"id"`           // 服务端生成的唯一标识
	OwnerName    string `json:"owner_name"`   // 用户自选的归属名，不唯一
	Filename     string `json:"filename"`     // 服务端生成的安全文件名，owner 目录内唯一
	IsProtected  bool   `json:"is_protected"` // true 当且仅当 PasswordHash 非空
	PasswordHash string `json:"-"`            // bcrypt 哈希，永不出现在响应中
	Size         int64  `json:"size"`         // 文件字节数
	Pages        int    `json:"pages"`        // PDF 页数
	CreatedAt    int64  `json:"created_at"`   // 创建时间（unix 秒）
}

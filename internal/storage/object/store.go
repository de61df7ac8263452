package object

import (
	"fmt"

	"pdf-sharing/pkg/config"
)

// NewStore 根据配置创建对象存储（memory | filesystem）
func NewStore(cfg config.ObjectConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "", "filesystem":
		return NewFilesystemStore(cfg.Root)
	default:
		return nil, fmt.Errorf("不支持的对象存储类型: %s", cfg.Type)
	}
}

package metadata

import (
	"context"
	"fmt"

	"pdf-sharing/pkg/config"
)

// NewStore 根据配置创建元数据存储（memory | postgres）
func NewStore(ctx context.Context, cfg config.MetadataConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("metadata 存储 type=postgres 时 dsn 必填")
		}
		if cfg.Migrate {
			if err := RunMigrations(ctx, cfg.DSN); err != nil {
				return nil, fmt.Errorf("执行数据库迁移失败: %w", err)
			}
		}
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的元数据存储类型: %s", cfg.Type)
	}
}

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
	"context"
	"fmt"
	"time"

	"pdf-sharing/internal/storage/cache"
	"pdf-sharing/internal/storage/metadata"
	"pdf-sharing/internal/storage/object"
	"pdf-sharing/pkg/auth"
	"pdf-sharing/pkg/config"
	"pdf-sharing/pkg/log"
	"pdf-sharing/pkg/secrets"
)

// Bootstrap 统一初始化：进程级服务（日志、存储、哈希器）只建一次，按句柄传入各层
type Bootstrap struct {
	Config        *config.Config
	Logger        *log.Logger
	MetadataStore metadata.Store
	ObjectStore   object.Store
	Cache         cache.Store
	Hasher        *auth.PasswordHasher
	PDFService    *PDFService
}

// NewBootstrap 根据配置创建 Bootstrap（日志/Secret/DB/Blob/Cache/Service）
func NewBootstrap(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	logCfg := &log.Config{}
	if cfg != nil {
		logCfg.Level = cfg.Log.Level
		logCfg.Format = cfg.Log.Format
		logCfg.File = cfg.Log.File
	}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	metaCfg := config.MetadataConfig{}
	objCfg := config.ObjectConfig{}
	cacheCfg := config.CacheConfig{}
	if cfg != nil {
		metaCfg = cfg.Storage.Metadata
		objCfg = cfg.Storage.Object
		cacheCfg = cfg.Storage.Cache
	}

	// dsn_secret 非空时从 secret store 取连接串（vault | env | memory）
	if metaCfg.DSNSecret != "" {
		secretStore, err := secrets.NewStore(secrets.Config{
			Provider: cfg.Secrets.Provider,
			Config:   cfg.Secrets.Config,
		})
		if err != nil {
			return nil, fmt.Errorf("初始化 secret store 失败: %w", err)
		}
		dsn, err := secretStore.Get(ctx, metaCfg.DSNSecret)
		if err != nil {
			return nil, fmt.Errorf("读取 DSN secret 失败: %w", err)
		}
		metaCfg.DSN = dsn
	}

	metaStore, err := metadata.NewStore(ctx, metaCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化元数据存储失败: %w", err)
	}

	objStore, err := object.NewStore(objCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储失败: %w", err)
	}

	cacheStore, err := cache.NewCache(ctx, cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化缓存失败: %w", err)
	}

	hasher := auth.NewPasswordHasher()
	svc := NewPDFService(metaStore, objStore, cacheStore, hasher, logger)
	if cacheCfg.TTL != "" {
		if d, err := time.ParseDuration(cacheCfg.TTL); err == nil && d > 0 {
			svc.SetSearchCacheTTL(d)
		}
	}

	return &Bootstrap{
		Config:        cfg,
		Logger:        logger,
		MetadataStore: metaStore,
		ObjectStore:   objStore,
		Cache:         cacheStore,
		Hasher:        hasher,
		PDFService:    svc,
	}, nil
}

// Close 关闭全部存储连接
func (b *Bootstrap) Close() error {
	var firstErr error
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if b.ObjectStore != nil {
		if err := b.ObjectStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if b.MetadataStore != nil {
		if err := b.MetadataStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

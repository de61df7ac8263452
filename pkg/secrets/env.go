// Copyright 2026 Abir4testing
// Environment variable based secret store

package secrets

import (
	"context"
	"os"
	"sort"
	"strings"

	pkgerrors "pdf-sharing/pkg/errors"
)

// envStore 从进程环境变量取 secret，key 即变量名（如 PDFSHARE_DB_DSN）。
// 不配 vault 时的默认来源；空值与未设置同样视为缺失。
type envStore struct{}

// NewEnvStore 创建环境变量 secret store
func NewEnvStore() Store {
	return &envStore{}
}

func (e *envStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", pkgerrors.Wrapf(pkgerrors.ErrNotFound, "环境变量 %s 未设置", key)
	}
	return value, nil
}

func (e *envStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Setenv(key, value)
}

func (e *envStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Unsetenv(key)
}

func (e *envStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	for _, kv := range os.Environ() {
		name, _, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(name, prefix) {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

package secrets

import (
	"context"
	"errors"
	"strings"
	"testing"

	pkgerrors "pdf-sharing/pkg/errors"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		wantErr     bool
		errContains string
	}{
		{name: "default is env", provider: "", wantErr: false},
		{name: "memory", provider: "memory", wantErr: false},
		{name: "env", provider: "env", wantErr: false},
		{name: "unknown provider", provider: "unknown", wantErr: true, errContains: "unsupported secret provider"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewStore(Config{Provider: tc.provider})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tc.errContains != "" && !strings.Contains(err.Error(), tc.errContains) {
					t.Fatalf("error = %q, want contains %q", err.Error(), tc.errContains)
				}
				if store != nil {
					t.Fatalf("store should be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store == nil {
				t.Fatalf("store should not be nil")
			}
		})
	}
}

func TestMemoryStoreContract(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "database_dsn"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Get of missing key: got %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "database_dsn", "postgres://localhost/pdfs"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "database_dsn")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "postgres://localhost/pdfs" {
		t.Fatalf("Get = %q", got)
	}

	if err := store.Set(ctx, "database_password", "hunter2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys, err := store.List(ctx, "database")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// List 按字典序返回
	if len(keys) != 2 || keys[0] != "database_dsn" || keys[1] != "database_password" {
		t.Fatalf("List = %v", keys)
	}

	if err := store.Delete(ctx, "database_dsn"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "database_dsn"); err == nil {
		t.Fatal("Get after Delete should fail")
	}
}

func TestEnvStore(t *testing.T) {
	ctx := context.Background()
	store := NewEnvStore()

	t.Setenv("PDFSHARE_TEST_SECRET", "s3cret")
	got, err := store.Get(ctx, "PDFSHARE_TEST_SECRET")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "s3cret" {
		t.Fatalf("Get = %q", got)
	}

	if _, err := store.Get(ctx, "PDFSHARE_TEST_SECRET_MISSING"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatal("Get of unset variable should fail with ErrNotFound")
	}

	// 空值视为缺失，避免空 DSN 流入连接池
	t.Setenv("PDFSHARE_TEST_SECRET_EMPTY", "")
	if _, err := store.Get(ctx, "PDFSHARE_TEST_SECRET_EMPTY"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatal("Get of empty variable should fail with ErrNotFound")
	}
}

func TestStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, store := range []Store{NewMemoryStore(), NewEnvStore()} {
		if _, err := store.Get(ctx, "whatever"); !errors.Is(err, context.Canceled) {
			t.Errorf("Get: got %v, want context.Canceled", err)
		}
		if err := store.Set(ctx, "whatever", "v"); !errors.Is(err, context.Canceled) {
			t.Errorf("Set: got %v, want context.Canceled", err)
		}
		if _, err := store.List(ctx, ""); !errors.Is(err, context.Canceled) {
			t.Errorf("List: got %v, want context.Canceled", err)
		}
	}
}

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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api:
  port: 9000
storage:
  metadata:
    type: "postgres"
    dsn: "postgres://localhost/pdfs"
    migrate: true
  object:
    type: "filesystem"
    root: "uploads"
  cache:
    type: "redis"
    addr: "localhost:6379"
    ttl: "30s"
log:
  level: "debug"
`
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port: got %d", cfg.API.Port)
	}
	if cfg.Storage.Metadata.Type != "postgres" {
		t.Errorf("Storage.Metadata.Type: got %q", cfg.Storage.Metadata.Type)
	}
	if !cfg.Storage.Metadata.Migrate {
		t.Error("Storage.Metadata.Migrate: got false")
	}
	if cfg.Storage.Object.Root != "uploads" {
		t.Errorf("Storage.Object.Root: got %q", cfg.Storage.Object.Root)
	}
	if cfg.Storage.Cache.TTL != "30s" {
		t.Errorf("Storage.Cache.TTL: got %q", cfg.Storage.Cache.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q", cfg.Log.Level)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig of a missing file should fail")
	}
}

func TestLoadConfig_EnvReplacement(t *testing.T) {
	dir := t.TempDir()
	yaml := `
storage:
  metadata:
    type: "postgres"
    dsn: "${PDFSHARE_TEST_DSN}"
`
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("PDFSHARE_TEST_DSN", "postgres://user:pw@db/pdfs")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Metadata.DSN != "postgres://user:pw@db/pdfs" {
		t.Errorf("DSN env replacement failed: got %q", cfg.Storage.Metadata.DSN)
	}
}

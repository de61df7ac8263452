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

package metadata

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pdf-sharing/internal/storage/metadata/migrations"
	pkgerrors "pdf-sharing/pkg/errors"
)

// pgStore PostgreSQL 实现：pdf_files 表，实现 Store 接口
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore 创建基于 PostgreSQL 的元数据存储；dsn 为连接串
func NewPostgresStore(ctx context.Context, dsn string) (Store, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgStore{pool: pool}, nil
}

// RunMigrations 通过 goose 执行嵌入的 schema 迁移（storage.metadata.migrate=true 时启动前调用）
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close 关闭连接池
func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *pgStore) Create(ctx context.Context, rec *FileRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pdf_files (id, owner_name, filename, is_protected, password_hash, size_bytes, pages, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.OwnerName, rec.Filename, rec.IsProtected, rec.PasswordHash, rec.Size, rec.Pages, rec.CreatedAt)
	return err
}

func (s *pgStore) Get(ctx context.Context, id string) (*FileRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_name, filename, is_protected, password_hash, size_bytes, pages, created_at
		 FROM pdf_files WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "file record %s", id)
	}
	return rec, err
}

func (s *pgStore) GetByOwnerAndFilename(ctx context.Context, ownerName, filename string) (*FileRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_name, filename, is_protected, password_hash, size_bytes, pages, created_at
		 FROM pdf_files WHERE owner_name = $1 AND filename = $2`, ownerName, filename)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "file %s/%s", ownerName, filename)
	}
	return rec, err
}

func (s *pgStore) ListByOwner(ctx context.Context, ownerName string) ([]*FileRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_name, filename, is_protected, password_hash, size_bytes, pages, created_at
		 FROM pdf_files WHERE owner_name = $1 ORDER BY seq DESC`, ownerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*FileRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*FileRecord, error) {
	var rec FileRecord
	if err := row.Scan(&rec.ID, &rec.OwnerName, &rec.Filename, &rec.IsProtected,
		&rec.PasswordHash, &rec.Size, &rec.Pages, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

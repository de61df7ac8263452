// Package migrations 嵌入 pdf_files 表的 goose 迁移脚本
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

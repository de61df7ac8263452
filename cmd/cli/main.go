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

// pdfshare 命令行客户端：对 API 服务做上传、搜索、取回与口令校验。
// 使用 PDFSHARE_API_URL 指定服务地址（默认 http://localhost:8080）。
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}
	cmd := os.Args[1]
	args := os.Args[2:]
	switch cmd {
	case "version":
		fmt.Println("pdfshare cli 0.1.0")
	case "health":
		runHealth()
	case "upload":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: pdfshare upload <ownerName> <file> [password]\n")
			os.Exit(1)
		}
		password := ""
		if len(args) > 2 {
			password = args[2]
		}
		runUpload(args[0], args[1], password)
	case "search":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Usage: pdfshare search <ownerName>\n")
			os.Exit(1)
		}
		runSearch(args[0])
	case "get":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: pdfshare get <ownerName> <filename> [password]\n")
			os.Exit(1)
		}
		password := ""
		if len(args) > 2 {
			password = args[2]
		}
		runGet(args[0], args[1], password)
	case "download":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Usage: pdfshare download <fileId> [password] [output]\n")
			os.Exit(1)
		}
		password, output := "", ""
		if len(args) > 1 {
			password = args[1]
		}
		if len(args) > 2 {
			output = args[2]
		}
		runDownload(args[0], password, output)
	case "verify":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: pdfshare verify <fileId> <password>\n")
			os.Exit(1)
		}
		runVerify(args[0], args[1])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pdfshare - PDF 上传分享服务命令行客户端

Usage:
  pdfshare version
  pdfshare health
  pdfshare upload <ownerName> <file> [password]
  pdfshare search <ownerName>
  pdfshare get <ownerName> <filename> [password]
  pdfshare download <fileId> [password] [output]
  pdfshare verify <fileId> <password>`)
}

func runHealth() {
	out, err := checkHealth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "健康检查失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("status: %v\n", out["status"])
}

func runUpload(ownerName, filePath, password string) {
	out, err := uploadPDF(ownerName, filePath, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "上传失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("filename:    %v\n", out["filename"])
	fmt.Printf("url:         %v\n", out["fileUrl"])
	fmt.Printf("isProtected: %v\n", out["isProtected"])
}

func runSearch(ownerName string) {
	pdfs, err := searchPDFs(ownerName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "搜索失败: %v\n", err)
		os.Exit(1)
	}
	for _, p := range pdfs {
		protected := ""
		if v, ok := p["isProtected"].(bool); ok && v {
			protected = " [protected]"
		}
		fmt.Printf("%v  %v%s\n", p["id"], p["filename"], protected)
	}
}

func runGet(ownerName, filename, password string) {
	data, err := fetchPDF(ownerName, filename, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "取回失败: %v\n", err)
		os.Exit(1)
	}
	output := filepath.Base(filename)
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "写入文件失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("已保存 %s（%d 字节）\n", output, len(data))
}

func runDownload(fileID, password, output string) {
	data, err := downloadPDF(fileID, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "下载失败: %v\n", err)
		os.Exit(1)
	}
	if output == "" {
		output = fileID + ".pdf"
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "写入文件失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("已保存 %s（%d 字节）\n", output, len(data))
}

func runVerify(fileID, password string) {
	if err := verifyPassword(fileID, password); err != nil {
		fmt.Fprintf(os.Stderr, "口令校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("verified")
}

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

// PDFInfo 文件的公开投影 DTO，供 API 层使用；绝不携带口令哈希
type PDFInfo struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	OwnerName   string `json:"ownerName"`
	IsProtected bool   `json:"isProtected"`
	URL         string `json:"url"`
}

// UploadInput 上传入参
type UploadInput struct {
	OwnerName         string
	OriginalFilename  string
	DeclaredMediaType string
	Password          string // 空表示不设保护
	Data              []byte
}

// UploadResult 上传结果；不含明文口令与哈希
type UploadResult struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	IsProtected bool   `json:"isProtected"`
}

// FetchResult 检索结果：原始字节与响应头所需信息
type FetchResult struct {
	Filename string // 解码后的生成文件名，用于 Content-Disposition
	Data     []byte
	Size     int64
}

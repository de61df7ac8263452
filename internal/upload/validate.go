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

package upload

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unipdf/v3/model"
)

// MaxFileSize 上传大小上限（10 MiB，恰好等于上限的文件接受）
const MaxFileSize = 10 << 20

// MediaTypePDF PDF 媒体类型，上传声明与检索响应均使用
const MediaTypePDF = "application/pdf"

// CountPages 解析 PDF 字节并返回页数；解析失败说明不是合法 PDF
func CountPages(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty file")
	}

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("打开 PDF 失败: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return 0, fmt.Errorf("获取页数失败: %w", err)
	}
	return numPages, nil
}

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

// Package upload 提供上传校验与文件名生成，纯函数，不做 I/O
package upload

import (
	"strconv"
	"strings"
	"time"
)

// Sanitize 将文件名中 [A-Za-z0-9.-] 之外的字符替换为 '_'
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SafeFilename 生成抗碰撞文件名：毫秒时间戳前缀 + 净化后的原名
func SafeFilename(original string, now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + Sanitize(original)
}

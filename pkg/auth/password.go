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

// Package auth 提供文件访问口令的哈希与校验
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost 口令哈希 cost
const DefaultBcryptCost = 10

// MaxPasswordBytes bcrypt 只取前 72 字节，超长口令须在入口拒绝而非静默截断
const MaxPasswordBytes = 72

// PasswordHasher 口令哈希器，进程级单例，由 bootstrap 装配后传入各 handler
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher 创建默认 cost 的哈希器
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: DefaultBcryptCost}
}

// NewPasswordHasherWithCost 创建指定 cost 的哈希器（测试用低 cost 加速）
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash 生成口令的 bcrypt 哈希（含盐）
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验口令与哈希是否匹配；bcrypt 内部为常数时间比较
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package errors 提供统一错误辅助，不依赖 internal
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// 常用哨兵错误（可按需扩展错误码）
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidArg = errors.New("invalid argument")
)

// Wrap 包装错误并附加消息
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 带格式的 Wrap
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind API 错误分类，对应 HTTP 状态
type Kind string

const (
	KindValidation Kind = "validation" // 400
	KindAuth       Kind = "auth"       // 401
	KindNotFound   Kind = "not_found"  // 404
	KindInternal   Kind = "internal"   // 500
)

// APIError 带分类与 HTTP 状态的错误，handler 层可穷举所有出口路径
type APIError struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Validation 构造 400 错误（入参缺失/非法）
func Validation(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg, Status: http.StatusBadRequest}
}

// Auth 构造 401 错误（密码缺失/错误）
func Auth(msg string) *APIError {
	return &APIError{Kind: KindAuth, Message: msg, Status: http.StatusUnauthorized}
}

// NotFound 构造 404 错误（记录或文件不存在）
func NotFound(msg string) *APIError {
	return &APIError{Kind: KindNotFound, Message: msg, Status: http.StatusNotFound}
}

// Internal 构造 500 错误并保留底层原因
func Internal(msg string, err error) *APIError {
	return &APIError{Kind: KindInternal, Message: msg, Status: http.StatusInternalServerError, Err: err}
}

// AsAPIError 提取链上的 APIError；非 APIError 返回 false
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

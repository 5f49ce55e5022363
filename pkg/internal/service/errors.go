// 类型化业务错误，handler 层据此映射 HTTP 状态码：
// ValidationError→400、NotFoundError→404、ConflictError→409、StorageError→500.
package service

import (
	"errors"
	"fmt"
)

// ValidationError 输入不合法.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError 创建校验错误.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError 资源不存在，或不属于当前用户（两者不可区分）.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConflictError 唯一性冲突（如 slug 已占用）.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// StorageError 对象存储操作失败.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation 判断是否为校验错误.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound 判断是否为未找到错误.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsConflict 判断是否为冲突错误.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsStorage 判断是否为存储错误.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

package services

import "fmt"

// 业务错误分类，控制器据此映射HTTP状态码：
// ValidationError -> 400, NotFoundError -> 404, ConflictError -> 409，
// 其余一律按存储层错误返回500（不向客户端泄露内部细节）。

// ValidationError 请求参数缺失或格式错误
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建参数校验错误
func NewValidationError(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}

// NotFoundError 引用的资源不存在
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(format string, v ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, v...)}
}

// ConflictError 唯一约束冲突
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError 创建唯一约束冲突错误
func NewConflictError(format string, v ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, v...)}
}

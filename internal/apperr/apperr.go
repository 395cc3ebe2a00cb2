package apperr

import "errors"

// Kind 错误分类，response 层统一翻译成 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// Error 业务错误，Code 是返回给前端的稳定错误码（不暴露内部细节）
type Error struct {
	Kind Kind
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

func BadRequest(code string) *Error {
	return &Error{Kind: KindBadRequest, Code: code}
}

func Unauthorized(code string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code}
}

func Forbidden(code string) *Error {
	return &Error{Kind: KindForbidden, Code: code}
}

func NotFound(code string) *Error {
	return &Error{Kind: KindNotFound, Code: code}
}

// From 从错误链里提取业务错误，提取不到视为 Internal
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

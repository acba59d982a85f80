package service

import "errors"

var (
	// ErrNotFound 请求的资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrInvalidInput 参数不合法
	ErrInvalidInput = errors.New("参数不合法")
)

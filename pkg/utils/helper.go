package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页参数的默认值与上限
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePage 读取 current/size 查询参数，非法值回退到默认值
func ParsePage(c *gin.Context) (current, size int) {
	current, err := strconv.Atoi(c.DefaultQuery("current", "1"))
	if err != nil || current < 1 {
		current = 1
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return current, size
}

// ParseID 读取路径中的数字ID
func ParseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

// QueryFilters 把非空的查询参数收集成过滤条件
func QueryFilters(c *gin.Context, keys ...string) map[string]interface{} {
	filters := make(map[string]interface{})
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}

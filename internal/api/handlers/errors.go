package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

// respondError 按错误类型选择业务码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.Error(c, utils.NOT_FOUND, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, algorithm.ErrInvalidConfig):
		utils.Error(c, utils.VALIDATION_ERROR, err.Error())
	case errors.Is(err, algorithm.ErrAlreadyRunning):
		utils.Error(c, utils.CONFLICT, err.Error())
	default:
		utils.Error(c, utils.ERROR, err.Error())
	}
}

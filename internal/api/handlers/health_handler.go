package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

// HealthHandler 处理健康检查相关的请求
type HealthHandler struct {
	running func() bool
}

// NewHealthHandler 创建一个新的健康检查处理器，running 报告是否有仿真在运行
func NewHealthHandler(running func() bool) *HealthHandler {
	return &HealthHandler{running: running}
}

// CheckHealth godoc
// @Summary      健康检查接口
// @Description  返回API服务的运行状态、版本、时间戳以及是否有仿真在运行
// @Tags         系统监控
// @Accept       json
// @Produce      json
// @Success      200  {object}  utils.Response
// @Router       /health [get]
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	status := map[string]interface{}{
		"status":    "up",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "uav-offloading API",
		"version":   "1.0.0",
	}
	if h.running != nil {
		status["simulation_running"] = h.running()
	}

	utils.Success(c, status)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

type OverviewHandler struct {
	overviewService *service.OverviewService
	monitorService  *service.MonitorService
}

func NewOverviewHandler(overviewService *service.OverviewService, monitorService *service.MonitorService) *OverviewHandler {
	return &OverviewHandler{
		overviewService: overviewService,
		monitorService:  monitorService,
	}
}

// GetOverview godoc
// @Summary 获取系统概览信息
// @Description 获取节点、链路、仿真记录与告警数量以及当前仿真状态
// @Tags 系统概览
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=service.OverviewStats}
// @Router /overview [get]
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	stats, err := h.overviewService.GetOverviewStats()
	if err != nil {
		utils.Error(c, utils.ERROR, "获取系统概览信息失败")
		return
	}

	utils.Success(c, stats)
}

// GetSystemMetrics godoc
// @Summary 获取主机运行指标
// @Description CPU、内存、协程数以及当前仿真时隙
// @Tags 系统监控
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.SystemMetrics}
// @Router /system/metrics [get]
func (h *OverviewHandler) GetSystemMetrics(c *gin.Context) {
	metrics, err := h.monitorService.GetSystemMetrics()
	if err != nil {
		utils.Error(c, utils.ERROR, "获取系统指标失败")
		return
	}

	utils.Success(c, metrics)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

type SimulationHandler struct {
	simulationService *service.SimulationService
	alarmService      *service.AlarmService
}

func NewSimulationHandler(simulationService *service.SimulationService, alarmService *service.AlarmService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
		alarmService:      alarmService,
	}
}

// StartSimulation godoc
// @Summary 启动仿真
// @Description 按给定拓扑与参数异步启动一次仿真，未填写的参数取配置文件中的值
// @Tags 仿真管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.StartRequest false "仿真参数"
// @Success 200 {object} utils.Response{data=models.SimulationRun}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /simulation/start [post]
func (h *SimulationHandler) StartSimulation(c *gin.Context) {
	var req service.StartRequest
	// 请求体可以为空
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Error(c, utils.VALIDATION_ERROR, err.Error())
			return
		}
	}

	run, err := h.simulationService.Start(req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, run, "仿真已启动")
}

// StopSimulation godoc
// @Summary 停止仿真
// @Description 取消当前运行的仿真，结果以 canceled 状态保存
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Router /simulation/stop [post]
func (h *SimulationHandler) StopSimulation(c *gin.Context) {
	if !h.simulationService.Stop() {
		utils.SuccessWithMessage(c, nil, "没有正在运行的仿真")
		return
	}
	utils.SuccessWithMessage(c, nil, "仿真已停止")
}

// GetSimulationInfo godoc
// @Summary 获取仿真状态
// @Description 当前（或上一次）仿真的时隙、决策数、丢弃数与最新快照
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=algorithm.SystemInfo}
// @Router /simulation/info [get]
func (h *SimulationHandler) GetSimulationInfo(c *gin.Context) {
	utils.Success(c, h.simulationService.Info())
}

// GetSimulationHistory godoc
// @Summary 获取时隙快照
// @Description 当前（或上一次）仿真保留在内存中的时隙快照
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]define.SlotSnapshot}
// @Router /simulation/history [get]
func (h *SimulationHandler) GetSimulationHistory(c *gin.Context) {
	utils.Success(c, h.simulationService.History())
}

// ClearSimulation godoc
// @Summary 清除仿真状态
// @Description 清除上一次仿真在内存中的状态，仿真运行中不允许清除
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /simulation/clear [post]
func (h *SimulationHandler) ClearSimulation(c *gin.Context) {
	if err := h.simulationService.Clear(); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, nil, "仿真状态已清除")
}

// ListRuns godoc
// @Summary 获取仿真记录列表
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "当前页" default(1)
// @Param size query int false "每页大小" default(10)
// @Param status query string false "结束状态" Enums(running,completed,budget_exhausted,canceled,failed)
// @Param topology query string false "拓扑来源" Enums(sample,ring,database)
// @Success 200 {object} utils.Response{data=utils.PageResult{records=[]models.SimulationRun}}
// @Router /simulation/runs [get]
func (h *SimulationHandler) ListRuns(c *gin.Context) {
	current, size := utils.ParsePage(c)
	filters := utils.QueryFilters(c, "status", "topology")

	runs, total, err := h.simulationService.ListRuns(current, size, filters)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取仿真记录失败")
		return
	}

	utils.SuccessWithPage(c, runs, current, size, total)
}

// GetRun godoc
// @Summary 获取仿真记录详情
// @Description 包含每个节点的初始任务数、剩余任务数与完成时隙
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "仿真记录ID"
// @Success 200 {object} utils.Response{data=models.SimulationRun}
// @Failure 404 {object} utils.Response
// @Router /simulation/runs/{id} [get]
func (h *SimulationHandler) GetRun(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的仿真记录ID")
		return
	}

	run, err := h.simulationService.GetRun(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, run)
}

// GetRunStats godoc
// @Summary 获取仿真的时隙统计
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "仿真记录ID"
// @Param node query int false "仿真内的节点编号，不填返回全部节点"
// @Success 200 {object} utils.Response{data=[]models.NodeStats}
// @Failure 404 {object} utils.Response
// @Router /simulation/runs/{id}/stats [get]
func (h *SimulationHandler) GetRunStats(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的仿真记录ID")
		return
	}

	nodeIndex := -1
	if v := c.Query("node"); v != "" {
		if nodeIndex, err = strconv.Atoi(v); err != nil || nodeIndex < 0 {
			utils.Error(c, utils.VALIDATION_ERROR, "无效的节点编号")
			return
		}
	}

	stats, err := h.simulationService.GetRunStats(id, nodeIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, stats)
}

// GetRunAlarms godoc
// @Summary 获取仿真产生的告警
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "仿真记录ID"
// @Param current query int false "当前页" default(1)
// @Param size query int false "每页大小" default(10)
// @Success 200 {object} utils.Response{data=utils.PageResult{records=[]models.Alarm}}
// @Failure 404 {object} utils.Response
// @Router /simulation/runs/{id}/alarms [get]
func (h *SimulationHandler) GetRunAlarms(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的仿真记录ID")
		return
	}

	run, err := h.simulationService.GetRun(id)
	if err != nil {
		respondError(c, err)
		return
	}

	current, size := utils.ParsePage(c)
	alarms, total, err := h.alarmService.GetRunAlarms(run.RunKey, current, size)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取告警列表失败")
		return
	}

	utils.SuccessWithPage(c, alarms, current, size, total)
}

// DeleteRun godoc
// @Summary 删除仿真记录
// @Description 删除仿真记录及其节点结果与时隙统计
// @Tags 仿真管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "仿真记录ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /simulation/runs/{id} [delete]
func (h *SimulationHandler) DeleteRun(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的仿真记录ID")
		return
	}

	if err := h.simulationService.DeleteRun(id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, nil, "仿真记录已删除")
}

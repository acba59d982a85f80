package service

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// OverviewStats 系统概览统计数据
type OverviewStats struct {
	NodeCount         int64  `json:"node_count"`         // 节点总数
	LinkCount         int64  `json:"link_count"`         // 链路总数
	RunCount          int64  `json:"run_count"`          // 仿真记录总数
	CompletedRuns     int64  `json:"completed_runs"`     // 全部任务完成的仿真数
	ActiveAlarmCount  int64  `json:"active_alarm_count"` // 未解决的告警数
	SimulationRunning bool   `json:"simulation_running"` // 是否有仿真在运行
	CurrentRunKey     string `json:"current_run_key"`    // 当前（或上一次）仿真
	CurrentSlot       int    `json:"current_slot"`       // 当前时隙
}

type OverviewService struct {
	network      *NetworkService
	simulation   *SimulationService
	alarmService *AlarmService
}

func NewOverviewService(network *NetworkService, simulation *SimulationService, alarmService *AlarmService) *OverviewService {
	return &OverviewService{
		network:      network,
		simulation:   simulation,
		alarmService: alarmService,
	}
}

// GetOverviewStats 获取系统概览统计信息
func (s *OverviewService) GetOverviewStats() (*OverviewStats, error) {
	stats := &OverviewStats{}

	var err error
	stats.NodeCount, stats.LinkCount, err = s.network.Counts()
	if err != nil {
		return nil, err
	}

	if stats.RunCount, err = s.simulation.CountRuns(""); err != nil {
		return nil, err
	}
	if stats.CompletedRuns, err = s.simulation.CountRuns(string(define.RunCompleted)); err != nil {
		return nil, err
	}

	alarmStats, err := s.alarmService.GetAlarmStats()
	if err != nil {
		return nil, err
	}
	stats.ActiveAlarmCount = alarmStats.ActiveCount

	info := s.simulation.Info()
	stats.SimulationRunning = info.IsRunning
	stats.CurrentRunKey = info.RunKey
	stats.CurrentSlot = info.TimeSlot

	return stats, nil
}

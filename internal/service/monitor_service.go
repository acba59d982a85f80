package service

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
)

type MonitorService struct {
	system *algorithm.System
}

func NewMonitorService(system *algorithm.System) *MonitorService {
	return &MonitorService{system: system}
}

// GetSystemMetrics 获取主机与仿真运行指标
func (s *MonitorService) GetSystemMetrics() (*models.SystemMetrics, error) {
	metrics := &models.SystemMetrics{
		Timestamp: time.Now(),
	}

	// 获取CPU使用率
	cpuPercent, err := cpu.Percent(time.Millisecond*100, false)
	if err == nil && len(cpuPercent) > 0 {
		metrics.CPUUsage = cpuPercent[0]
	}

	// 获取内存信息
	memInfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.MemTotal = memInfo.Total
		metrics.MemUsed = memInfo.Used
		metrics.MemFree = memInfo.Free
		metrics.MemUsageRate = memInfo.UsedPercent
	}

	metrics.GoroutineCount = runtime.NumGoroutine()

	if s.system != nil {
		info := s.system.GetSystemInfo()
		metrics.SimulationRunning = info.IsRunning
		metrics.SimulationSlot = info.TimeSlot
		metrics.SimulationRunKey = info.RunKey
	}

	return metrics, nil
}

package models

import "time"

// SystemMetrics 主机与仿真运行指标
type SystemMetrics struct {
	Timestamp time.Time `json:"timestamp"` // 采集时间

	// CPU相关
	CPUUsage float64 `json:"cpu_usage"` // CPU使用率 (0-100)

	// 内存相关
	MemTotal     uint64  `json:"mem_total"`      // 总内存 (bytes)
	MemUsed      uint64  `json:"mem_used"`       // 已用内存 (bytes)
	MemFree      uint64  `json:"mem_free"`       // 空闲内存 (bytes)
	MemUsageRate float64 `json:"mem_usage_rate"` // 内存使用率 (0-100)

	GoroutineCount int `json:"goroutine_count"`

	// 仿真
	SimulationRunning bool   `json:"simulation_running"`
	SimulationSlot    int    `json:"simulation_slot"`
	SimulationRunKey  string `json:"simulation_run_key,omitempty"`
}

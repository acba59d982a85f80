package models

import (
	"time"
)

// SimulationRun 一次仿真的记录
// swagger:model
type SimulationRun struct {
	ID           uint            `json:"id" gorm:"primarykey,autoIncrement"`
	RunKey       string          `json:"run_key" gorm:"size:64;uniqueIndex"` // 对外暴露的仿真标识
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Status       string          `json:"status" gorm:"size:32;index"` // running/completed/budget_exhausted/canceled/failed
	Topology     string          `json:"topology" gorm:"size:32"`     // 拓扑来源
	NodeCount    int             `json:"node_count"`
	Seed         int64           `json:"seed"`
	MaxSlots     int             `json:"max_slots"`
	TotalSlots   int             `json:"total_slots"`
	Completed    bool            `json:"completed"`
	DroppedTasks int             `json:"dropped_tasks"`
	Error        string          `json:"error,omitempty" gorm:"type:text"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
	Nodes        []RunNodeResult `json:"nodes,omitempty" gorm:"foreignKey:RunID"`
}

// RunNodeResult 单个节点在一次仿真中的完成情况
// swagger:model
type RunNodeResult struct {
	ID             uint   `json:"id" gorm:"primarykey,autoIncrement"`
	RunID          uint   `json:"run_id" gorm:"index;not null"`
	NodeIndex      int    `json:"node_index"`        // 仿真内的节点编号
	NodeID         uint   `json:"node_id,omitempty"` // 数据库节点ID（样例拓扑为 0）
	Name           string `json:"name" gorm:"size:100"`
	InitialTasks   int    `json:"initial_tasks"`
	RemainingTasks int    `json:"remaining_tasks"`
	CompletionSlot *int   `json:"completion_slot"` // 为空表示未在预算内完成
}

package models

import (
	"time"
)

// AlarmStatus 告警状态枚举
type AlarmStatus string

const (
	AlarmStatusActive   AlarmStatus = "pending"  // 活跃状态
	AlarmStatusResolved AlarmStatus = "resolved" // 已解决
)

// AlarmEvent 事件类型枚举
type AlarmEvent string

const (
	AlarmEventDrop        AlarmEvent = "drop"        // 队列溢出丢弃任务
	AlarmEventBudget      AlarmEvent = "budget"      // 达到最大时隙数仍未完成
	AlarmEventNetwork     AlarmEvent = "network"     // 拓扑问题
	AlarmEventPerformance AlarmEvent = "performance" // 队列积压
	AlarmEventSystem      AlarmEvent = "system"      // 系统事件
)

// Alarm 告警数据模型
type Alarm struct {
	ID          uint        `json:"id" gorm:"primaryKey;autoIncrement" example:"1"`
	Name        string      `json:"name" gorm:"not null;size:255" example:"UAV_3 计算队列溢出"`
	EventType   AlarmEvent  `json:"event_type" gorm:"not null;size:50" example:"drop"`
	Status      AlarmStatus `json:"status" gorm:"not null;size:20;default:'pending'" example:"pending"`
	RunKey      string      `json:"run_key,omitempty" gorm:"size:64;index"` // 关联的仿真
	Description string      `json:"description" gorm:"type:text" example:"UAV_3 的计算队列已满，丢弃 2 个任务(来源1)"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
}

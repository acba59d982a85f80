package models

import (
	"time"
)

// NodeType 定义节点类型
type NodeType string

const (
	NodeTypeUAV     NodeType = "uav"     // 无人机计算节点
	NodeTypeStation NodeType = "station" // 地面站（同样参与计算与转发）
)

// Node 表示网络拓扑中的 UAV 节点
// 队列容量与速率为空时使用配置文件中的默认值
// swagger:model
type Node struct {
	ID          uint       `json:"id" gorm:"primarykey,autoIncrement"`    // 节点ID
	CreatedAt   time.Time  `json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                            // 更新时间
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`     // 删除时间
	Name        string     `json:"name" gorm:"size:100;not null;index"`   // 节点名称
	NodeType    NodeType   `json:"node_type" gorm:"size:50;index"`        // 节点类型
	X           int        `json:"x"`                                     // X坐标
	Y           int        `json:"y"`                                     // Y坐标
	TxCapacity  *int       `json:"tx_capacity,omitempty"`                 // 传输队列容量
	CpCapacity  *int       `json:"cp_capacity,omitempty"`                 // 计算队列容量
	TxRate      *int       `json:"tx_rate,omitempty"`                     // 每时隙传输任务数
	CpRate      *int       `json:"cp_rate,omitempty"`                     // 每时隙计算任务数
	Properties  string     `json:"properties,omitempty" gorm:"type:text"` // 节点属性(JSON格式)
	Description string     `json:"description" gorm:"size:500"`           // 节点描述
}

// NodeStats 表示某次仿真中节点在某一时隙的队列占用
// swagger:model
type NodeStats struct {
	ID        uint      `json:"id" gorm:"primarykey,autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	RunID     uint      `json:"run_id" gorm:"index;not null"`   // 关联的仿真ID
	Timeslot  uint      `json:"timeslot" gorm:"index;not null"` // 时隙
	NodeIndex int       `json:"node_index" gorm:"index"`        // 仿真内的节点编号
	NodeID    uint      `json:"node_id,omitempty"`              // 数据库节点ID（样例、环形拓扑为 0）
	LocalTx   int       `json:"local_tx"`
	LocalCp   int       `json:"local_cp"`
	TxLen     int       `json:"tx_len"`
	CpLen     int       `json:"cp_len"`
}

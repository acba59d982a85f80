package models

import (
	"time"

	"gorm.io/gorm"
)

// OperatorRole 定义操作员角色类型
type OperatorRole string

const (
	RoleAdmin  OperatorRole = "admin"  // 管理员
	RoleViewer OperatorRole = "viewer" // 只读
)

// Operator 可以登录并操作仿真的用户
// swagger:model
type Operator struct {
	ID        uint         `json:"id" gorm:"primarykey,autoIncrement"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Username  string       `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password  string       `json:"-" gorm:"size:100;not null"`
	Role      OperatorRole `json:"role" gorm:"size:20;default:viewer"`
}

// BeforeCreate 在创建前的钩子函数
func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.Role == "" {
		o.Role = RoleViewer
	}
	return nil
}

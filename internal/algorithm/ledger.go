package algorithm

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// Ledger 按来源结算任务完成情况：无论任务在哪个节点被计算，
// 都记在生成它的节点名下
type Ledger struct {
	uavs []*define.UAV
}

// NewLedger 创建结算器
func NewLedger(uavs []*define.UAV) *Ledger {
	return &Ledger{uavs: uavs}
}

// Credit 来源 origin 的一个任务在 slot 时隙完成计算。
// 剩余数不会减到负数；首次归零时记录完成时隙，之后不再改变。
// 返回该来源是否在本次结算中完成。
func (l *Ledger) Credit(origin, slot int) bool {
	if origin < 0 || origin >= len(l.uavs) {
		return false
	}
	owner := l.uavs[origin]
	if owner.RemainingOwnTasks <= 0 {
		return false
	}
	owner.RemainingOwnTasks--
	if owner.RemainingOwnTasks == 0 && !owner.Completed() {
		owner.CompletionSlot = slot
		return true
	}
	return false
}

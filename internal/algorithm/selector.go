package algorithm

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// NoTarget 本时隙无需选择卸载目标
const NoTarget = -1

// better 候选 v 是否优于当前最优 best：
// 先比计算队列长度（短者优），再比计算队列剩余容量（大者优），最后比编号（小者优）
func better(v, best *define.UAV) bool {
	if v.CpQueue.Len() != best.CpQueue.Len() {
		return v.CpQueue.Len() < best.CpQueue.Len()
	}
	if v.CpRemaining() != best.CpRemaining() {
		return v.CpRemaining() > best.CpRemaining()
	}
	return v.ID < best.ID
}

// ChooseNeighbor 按"计算队列最短"为 u 选择卸载目标。
// 只有存在本地待传输任务或传输队列非空时才需要目标，否则返回 NoTarget；
// 没有邻居时同样返回 NoTarget。
func ChooseNeighbor(uavs []*define.UAV, u *define.UAV) int {
	if !u.HasPendingTransmission() {
		return NoTarget
	}

	var best *define.UAV
	for _, nid := range u.Neighbors {
		v := uavs[nid]
		if best == nil || better(v, best) {
			best = v
		}
	}
	if best == nil {
		return NoTarget
	}
	return best.ID
}

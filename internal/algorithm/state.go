package algorithm

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// SimulationState 仿真的全部可变状态，由 Engine 持有并在各阶段之间传递
type SimulationState struct {
	UAVs    []*define.UAV // 下标即节点编号
	Slot    int           // 当前时隙（从 0 开始）
	Dropped int           // 累计丢弃的任务数
}

// NewSimulationState 校验节点后创建状态
func NewSimulationState(uavs []*define.UAV) (*SimulationState, error) {
	if err := ValidateUAVs(uavs); err != nil {
		return nil, err
	}
	return &SimulationState{UAVs: uavs}, nil
}

// AllDone 所有 UAV 的本地池与队列均为空
func (s *SimulationState) AllDone() bool {
	for _, u := range s.UAVs {
		if !u.IsIdle() {
			return false
		}
	}
	return true
}

// Pending 尚未被计算的任务总数（按来源统计）
func (s *SimulationState) Pending() int {
	total := 0
	for _, u := range s.UAVs {
		total += u.RemainingOwnTasks
	}
	return total
}

// Snapshot 当前时隙的占用快照
func (s *SimulationState) Snapshot() define.SlotSnapshot {
	snap := define.SlotSnapshot{
		Slot:  s.Slot,
		Nodes: make([]define.NodeSnapshot, len(s.UAVs)),
	}
	for i, u := range s.UAVs {
		snap.Nodes[i] = u.Snapshot()
	}
	return snap
}

// Results 各节点的最终统计
func (s *SimulationState) Results() []define.NodeResult {
	results := make([]define.NodeResult, len(s.UAVs))
	for i, u := range s.UAVs {
		results[i] = u.Result()
	}
	return results
}

package define

import "github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/queue"

// NodeSnapshot 某一时隙开始时单个 UAV 的占用情况
type NodeSnapshot struct {
	ID                int           `json:"id"`
	LocalTx           int           `json:"local_tx"`
	LocalCp           int           `json:"local_cp"`
	TxLen             int           `json:"tx_len"`
	TxCapacity        int           `json:"tx_capacity"`
	CpLen             int           `json:"cp_len"`
	CpCapacity        int           `json:"cp_capacity"`
	CpOrigins         []queue.Batch `json:"cp_origins,omitempty"` // 计算队列按来源的分布
	InitialTasks      int           `json:"initial_tasks"`
	RemainingOwnTasks int           `json:"remaining_own_tasks"`
	CompletionSlot    *int          `json:"completion_slot"`
}

// SlotSnapshot 时隙快照
type SlotSnapshot struct {
	Slot  int            `json:"slot"`
	Nodes []NodeSnapshot `json:"nodes"`
}

// Snapshot 生成单个 UAV 的快照
func (u *UAV) Snapshot() NodeSnapshot {
	return NodeSnapshot{
		ID:                u.ID,
		LocalTx:           u.LocalTx.Len(),
		LocalCp:           u.LocalCp.Len(),
		TxLen:             u.TxQueue.Len(),
		TxCapacity:        u.TxQueue.Capacity(),
		CpLen:             u.CpQueue.Len(),
		CpCapacity:        u.CpQueue.Capacity(),
		CpOrigins:         u.CpQueue.Entries(),
		InitialTasks:      u.InitialTasks,
		RemainingOwnTasks: u.RemainingOwnTasks,
		CompletionSlot:    u.completionSlotPtr(),
	}
}

func (u *UAV) completionSlotPtr() *int {
	if !u.Completed() {
		return nil
	}
	slot := u.CompletionSlot
	return &slot
}

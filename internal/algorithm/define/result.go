package define

// RunStatus 仿真结束状态
type RunStatus string

const (
	RunRunning         RunStatus = "running"
	RunCompleted       RunStatus = "completed"        // 所有队列与本地池均已清空
	RunBudgetExhausted RunStatus = "budget_exhausted" // 达到最大时隙数仍未完成
	RunCanceled        RunStatus = "canceled"         // 被调用方取消
)

// NodeResult 单个 UAV 的最终统计
type NodeResult struct {
	ID                int  `json:"id"`
	InitialTasks      int  `json:"initial_tasks"`
	RemainingOwnTasks int  `json:"remaining_own_tasks"`
	CompletionSlot    *int `json:"completion_slot"` // nil 表示在时隙预算内未完成
}

// Result 仿真结果
type Result struct {
	Status       RunStatus    `json:"status"`
	Slots        int          `json:"slots"` // 已执行的时隙数
	MaxSlots     int          `json:"max_slots"`
	DroppedTasks int          `json:"dropped_tasks"`
	Nodes        []NodeResult `json:"nodes"`
}

// Completed 是否真正完成（区别于预算耗尽或取消）
func (r *Result) Completed() bool {
	return r.Status == RunCompleted
}

// Result 生成单个 UAV 的最终统计
func (u *UAV) Result() NodeResult {
	return NodeResult{
		ID:                u.ID,
		InitialTasks:      u.InitialTasks,
		RemainingOwnTasks: u.RemainingOwnTasks,
		CompletionSlot:    u.completionSlotPtr(),
	}
}

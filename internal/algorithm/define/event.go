package define

import "strconv"

// QueueKind 队列类型
type QueueKind string

const (
	QueueTx QueueKind = "tx" // 传输队列
	QueueCp QueueKind = "cp" // 计算队列
)

// DropReason 丢弃原因
type DropReason string

const (
	DropOverflow DropReason = "overflow"  // 入队时超出容量
	DropNoTarget DropReason = "no_target" // 传输时没有可选邻居
)

// DropEvent 任务丢弃事件，只用于上报，不影响调度
type DropEvent struct {
	Slot    int        `json:"slot"`
	NodeID  int        `json:"node_id"`
	Queue   QueueKind  `json:"queue"`
	Dropped int        `json:"dropped"`
	Origin  int        `json:"origin"`
	Reason  DropReason `json:"reason"`
}

// Decision 本时隙的卸载目标
type Decision struct {
	Slot   int `json:"slot"`
	From   int `json:"from"`
	Target int `json:"target"`
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

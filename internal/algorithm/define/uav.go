package define

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/queue"
)

// NotCompleted 完成时隙的哨兵值：本节点任务尚未全部完成
const NotCompleted = -1

// NodeConfig 单个 UAV 的静态配置
type NodeConfig struct {
	TxCapacity int `json:"tx_capacity" yaml:"tx_capacity"` // 传输队列容量
	CpCapacity int `json:"cp_capacity" yaml:"cp_capacity"` // 计算队列容量
	TxRate     int `json:"tx_rate" yaml:"tx_rate"`         // 每时隙最多传输的任务数
	CpRate     int `json:"cp_rate" yaml:"cp_rate"`         // 每时隙最多计算的任务数
}

// UAV 参与卸载的计算节点
type UAV struct {
	ID        int    // 节点编号，同时用作来源标签和并列时的比较键
	Name      string // 展示名称
	Neighbors []int  // 邻居编号（有序）

	TxQueue *queue.ProvenanceQueue // 传输队列
	CpQueue *queue.ProvenanceQueue // 计算队列
	LocalTx *queue.Pool            // 本地待传输（尚未入队）
	LocalCp *queue.Pool            // 本地待计算（尚未入队），邻居卸载来的任务也先到这里

	TxRate int
	CpRate int

	// 统计：本节点最初生成的任务数/剩余未完成数/完成时隙
	InitialTasks      int
	RemainingOwnTasks int
	CompletionSlot    int
}

// NewUAV 创建 UAV，队列为空，完成时隙未设置
func NewUAV(id int, neighbors []int, cfg NodeConfig) *UAV {
	return &UAV{
		ID:             id,
		Neighbors:      append([]int(nil), neighbors...),
		TxQueue:        queue.NewProvenanceQueue(cfg.TxCapacity),
		CpQueue:        queue.NewProvenanceQueue(cfg.CpCapacity),
		LocalTx:        queue.NewPool(),
		LocalCp:        queue.NewPool(),
		TxRate:         cfg.TxRate,
		CpRate:         cfg.CpRate,
		CompletionSlot: NotCompleted,
	}
}

// Seed 记录本节点生成的任务批次：tx 个进入本地待传输池，cp 个进入本地待计算池
func (u *UAV) Seed(tx, cp int) {
	u.InitialTasks += tx + cp
	u.RemainingOwnTasks += tx + cp
	u.LocalTx.Add(u.ID, tx)
	u.LocalCp.Add(u.ID, cp)
}

// HasPendingTransmission 是否还有待传输的任务（本地池或传输队列）
func (u *UAV) HasPendingTransmission() bool {
	return !u.LocalTx.IsEmpty() || !u.TxQueue.IsEmpty()
}

// IsIdle 本地池和两个队列均为空
func (u *UAV) IsIdle() bool {
	return u.LocalTx.IsEmpty() && u.LocalCp.IsEmpty() && u.TxQueue.IsEmpty() && u.CpQueue.IsEmpty()
}

// Completed 本节点生成的任务是否已全部完成
func (u *UAV) Completed() bool {
	return u.CompletionSlot != NotCompleted
}

// CpRemaining 计算队列剩余容量
func (u *UAV) CpRemaining() int {
	return u.CpQueue.Capacity() - u.CpQueue.Len()
}

// Label 日志与报表中使用的名称
func (u *UAV) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return "UAV_" + itoa(u.ID)
}

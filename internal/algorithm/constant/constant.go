package constant

// 队列与服务速率的默认值
const (
	// 传输队列容量，单位：任务
	TxCapacity = 20
	// 计算队列容量，单位：任务
	CpCapacity = 20
	// 每时隙最多传输的任务数
	TxRate = 2
	// 每时隙最多计算的任务数
	CpRate = 1
)

// 仿真控制参数
const (
	// 最大时隙数（安全上限）
	MaxSlots = 1000
	// 随机种子
	Seed = 42
	// 每个 UAV 初始生成的任务数范围 [MinTasks, MaxTasks]
	MinTasks = 10
	MaxTasks = 20
	// 环形拓扑默认规模
	RingSize = 4
	// 服务端保留的时隙快照数
	HistoryLimit = 500
)

package algorithm

import (
	"fmt"
	"math/rand"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// BuildUAVs 按拓扑创建 UAV。configs 长度为 1 时所有节点共用该配置，
// 否则必须与节点数一致。
func BuildUAVs(topo Topology, configs []define.NodeConfig) ([]*define.UAV, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	n := topo.Size()
	if len(configs) != 1 && len(configs) != n {
		return nil, fmt.Errorf("%w: got %d node configs for %d nodes", ErrInvalidConfig, len(configs), n)
	}

	uavs := make([]*define.UAV, n)
	for id := 0; id < n; id++ {
		cfg := configs[0]
		if len(configs) == n {
			cfg = configs[id]
		}
		if err := ValidateNodeConfig(id, cfg); err != nil {
			return nil, err
		}
		uavs[id] = define.NewUAV(id, topo[id], cfg)
	}
	return uavs, nil
}

// ValidateNodeConfig 容量不能为负，速率必须为正
func ValidateNodeConfig(id int, cfg define.NodeConfig) error {
	if cfg.TxCapacity < 0 || cfg.CpCapacity < 0 {
		return fmt.Errorf("%w: node %d has negative queue capacity (tx=%d, cp=%d)", ErrInvalidConfig, id, cfg.TxCapacity, cfg.CpCapacity)
	}
	if cfg.TxRate <= 0 || cfg.CpRate <= 0 {
		return fmt.Errorf("%w: node %d rates must be positive (tx=%d, cp=%d)", ErrInvalidConfig, id, cfg.TxRate, cfg.CpRate)
	}
	return nil
}

// SplitBatch 本地一半任务用于传输、一半用于本地计算：tx = total/2（向下取整）。
// 没有邻居的节点无法卸载，全部任务留在本地计算。
func SplitBatch(u *define.UAV, total int) (tx, cp int) {
	if len(u.Neighbors) == 0 {
		return 0, total
	}
	tx = total / 2
	return tx, total - tx
}

// SeedInitialTasks 为每个 UAV 随机生成 [minTasks, maxTasks] 个任务并按 SplitBatch 分配，
// 返回各节点生成的任务数
func SeedInitialTasks(rng *rand.Rand, uavs []*define.UAV, minTasks, maxTasks int) ([]int, error) {
	if minTasks < 0 || maxTasks < minTasks {
		return nil, fmt.Errorf("%w: task range [%d, %d]", ErrInvalidConfig, minTasks, maxTasks)
	}
	totals := make([]int, len(uavs))
	for i, u := range uavs {
		total := minTasks + rng.Intn(maxTasks-minTasks+1)
		tx, cp := SplitBatch(u, total)
		u.Seed(tx, cp)
		totals[i] = total
	}
	return totals, nil
}

// SeedFixedTasks 按给定数量为每个 UAV 生成任务
func SeedFixedTasks(uavs []*define.UAV, totals []int) error {
	if len(totals) != len(uavs) {
		return fmt.Errorf("%w: got %d task counts for %d nodes", ErrInvalidConfig, len(totals), len(uavs))
	}
	for i, u := range uavs {
		if totals[i] < 0 {
			return fmt.Errorf("%w: node %d has negative task count %d", ErrInvalidConfig, i, totals[i])
		}
		tx, cp := SplitBatch(u, totals[i])
		u.Seed(tx, cp)
	}
	return nil
}

// ValidateUAVs 仿真开始前的整体检查：编号与位置一致、邻居存在、
// 没有邻居的节点不能持有待传输任务
func ValidateUAVs(uavs []*define.UAV) error {
	if len(uavs) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidConfig)
	}
	topo := make(Topology, len(uavs))
	for idx, u := range uavs {
		if u == nil || u.ID != idx {
			return fmt.Errorf("%w: node at index %d has mismatched id", ErrInvalidConfig, idx)
		}
		topo[idx] = u.Neighbors
		if u.TxRate <= 0 || u.CpRate <= 0 {
			return fmt.Errorf("%w: node %d rates must be positive (tx=%d, cp=%d)", ErrInvalidConfig, idx, u.TxRate, u.CpRate)
		}
		if u.TxQueue.Capacity() < 0 || u.CpQueue.Capacity() < 0 {
			return fmt.Errorf("%w: node %d has negative queue capacity", ErrInvalidConfig, idx)
		}
		if len(u.Neighbors) == 0 && u.HasPendingTransmission() {
			return fmt.Errorf("%w: node %d has transmit demand but no neighbors", ErrInvalidConfig, idx)
		}
	}
	return topo.Validate()
}

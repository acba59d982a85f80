package algorithm

import (
	"fmt"
	"sort"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/utils"
)

// Topology 节点编号 -> 有序邻居编号，构建后不再修改。
// 编号必须是从 0 开始的连续整数。
type Topology map[int][]int

// SampleTopology 7 架 UAV 的自定义拓扑
//
//	0 - 1 - 2 - 3
//	 \ /    |   |
//	  4     5 - 6
func SampleTopology() Topology {
	return Topology{
		0: {1, 4},
		1: {0, 2, 4},
		2: {1, 3, 5},
		3: {2, 6},
		4: {0, 1},
		5: {2, 6},
		6: {3, 5},
	}
}

// RingTopology 双向环形拓扑：i 的邻居是 (i-1)%n 与 (i+1)%n
func RingTopology(n int) Topology {
	topo := make(Topology, n)
	for i := 0; i < n; i++ {
		switch n {
		case 1:
			topo[i] = []int{}
		case 2:
			topo[i] = []int{(i + 1) % n}
		default:
			topo[i] = []int{(i - 1 + n) % n, (i + 1) % n}
		}
	}
	return topo
}

// Size 节点数
func (t Topology) Size() int {
	return len(t)
}

// IDs 升序的节点编号
func (t Topology) IDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Neighbors 返回邻居副本
func (t Topology) Neighbors(id int) []int {
	return append([]int(nil), t[id]...)
}

// Validate 检查编号连续、邻居存在、无自环、无重复邻居
func (t Topology) Validate() error {
	n := len(t)
	if n == 0 {
		return fmt.Errorf("%w: topology has no nodes", ErrInvalidConfig)
	}
	for id := 0; id < n; id++ {
		neighbors, ok := t[id]
		if !ok {
			return fmt.Errorf("%w: node ids must be 0..%d, missing %d", ErrInvalidConfig, n-1, id)
		}
		seen := make(map[int]bool, len(neighbors))
		for _, v := range neighbors {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: node %d references nonexistent neighbor %d", ErrInvalidConfig, id, v)
			}
			if v == id {
				return fmt.Errorf("%w: node %d lists itself as neighbor", ErrInvalidConfig, id)
			}
			if seen[v] {
				return fmt.Errorf("%w: node %d lists neighbor %d twice", ErrInvalidConfig, id, v)
			}
			seen[v] = true
		}
	}
	return nil
}

// String 邻接表的文本形式
func (t Topology) String() string {
	s := ""
	for _, id := range t.IDs() {
		s += fmt.Sprintf("%d: %v\n", id, t[id])
	}
	return s
}

// Routes 节点之间的最短跳数与路径
func (t Topology) Routes() *utils.FloydResult {
	return utils.Floyd(utils.HopMatrix(t))
}

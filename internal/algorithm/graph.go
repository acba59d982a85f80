package algorithm

import (
	"fmt"
	"sort"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
)

// Graph 从数据库节点与链路构建的仿真拓扑
type Graph struct {
	Topology      Topology
	Configs       []define.NodeConfig // 按仿真编号排列的节点配置
	Names         []string
	NodeIDToIndex map[uint]int // 数据库节点ID -> 仿真编号
	IndexToNodeID []uint       // 仿真编号 -> 数据库节点ID
}

// NewGraph 按节点ID升序分配仿真编号，断开的链路被忽略。
// 节点未设置的容量与速率取 defaults。
func NewGraph(nodes []models.Node, links []models.Link, defaults define.NodeConfig) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes in network", ErrInvalidConfig)
	}

	sorted := append([]models.Node(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	g := &Graph{
		Topology:      make(Topology, len(sorted)),
		Configs:       make([]define.NodeConfig, len(sorted)),
		Names:         make([]string, len(sorted)),
		NodeIDToIndex: make(map[uint]int, len(sorted)),
		IndexToNodeID: make([]uint, len(sorted)),
	}
	for idx, node := range sorted {
		g.NodeIDToIndex[node.ID] = idx
		g.IndexToNodeID[idx] = node.ID
		g.Names[idx] = node.Name
		g.Configs[idx] = nodeConfig(node, defaults)
	}

	adj := make([]map[int]bool, len(sorted))
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	for _, link := range links {
		if !link.Usable() {
			continue
		}
		src, ok := g.NodeIDToIndex[link.SourceID]
		if !ok {
			return nil, fmt.Errorf("%w: link %d references nonexistent node %d", ErrInvalidConfig, link.ID, link.SourceID)
		}
		dst, ok := g.NodeIDToIndex[link.TargetID]
		if !ok {
			return nil, fmt.Errorf("%w: link %d references nonexistent node %d", ErrInvalidConfig, link.ID, link.TargetID)
		}
		if src == dst {
			return nil, fmt.Errorf("%w: link %d is a self loop", ErrInvalidConfig, link.ID)
		}
		adj[src][dst] = true
		if link.Bidirectional {
			adj[dst][src] = true
		}
	}

	for idx, set := range adj {
		neighbors := make([]int, 0, len(set))
		for v := range set {
			neighbors = append(neighbors, v)
		}
		sort.Ints(neighbors)
		g.Topology[idx] = neighbors
	}

	return g, nil
}

func nodeConfig(node models.Node, defaults define.NodeConfig) define.NodeConfig {
	cfg := defaults
	if node.TxCapacity != nil {
		cfg.TxCapacity = *node.TxCapacity
	}
	if node.CpCapacity != nil {
		cfg.CpCapacity = *node.CpCapacity
	}
	if node.TxRate != nil {
		cfg.TxRate = *node.TxRate
	}
	if node.CpRate != nil {
		cfg.CpRate = *node.CpRate
	}
	return cfg
}

// SampleNetwork 把拓扑转换成可以写入数据库的节点与链路（每条无向边一条双向链路）。
// 返回的链路中 SourceID/TargetID 是拓扑编号，写库前需换成节点的数据库ID。
func SampleNetwork(topo Topology) ([]models.Node, []models.Link) {
	ids := topo.IDs()
	nodes := make([]models.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, models.Node{
			Name:     fmt.Sprintf("UAV_%d", id),
			NodeType: models.NodeTypeUAV,
		})
	}

	links := make([]models.Link, 0)
	for _, u := range ids {
		for _, v := range topo[u] {
			reverse := false
			for _, w := range topo[v] {
				if w == u {
					reverse = true
					break
				}
			}
			// 双向边只记录一次
			if reverse && v < u {
				continue
			}
			links = append(links, models.Link{
				Name:          fmt.Sprintf("UAV_%d-UAV_%d", u, v),
				Status:        models.LinkStatusUp,
				SourceID:      uint(u),
				TargetID:      uint(v),
				Bidirectional: reverse,
			})
		}
	}
	return nodes, links
}

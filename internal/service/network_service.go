package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"
)

type NetworkService struct {
	nodeRepo *repository.NodeRepository
	linkRepo *repository.LinkRepository
}

func NewNetworkService(nodeRepo *repository.NodeRepository, linkRepo *repository.LinkRepository) *NetworkService {
	return &NetworkService{
		nodeRepo: nodeRepo,
		linkRepo: linkRepo,
	}
}

// ListNodesWithPage 获取分页的节点列表
func (s *NetworkService) ListNodesWithPage(offset, size int, filters map[string]interface{}) ([]models.Node, int64, error) {
	return s.nodeRepo.ListWithPage(offset, size, filters)
}

// GetNode 获取单个节点
func (s *NetworkService) GetNode(id uint) (*models.Node, error) {
	node, err := s.nodeRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return node, nil
}

// validateNode 检查节点名称以及容量、速率覆盖值
func validateNode(node *models.Node) error {
	if node.Name == "" {
		return fmt.Errorf("%w: 节点名称不能为空", ErrInvalidInput)
	}
	if node.NodeType == "" {
		node.NodeType = models.NodeTypeUAV
	}
	if node.NodeType != models.NodeTypeUAV && node.NodeType != models.NodeTypeStation {
		return fmt.Errorf("%w: 未知节点类型 %s", ErrInvalidInput, node.NodeType)
	}
	if node.TxCapacity != nil && *node.TxCapacity < 0 {
		return fmt.Errorf("%w: 传输队列容量不能为负", ErrInvalidInput)
	}
	if node.CpCapacity != nil && *node.CpCapacity < 0 {
		return fmt.Errorf("%w: 计算队列容量不能为负", ErrInvalidInput)
	}
	if node.TxRate != nil && *node.TxRate <= 0 {
		return fmt.Errorf("%w: 传输速率必须为正", ErrInvalidInput)
	}
	if node.CpRate != nil && *node.CpRate <= 0 {
		return fmt.Errorf("%w: 计算速率必须为正", ErrInvalidInput)
	}
	return nil
}

// CreateNode 创建节点
func (s *NetworkService) CreateNode(node *models.Node) error {
	if err := validateNode(node); err != nil {
		return err
	}
	return s.nodeRepo.Create(node)
}

// UpdateNode 更新节点
func (s *NetworkService) UpdateNode(node *models.Node) error {
	existing, err := s.nodeRepo.GetByID(node.ID)
	if err != nil {
		return ErrNotFound
	}
	if err := validateNode(node); err != nil {
		return err
	}
	node.CreatedAt = existing.CreatedAt
	return s.nodeRepo.Update(node)
}

// DeleteNode 删除节点，与其相连的链路一并删除
func (s *NetworkService) DeleteNode(id uint) error {
	if _, err := s.nodeRepo.GetByID(id); err != nil {
		return ErrNotFound
	}
	return s.nodeRepo.Delete(id)
}

// ListLinks 获取分页的链路列表
func (s *NetworkService) ListLinks(offset, size int, filters map[string]interface{}) ([]models.Link, int64, error) {
	return s.linkRepo.ListWithPage(offset, size, filters)
}

// GetLink 获取单个链路
func (s *NetworkService) GetLink(id uint) (*models.Link, error) {
	link, err := s.linkRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return link, nil
}

// CreateLink 创建链路
func (s *NetworkService) CreateLink(link *models.Link) error {
	if link.SourceID == link.TargetID {
		return fmt.Errorf("%w: 源节点和目标节点不能相同", ErrInvalidInput)
	}

	// 检查源节点和目标节点是否存在
	if _, err := s.nodeRepo.GetByID(link.SourceID); err != nil {
		return fmt.Errorf("%w: 源节点不存在", ErrInvalidInput)
	}
	if _, err := s.nodeRepo.GetByID(link.TargetID); err != nil {
		return fmt.Errorf("%w: 目标节点不存在", ErrInvalidInput)
	}

	// 检查是否已存在相同的链路，双向链路还要检查反向
	if existing, _ := s.linkRepo.GetByNodes(link.SourceID, link.TargetID); existing != nil {
		return fmt.Errorf("%w: 链路已存在", ErrInvalidInput)
	}
	if link.Bidirectional {
		if existing, _ := s.linkRepo.GetByNodes(link.TargetID, link.SourceID); existing != nil {
			return fmt.Errorf("%w: 反向链路已存在", ErrInvalidInput)
		}
	}

	return s.linkRepo.Create(link)
}

// UpdateLink 更新链路
func (s *NetworkService) UpdateLink(link *models.Link) error {
	existing, err := s.linkRepo.GetByID(link.ID)
	if err != nil {
		return ErrNotFound
	}
	if link.SourceID == link.TargetID {
		return fmt.Errorf("%w: 源节点和目标节点不能相同", ErrInvalidInput)
	}

	// 如果更改了源节点或目标节点，需要验证节点是否存在
	if existing.SourceID != link.SourceID {
		if _, err := s.nodeRepo.GetByID(link.SourceID); err != nil {
			return fmt.Errorf("%w: 源节点不存在", ErrInvalidInput)
		}
	}
	if existing.TargetID != link.TargetID {
		if _, err := s.nodeRepo.GetByID(link.TargetID); err != nil {
			return fmt.Errorf("%w: 目标节点不存在", ErrInvalidInput)
		}
	}

	link.CreatedAt = existing.CreatedAt
	return s.linkRepo.Update(link)
}

// DeleteLink 删除链路
func (s *NetworkService) DeleteLink(id uint) error {
	if _, err := s.linkRepo.GetByID(id); err != nil {
		return ErrNotFound
	}
	return s.linkRepo.Delete(id)
}

// TopologyData 网络拓扑数据结构
type TopologyData struct {
	Nodes []models.Node `json:"nodes"`
	Links []models.Link `json:"links"`
}

// GetTopology 获取完整的网络拓扑数据
func (s *NetworkService) GetTopology() (*TopologyData, error) {
	nodes, err := s.nodeRepo.List(nil)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.List(nil)
	if err != nil {
		return nil, err
	}

	return &TopologyData{
		Nodes: nodes,
		Links: links,
	}, nil
}

// BatchUpdateNodesPosition 批量更新节点位置
func (s *NetworkService) BatchUpdateNodesPosition(nodes []models.Node) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: 节点位置列表不能为空", ErrInvalidInput)
	}

	var nodeIDs []uint
	for _, node := range nodes {
		nodeIDs = append(nodeIDs, node.ID)
	}

	existingNodes, err := s.nodeRepo.GetByIDs(nodeIDs)
	if err != nil {
		return err
	}
	if len(existingNodes) != len(nodes) {
		return fmt.Errorf("%w: 部分节点不存在", ErrNotFound)
	}

	return s.nodeRepo.BatchUpdatePositions(nodes)
}

// BuildGraph 用数据库中的节点与链路构建仿真拓扑，节点未设置的参数取 defaults
func (s *NetworkService) BuildGraph(defaults define.NodeConfig) (*algorithm.Graph, error) {
	topo, err := s.GetTopology()
	if err != nil {
		return nil, err
	}
	return algorithm.NewGraph(topo.Nodes, topo.Links, defaults)
}

// TopologyInfo 仿真视角下的拓扑概况
type TopologyInfo struct {
	NodeCount int              `json:"node_count"`
	LinkCount int              `json:"link_count"`
	Adjacency map[string][]int `json:"adjacency"` // 仿真编号 -> 邻居编号
	NodeIDs   []uint           `json:"node_ids"`  // 仿真编号 -> 数据库节点ID
	Diameter  int              `json:"diameter"`  // 可达节点对之间的最大跳数
	Connected bool             `json:"connected"`
	Isolated  []int            `json:"isolated"` // 没有出边的节点，只能本地计算
}

// GetTopologyInfo 构建仿真拓扑并统计跳数与孤立节点
func (s *NetworkService) GetTopologyInfo(defaults define.NodeConfig) (*TopologyInfo, error) {
	links, err := s.linkRepo.Count(nil)
	if err != nil {
		return nil, err
	}
	g, err := s.BuildGraph(defaults)
	if err != nil {
		return nil, err
	}

	info := &TopologyInfo{
		NodeCount: g.Topology.Size(),
		LinkCount: int(links),
		Adjacency: make(map[string][]int, g.Topology.Size()),
		NodeIDs:   g.IndexToNodeID,
		Isolated:  []int{},
	}
	for _, id := range g.Topology.IDs() {
		info.Adjacency[fmt.Sprint(id)] = g.Topology.Neighbors(id)
		if len(g.Topology[id]) == 0 {
			info.Isolated = append(info.Isolated, id)
		}
	}
	info.Diameter, info.Connected = g.Topology.Routes().Diameter()
	return info, nil
}

// SeedSampleTopology 数据库中没有节点时写入给定拓扑，返回是否写入
func (s *NetworkService) SeedSampleTopology(topo algorithm.Topology) (bool, error) {
	count, err := s.nodeRepo.Count(nil)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := topo.Validate(); err != nil {
		return false, err
	}

	nodes, links := algorithm.SampleNetwork(topo)
	err = s.nodeRepo.Transaction(func(tx *gorm.DB) error {
		nodeRepo := s.nodeRepo.WithTx(tx)
		linkRepo := s.linkRepo.WithTx(tx)

		// 拓扑编号 -> 数据库ID
		dbIDs := make([]uint, len(nodes))
		for i := range nodes {
			if err := nodeRepo.Create(&nodes[i]); err != nil {
				return err
			}
			dbIDs[i] = nodes[i].ID
		}
		for i := range links {
			links[i].SourceID = dbIDs[links[i].SourceID]
			links[i].TargetID = dbIDs[links[i].TargetID]
			if err := linkRepo.Create(&links[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, errors.New("写入样例拓扑失败: " + err.Error())
	}
	return true, nil
}

// Counts 节点与链路数量
func (s *NetworkService) Counts() (nodes, links int64, err error) {
	if nodes, err = s.nodeRepo.Count(nil); err != nil {
		return 0, 0, err
	}
	if links, err = s.linkRepo.Count(nil); err != nil {
		return 0, 0, err
	}
	return nodes, links, nil
}

package repository

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"

	"gorm.io/gorm"
)

type NodeRepository struct {
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) *NodeRepository {
	return &NodeRepository{db: db}
}

// WithTx 在事务中使用
func (r *NodeRepository) WithTx(tx *gorm.DB) *NodeRepository {
	return &NodeRepository{db: tx}
}

// Transaction 在事务中执行 fn
func (r *NodeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建新节点
func (r *NodeRepository) Create(node *models.Node) error {
	return r.db.Create(node).Error
}

// GetByID 根据ID获取节点
func (r *NodeRepository) GetByID(id uint) (*models.Node, error) {
	var node models.Node
	err := r.db.First(&node, id).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// List 获取节点列表，按ID升序
func (r *NodeRepository) List(filters map[string]interface{}) ([]models.Node, error) {
	var nodes []models.Node

	query := applyNodeFilters(r.db.Model(&models.Node{}), filters)
	err := query.Order("id ASC").Find(&nodes).Error
	if err != nil {
		return nil, err
	}

	return nodes, nil
}

// ListWithPage 获取分页的节点列表
func (r *NodeRepository) ListWithPage(offset, limit int, filters map[string]interface{}) ([]models.Node, int64, error) {
	var nodes []models.Node
	var total int64

	query := applyNodeFilters(r.db.Model(&models.Node{}), filters)

	// 获取总数
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 获取分页数据
	err = query.Order("id ASC").Offset(offset).Limit(limit).Find(&nodes).Error
	if err != nil {
		return nil, 0, err
	}

	return nodes, total, nil
}

func applyNodeFilters(query *gorm.DB, filters map[string]interface{}) *gorm.DB {
	for key, value := range filters {
		if key == "name" && value != "" {
			query = query.Where("name LIKE ?", "%"+value.(string)+"%")
			continue
		}
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

// GetByIDs 根据ID列表获取节点
func (r *NodeRepository) GetByIDs(ids []uint) ([]models.Node, error) {
	var nodes []models.Node
	err := r.db.Where("id IN ?", ids).Find(&nodes).Error
	return nodes, err
}

// BatchUpdatePositions 批量更新节点坐标
func (r *NodeRepository) BatchUpdatePositions(nodes []models.Node) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, node := range nodes {
			err := tx.Model(&models.Node{}).Where("id = ?", node.ID).
				Updates(map[string]interface{}{"x": node.X, "y": node.Y}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Update 更新节点信息
func (r *NodeRepository) Update(node *models.Node) error {
	return r.db.Save(node).Error
}

// Delete 删除节点及与其相连的链路
func (r *NodeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ? OR target_id = ?", id, id).Delete(&models.Link{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Node{}, id).Error
	})
}

// Count 统计节点数量
func (r *NodeRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.Node{})

	// 应用过滤条件
	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&count).Error
	return count, err
}

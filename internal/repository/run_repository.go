package repository

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statsBatchSize 批量写入时隙统计的批大小
const statsBatchSize = 200

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create 创建仿真记录
func (r *RunRepository) Create(run *models.SimulationRun) error {
	return r.db.Omit(clause.Associations).Create(run).Error
}

// Finish 在同一事务中保存仿真结果、节点完成情况与时隙统计
func (r *RunRepository) Finish(run *models.SimulationRun, nodes []models.RunNodeResult, stats []models.NodeStats) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(run).Error; err != nil {
			return err
		}
		for i := range nodes {
			nodes[i].RunID = run.ID
		}
		if len(nodes) > 0 {
			if err := tx.Create(&nodes).Error; err != nil {
				return err
			}
		}
		for i := range stats {
			stats[i].RunID = run.ID
		}
		if len(stats) > 0 {
			if err := tx.CreateInBatches(&stats, statsBatchSize).Error; err != nil {
				return err
			}
		}
		run.Nodes = nodes
		return nil
	})
}

// GetByID 根据ID获取仿真记录（包含节点结果）
func (r *RunRepository) GetByID(id uint) (*models.SimulationRun, error) {
	var run models.SimulationRun
	err := r.db.Preload("Nodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("node_index ASC")
	}).First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetByKey 根据仿真标识获取记录
func (r *RunRepository) GetByKey(key string) (*models.SimulationRun, error) {
	var run models.SimulationRun
	err := r.db.Where("run_key = ?", key).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListWithPage 获取分页的仿真记录，按创建时间倒序
func (r *RunRepository) ListWithPage(offset, limit int, filters map[string]interface{}) ([]models.SimulationRun, int64, error) {
	var runs []models.SimulationRun
	var total int64

	query := r.db.Model(&models.SimulationRun{})
	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

// ListStats 获取某次仿真的时隙统计，nodeIndex 为负时返回所有节点
func (r *RunRepository) ListStats(runID uint, nodeIndex int) ([]models.NodeStats, error) {
	var stats []models.NodeStats
	query := r.db.Where("run_id = ?", runID)
	if nodeIndex >= 0 {
		query = query.Where("node_index = ?", nodeIndex)
	}
	err := query.Order("timeslot ASC").Order("node_index ASC").Find(&stats).Error
	return stats, err
}

// Delete 删除仿真记录及其节点结果、时隙统计
func (r *RunRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&models.NodeStats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_id = ?", id).Delete(&models.RunNodeResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SimulationRun{}, id).Error
	})
}

// Count 统计仿真记录数量
func (r *RunRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.SimulationRun{})
	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}
	err := query.Count(&count).Error
	return count, err
}

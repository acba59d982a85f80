package repository

import (
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"

	"gorm.io/gorm"
)

type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) *OperatorRepository {
	return &OperatorRepository{
		db: db,
	}
}

func (r *OperatorRepository) Create(operator *models.Operator) error {
	return r.db.Create(operator).Error
}

func (r *OperatorRepository) FindByID(id uint) (*models.Operator, error) {
	var operator models.Operator
	err := r.db.First(&operator, id).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) FindByUsername(username string) (*models.Operator, error) {
	var operator models.Operator
	err := r.db.Where("username = ?", username).First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

// List 获取操作员列表，支持分页和过滤
func (r *OperatorRepository) List(offset, limit int, filters map[string]interface{}) ([]models.Operator, int64, error) {
	var operators []models.Operator
	var total int64

	query := r.db.Model(&models.Operator{})

	// 应用过滤条件
	for key, value := range filters {
		if key == "username" && value != "" {
			query = query.Where("username LIKE ?", "%"+value.(string)+"%")
			continue
		}
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	// 获取总数
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 获取分页数据，按创建时间倒序
	err = query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&operators).Error
	if err != nil {
		return nil, 0, err
	}

	return operators, total, nil
}

// Count 统计操作员数量
func (r *OperatorRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.Operator{})

	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&count).Error
	return count, err
}

package service

import (
	"errors"
	"fmt"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type OperatorService struct {
	operatorRepo *repository.OperatorRepository
}

func NewOperatorService(operatorRepo *repository.OperatorRepository) *OperatorService {
	return &OperatorService{
		operatorRepo: operatorRepo,
	}
}

func (s *OperatorService) CreateOperator(operator *models.Operator) error {
	if operator == nil {
		return errors.New("operator cannot be nil")
	}
	if operator.Username == "" || operator.Password == "" {
		return fmt.Errorf("%w: 用户名和密码不能为空", ErrInvalidInput)
	}
	if operator.Role != "" && operator.Role != models.RoleAdmin && operator.Role != models.RoleViewer {
		return fmt.Errorf("%w: 未知角色 %s", ErrInvalidInput, operator.Role)
	}
	if existing, _ := s.operatorRepo.FindByUsername(operator.Username); existing != nil {
		return fmt.Errorf("%w: 用户名已存在", ErrInvalidInput)
	}

	// 对密码进行加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(operator.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	operator.Password = string(hashedPassword)

	return s.operatorRepo.Create(operator)
}

// ValidateOperator 验证登录
func (s *OperatorService) ValidateOperator(username, password string) (*models.Operator, error) {
	operator, err := s.operatorRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("用户名不存在")
	}

	err = bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password))
	if err != nil {
		return nil, errors.New("用户名或密码错误")
	}

	return operator, nil
}

// GetOperatorByID 根据ID获取操作员
func (s *OperatorService) GetOperatorByID(id uint) (*models.Operator, error) {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return operator, nil
}

// ListOperators 获取操作员列表（仅管理员可用）
func (s *OperatorService) ListOperators(current, size int, filters map[string]interface{}) ([]models.Operator, int64, error) {
	offset := (current - 1) * size
	return s.operatorRepo.List(offset, size, filters)
}

// CountOperators 统计操作员数量
func (s *OperatorService) CountOperators() (int64, error) {
	return s.operatorRepo.Count(nil)
}

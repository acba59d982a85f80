package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

// CreateOperatorRequest 创建操作员的请求体，Password 字段在模型中不参与序列化
type CreateOperatorRequest struct {
	Username string              `json:"username" binding:"required"`
	Password string              `json:"password" binding:"required,min=6"`
	Role     models.OperatorRole `json:"role" example:"viewer"`
}

type OperatorHandler struct {
	operatorService *service.OperatorService
}

func NewOperatorHandler(operatorService *service.OperatorService) *OperatorHandler {
	return &OperatorHandler{
		operatorService: operatorService,
	}
}

// CreateOperator godoc
// @Summary 创建操作员
// @Description 创建新的操作员账号，仅管理员可访问
// @Tags 操作员管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param operator body CreateOperatorRequest true "操作员信息"
// @Success 200 {object} utils.Response{data=models.Operator}
// @Failure 400 {object} utils.Response
// @Router /admin/operators [post]
func (h *OperatorHandler) CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, err.Error())
		return
	}

	operator := models.Operator{Username: req.Username, Password: req.Password, Role: req.Role}
	if err := h.operatorService.CreateOperator(&operator); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			utils.Error(c, utils.VALIDATION_ERROR, err.Error())
			return
		}
		utils.Error(c, utils.ERROR, err.Error())
		return
	}

	utils.SuccessWithMessage(c, operator, "操作员创建成功")
}

// GetOperator godoc
// @Summary 获取操作员信息
// @Tags 操作员管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "操作员ID"
// @Success 200 {object} utils.Response{data=models.Operator}
// @Failure 404 {object} utils.Response
// @Router /operators/{id} [get]
func (h *OperatorHandler) GetOperator(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, "无效的操作员ID")
		return
	}

	operator, err := h.operatorService.GetOperatorByID(id)
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "操作员不存在")
		return
	}

	utils.Success(c, operator)
}

// ListOperators godoc
// @Summary 获取操作员列表
// @Description 获取操作员列表，仅管理员可访问
// @Tags 操作员管理
// @Produce json
// @Security ApiKeyAuth
// @Param current query int false "当前页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param role query string false "角色筛选" Enums(admin,viewer)
// @Param username query string false "用户名关键字"
// @Success 200 {object} utils.Response{data=utils.PageResult}
// @Failure 403 {object} utils.Response
// @Router /admin/operators [get]
func (h *OperatorHandler) ListOperators(c *gin.Context) {
	current, size := utils.ParsePage(c)
	filters := utils.QueryFilters(c, "role", "username")

	operators, total, err := h.operatorService.ListOperators(current, size, filters)
	if err != nil {
		utils.Error(c, utils.ERROR, "获取操作员列表失败")
		return
	}

	utils.SuccessWithPage(c, operators, current, size, total)
}

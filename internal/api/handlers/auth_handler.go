package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"` // 过期时间（秒）
}

type AuthHandler struct {
	operatorService *service.OperatorService
}

func NewAuthHandler(operatorService *service.OperatorService) *AuthHandler {
	return &AuthHandler{
		operatorService: operatorService,
	}
}

// Login godoc
// @Summary 操作员登录
// @Description 操作员登录并返回访问令牌和刷新令牌
// @Tags 认证管理
// @Accept json
// @Produce json
// @Param loginRequest body LoginRequest true "登录信息"
// @Success 200 {object} utils.Response{data=TokenResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.VALIDATION_ERROR, err.Error())
		return
	}

	operator, err := h.operatorService.ValidateOperator(req.Username, req.Password)
	if err != nil {
		utils.Error(c, utils.UNAUTHORIZED, err.Error())
		return
	}

	accessToken, err := utils.GenerateToken(operator.ID, operator.Username, string(operator.Role))
	if err != nil {
		utils.Error(c, utils.ERROR, "生成访问令牌失败")
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(operator.ID, operator.Username, string(operator.Role))
	if err != nil {
		utils.Error(c, utils.ERROR, "生成刷新令牌失败")
		return
	}

	utils.Success(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(utils.AccessExpiration().Seconds()),
		"user": gin.H{
			"id":       operator.ID,
			"username": operator.Username,
			"role":     operator.Role,
		},
	})
}

// RefreshToken godoc
// @Summary 刷新访问令牌
// @Description 使用刷新令牌获取新的访问令牌
// @Tags 认证管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=TokenResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) <= 7 || authHeader[:7] != "Bearer " {
		utils.Error(c, utils.UNAUTHORIZED, "无效的令牌格式")
		return
	}

	claims, err := utils.ParseToken(authHeader[7:])
	if err != nil {
		utils.Error(c, utils.UNAUTHORIZED, "无效的刷新令牌")
		return
	}
	if claims.TokenType != "refresh" {
		utils.Error(c, utils.UNAUTHORIZED, "令牌类型错误")
		return
	}

	accessToken, err := utils.GenerateToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		utils.Error(c, utils.ERROR, "生成新的访问令牌失败")
		return
	}

	utils.Success(c, TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(utils.AccessExpiration().Seconds()),
	})
}

// GetCurrentOperator godoc
// @Summary 获取当前登录的操作员
// @Tags 认证管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=models.Operator}
// @Failure 401 {object} utils.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentOperator(c *gin.Context) {
	// 由 AuthMiddleware 写入
	userID, exists := c.Get("userID")
	if !exists {
		utils.Error(c, utils.UNAUTHORIZED, "用户未登录")
		return
	}

	operator, err := h.operatorService.GetOperatorByID(userID.(uint))
	if err != nil {
		utils.Error(c, utils.NOT_FOUND, "获取操作员信息失败")
		return
	}

	utils.Success(c, operator)
}

package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

type AuthController struct {
	store   *store.Store
	authSvc *service.AuthService
}

func NewAuthController(st *store.Store, authSvc *service.AuthService) *AuthController {
	return &AuthController{store: st, authSvc: authSvc}
}

// ==================== 请求结构 ====================

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ==================== 接口 ====================

// Login 管理员登录
// @Summary 邮箱密码登录，返回 JWT Token 对
// @Tags Auth
// @Accept json
// @Param body body loginReq true "登录凭证"
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.store.Login(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"code": 401, "message": "邮箱或密码错误"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "登录失败: " + err.Error()})
		return
	}

	access, refresh, err := ctrl.authSvc.IssueTokens(ctx, req.Email)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "签发 Token 失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"accessToken":  access,
			"refreshToken": refresh,
			"email":        req.Email,
		},
	})
}

// Logout 登出
// @Summary 登出，清除服务端会话标志
// @Tags Auth
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	if err := ctrl.store.Logout(c.Request.Context()); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "登出失败: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// Refresh 刷新 Token
// @Summary 用 Refresh Token 换新 Token 对
// @Tags Auth
// @Accept json
// @Param body body refreshReq true "刷新凭证"
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	access, refresh, err := ctrl.authSvc.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(401, gin.H{"code": 401, "message": "Token 刷新失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"accessToken":  access,
			"refreshToken": refresh,
		},
	})
}

// Me 当前登录信息
// @Summary 查询当前登录的管理员
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	claims := middleware.GetUserClaims(c)
	if claims == nil {
		c.JSON(401, gin.H{"code": 401, "message": "未登录"})
		return
	}
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

// ChangePassword 修改密码
// @Summary 修改当前管理员密码
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Param body body changePasswordReq true "新旧密码"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/auth/password [put]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	email := middleware.GetEmail(c)
	if email == "" {
		c.JSON(401, gin.H{"code": 401, "message": "未登录"})
		return
	}

	err := ctrl.authSvc.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"code": 401, "message": "旧密码错误"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "修改密码失败: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

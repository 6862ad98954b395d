package controller

import (
	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/store"
)

// SiteController 站点配置与页面接口。
// 公开端只吐已发布内容且剥离 AI 密钥，管理端返回完整数据。
type SiteController struct {
	store *store.Store
}

func NewSiteController(st *store.Store) *SiteController {
	return &SiteController{store: st}
}

// ==================== 公开接口 ====================

// GetSite 公开站点视图
// @Summary 获取站点配置与已发布页面（一次拉全，前台渲染用）
// @Tags Site
// @Success 200 {object} map[string]interface{}
// @Router /api/site [get]
func (ctrl *SiteController) GetSite(c *gin.Context) {
	cfg := ctrl.store.Config()
	// AI 密钥只在管理端可见
	if middleware.GetUserClaims(c) == nil {
		cfg.AIKeys = nil
	}

	pages := make([]model.PageData, 0)
	for _, p := range ctrl.store.Pages() {
		if p.Status == model.StatusPublished {
			pages = append(pages, p)
		}
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"config": cfg,
			"pages":  pages,
		},
	})
}

// ListPublished 公开页面列表
// @Summary 获取全部已发布页面
// @Tags Site
// @Success 200 {object} map[string]interface{}
// @Router /api/pages [get]
func (ctrl *SiteController) ListPublished(c *gin.Context) {
	pages := make([]model.PageData, 0)
	for _, p := range ctrl.store.Pages() {
		if p.Status == model.StatusPublished {
			pages = append(pages, p)
		}
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": pages})
}

// GetPage 按 slug 获取公开页面
// @Summary 获取单个已发布页面
// @Tags Site
// @Param slug path string true "页面 slug"
// @Success 200 {object} map[string]interface{}
// @Router /api/pages/{slug} [get]
func (ctrl *SiteController) GetPage(c *gin.Context) {
	slug := c.Param("slug")
	page, ok := ctrl.store.Page(slug)
	if !ok || page.Status != model.StatusPublished {
		c.JSON(404, gin.H{"code": 404, "message": "页面不存在"})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": page})
}

// ==================== 管理接口 ====================

// GetConfig 管理端读取完整配置
// @Summary 获取站点配置（含 AI 密钥）
// @Tags Site
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/config [get]
func (ctrl *SiteController) GetConfig(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Config()})
}

// SaveConfig 整体保存配置
// @Summary 替换站点配置
// @Tags Site
// @Security BearerAuth
// @Accept json
// @Param body body model.SiteConfig true "站点配置"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/config [put]
func (ctrl *SiteController) SaveConfig(c *gin.Context) {
	var cfg model.SiteConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	if err := ctrl.store.SaveConfig(c.Request.Context(), cfg); err != nil {
		// 缓存已更新并标脏，调用方知道写远端失败即可
		c.JSON(202, gin.H{"code": 202, "message": "已保存到缓存，远端同步失败待补写: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ListPages 管理端页面列表（含草稿）
// @Summary 获取全部页面
// @Tags Site
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pages [get]
func (ctrl *SiteController) ListPages(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Pages()})
}

// SavePage 保存页面
// @Summary 按 slug 覆盖或新增页面
// @Tags Site
// @Security BearerAuth
// @Accept json
// @Param body body model.PageData true "页面数据"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/pages [put]
func (ctrl *SiteController) SavePage(c *gin.Context) {
	var page model.PageData
	if err := c.ShouldBindJSON(&page); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}
	if page.Slug == "" {
		c.JSON(400, gin.H{"code": 400, "message": "页面 slug 不能为空"})
		return
	}

	if err := ctrl.store.SavePage(c.Request.Context(), page); err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已保存到缓存，远端同步失败待补写: " + err.Error()})
		return
	}
	page, _ = ctrl.store.Page(page.Slug)
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": page})
}

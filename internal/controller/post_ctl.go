package controller

import (
	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/store"
)

// PostController 博客与供应商文章接口，两类文章共用一套模式：
// 公开端只吐已发布、按 slug 查询，管理端全量、按 id 增删改。
type PostController struct {
	store *store.Store
}

func NewPostController(st *store.Store) *PostController {
	return &PostController{store: st}
}

// ==================== 博客公开接口 ====================

// ListBlogPublic 公开博客列表
// @Summary 获取已发布的博客文章，支持按分类过滤
// @Tags Post
// @Param category query string false "分类 solution|story|event|tea"
// @Success 200 {object} map[string]interface{}
// @Router /api/blog [get]
func (ctrl *PostController) ListBlogPublic(c *gin.Context) {
	category := model.BlogCategory(c.Query("category"))

	items := make([]model.BlogPost, 0)
	for _, p := range ctrl.store.BlogPosts() {
		if p.Status != model.StatusPublished {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		items = append(items, p)
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": items})
}

// GetBlogBySlug 公开博客详情
// @Summary 按 slug 获取已发布博客，slug 冲突时返回最先匹配的一篇
// @Tags Post
// @Param slug path string true "文章 slug"
// @Success 200 {object} map[string]interface{}
// @Router /api/blog/{slug} [get]
func (ctrl *PostController) GetBlogBySlug(c *gin.Context) {
	slug := c.Param("slug")
	for _, p := range ctrl.store.BlogPosts() {
		if p.Slug == slug && p.Status == model.StatusPublished {
			c.JSON(200, gin.H{"code": 0, "message": "success", "data": p})
			return
		}
	}
	c.JSON(404, gin.H{"code": 404, "message": "文章不存在"})
}

// ==================== 供应商文章公开接口 ====================

// ListSupplierPublic 公开供应商文章列表
// @Summary 获取已发布的供应商介绍
// @Tags Post
// @Success 200 {object} map[string]interface{}
// @Router /api/suppliers [get]
func (ctrl *PostController) ListSupplierPublic(c *gin.Context) {
	items := make([]model.SupplierPost, 0)
	for _, p := range ctrl.store.SupplierPosts() {
		if p.Status == model.StatusPublished {
			items = append(items, p)
		}
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": items})
}

// GetSupplierBySlug 公开供应商文章详情
// @Summary 按 slug 获取已发布供应商介绍
// @Tags Post
// @Param slug path string true "文章 slug"
// @Success 200 {object} map[string]interface{}
// @Router /api/suppliers/{slug} [get]
func (ctrl *PostController) GetSupplierBySlug(c *gin.Context) {
	slug := c.Param("slug")
	for _, p := range ctrl.store.SupplierPosts() {
		if p.Slug == slug && p.Status == model.StatusPublished {
			c.JSON(200, gin.H{"code": 0, "message": "success", "data": p})
			return
		}
	}
	c.JSON(404, gin.H{"code": 404, "message": "文章不存在"})
}

// ==================== 管理接口 ====================

// ListBlogAdmin 管理端博客列表
// @Summary 获取全部博客文章（含草稿）
// @Tags Post
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/blog [get]
func (ctrl *PostController) ListBlogAdmin(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.BlogPosts()})
}

// SaveBlog 保存博客文章
// @Summary 新增或更新博客文章
// @Tags Post
// @Security BearerAuth
// @Accept json
// @Param body body model.BlogPost true "文章数据"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/blog [post]
func (ctrl *PostController) SaveBlog(c *gin.Context) {
	var p model.BlogPost
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	saved, err := ctrl.store.SaveBlogPost(c.Request.Context(), p)
	if err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已保存到缓存，远端同步失败待补写: " + err.Error(), "data": saved})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": saved})
}

// DeleteBlog 删除博客文章
// @Summary 按 id 删除博客文章
// @Tags Post
// @Security BearerAuth
// @Param id path string true "文章 id"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/blog/{id} [delete]
func (ctrl *PostController) DeleteBlog(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.store.DeleteBlogPost(c.Request.Context(), id); err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已从缓存删除，远端同步失败待补写: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ListSupplierAdmin 管理端供应商文章列表
// @Summary 获取全部供应商介绍（含草稿）
// @Tags Post
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/suppliers [get]
func (ctrl *PostController) ListSupplierAdmin(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.SupplierPosts()})
}

// SaveSupplier 保存供应商文章
// @Summary 新增或更新供应商介绍
// @Tags Post
// @Security BearerAuth
// @Accept json
// @Param body body model.SupplierPost true "文章数据"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/suppliers [post]
func (ctrl *PostController) SaveSupplier(c *gin.Context) {
	var p model.SupplierPost
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	saved, err := ctrl.store.SaveSupplierPost(c.Request.Context(), p)
	if err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已保存到缓存，远端同步失败待补写: " + err.Error(), "data": saved})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": saved})
}

// DeleteSupplier 删除供应商文章
// @Summary 按 id 删除供应商介绍
// @Tags Post
// @Security BearerAuth
// @Param id path string true "文章 id"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/suppliers/{id} [delete]
func (ctrl *PostController) DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.store.DeleteSupplierPost(c.Request.Context(), id); err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已从缓存删除，远端同步失败待补写: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

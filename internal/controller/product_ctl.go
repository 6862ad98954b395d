package controller

import (
	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/store"
)

type ProductController struct {
	store *store.Store
}

func NewProductController(st *store.Store) *ProductController {
	return &ProductController{store: st}
}

// ==================== 公开接口 ====================

// ListPublic 公开商品列表
// @Summary 获取上架中的商品
// @Tags Product
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (ctrl *ProductController) ListPublic(c *gin.Context) {
	items := make([]model.Product, 0)
	for _, p := range ctrl.store.Products() {
		if p.Status == model.ProductActive {
			items = append(items, p)
		}
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": items})
}

// GetBySlug 公开商品详情
// @Summary 按 slug 获取上架商品
// @Tags Product
// @Param slug path string true "商品 slug"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{slug} [get]
func (ctrl *ProductController) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	for _, p := range ctrl.store.Products() {
		if p.Slug == slug && p.Status == model.ProductActive {
			c.JSON(200, gin.H{"code": 0, "message": "success", "data": p})
			return
		}
	}
	c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
}

// ==================== 管理接口 ====================

// ListAdmin 管理端商品列表（含下架）
// @Summary 获取全部商品
// @Tags Product
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/products [get]
func (ctrl *ProductController) ListAdmin(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Products()})
}

// Save 保存商品
// @Summary 新增或更新商品，id 为空时自动生成
// @Tags Product
// @Security BearerAuth
// @Accept json
// @Param body body model.Product true "商品数据"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/products [post]
func (ctrl *ProductController) Save(c *gin.Context) {
	var p model.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	saved, err := ctrl.store.SaveProduct(c.Request.Context(), p)
	if err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已保存到缓存，远端同步失败待补写: " + err.Error(), "data": saved})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": saved})
}

// Delete 删除商品
// @Summary 按 id 删除商品
// @Tags Product
// @Security BearerAuth
// @Param id path string true "商品 id"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.store.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已从缓存删除，远端同步失败待补写: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

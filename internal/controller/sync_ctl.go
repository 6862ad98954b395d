package controller

import (
	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/store"
)

// SyncController 同步状态监控：查看失同步记录、手动触发补写。
type SyncController struct {
	store *store.Store
}

func NewSyncController(st *store.Store) *SyncController {
	return &SyncController{store: st}
}

// Dirty 失同步记录
// @Summary 获取所有尚未落到后端的记录
// @Tags Sync
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/sync/dirty [get]
func (ctrl *SyncController) Dirty(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Dirty()})
}

// Retry 手动补写
// @Summary 立即补写所有脏记录，不等定时任务
// @Tags Sync
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/sync/retry [post]
func (ctrl *SyncController) Retry(c *gin.Context) {
	if err := ctrl.store.RetryDirty(c.Request.Context()); err != nil {
		c.JSON(200, gin.H{
			"code":    1,
			"message": "部分记录补写失败: " + err.Error(),
			"data":    ctrl.store.Dirty(),
		})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Dirty()})
}

// Stats 后台总览统计
// @Summary 各集合数量与失同步情况
// @Tags Sync
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/stats [get]
func (ctrl *SyncController) Stats(c *gin.Context) {
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"pages":       len(ctrl.store.Pages()),
			"products":    len(ctrl.store.Products()),
			"blogPosts":   len(ctrl.store.BlogPosts()),
			"suppliers":   len(ctrl.store.SupplierPosts()),
			"submissions": len(ctrl.store.Submissions()),
			"media":       len(ctrl.store.Media()),
			"dirty":       len(ctrl.store.Dirty()),
		},
	})
}

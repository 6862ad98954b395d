package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

type SubmissionController struct {
	store   *store.Store
	formSvc *service.FormService
}

func NewSubmissionController(st *store.Store, formSvc *service.FormService) *SubmissionController {
	return &SubmissionController{store: st, formSvc: formSvc}
}

// ==================== 请求结构 ====================

type submitFormReq struct {
	Type     model.SubmissionType   `json:"type" binding:"required,oneof=leader_registration supplier_contact general_contact"`
	Name     string                 `json:"name" binding:"required"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata"`
}

type updateStatusReq struct {
	Status model.SubmissionStatus `json:"status" binding:"required,oneof=new read contacted"`
}

// ==================== 公开接口 ====================

// Submit 公开表单提交
// @Summary 提交表单（组长报名/供应商联系/通用联系）
// @Tags Submission
// @Accept json
// @Param body body submitFormReq true "表单内容"
// @Success 200 {object} map[string]interface{}
// @Router /api/forms [post]
func (ctrl *SubmissionController) Submit(c *gin.Context) {
	var req submitFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	sub := model.FormSubmission{
		Type:     req.Type,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
		Metadata: req.Metadata,
	}

	saved, err := ctrl.formSvc.Submit(c.Request.Context(), sub)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "提交失败: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"id": saved.ID}})
}

// ==================== 管理接口 ====================

// List 管理端提交列表
// @Summary 获取全部表单提交，新的在前
// @Tags Submission
// @Security BearerAuth
// @Param type query string false "类型过滤"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/submissions [get]
func (ctrl *SubmissionController) List(c *gin.Context) {
	filter := model.SubmissionType(c.Query("type"))

	items := make([]model.FormSubmission, 0)
	for _, sub := range ctrl.store.Submissions() {
		if filter != "" && sub.Type != filter {
			continue
		}
		items = append(items, sub)
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": items})
}

// UpdateStatus 状态流转
// @Summary 更新提交处理状态 new -> read -> contacted
// @Tags Submission
// @Security BearerAuth
// @Accept json
// @Param id path string true "提交 id"
// @Param body body updateStatusReq true "目标状态"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/submissions/{id}/status [put]
func (ctrl *SubmissionController) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	id := c.Param("id")
	err := ctrl.store.UpdateSubmissionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "提交记录不存在"})
			return
		}
		c.JSON(202, gin.H{"code": 202, "message": "已更新缓存，远端同步失败待补写: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ExportCSV 导出 CSV
// @Summary 导出全部表单提交为 CSV 附件
// @Tags Submission
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {string} string "CSV 内容"
// @Router /api/admin/submissions/export [get]
func (ctrl *SubmissionController) ExportCSV(c *gin.Context) {
	csv := ctrl.store.ExportSubmissionsCSV()

	filename := fmt.Sprintf("submissions_export_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(csv))
}

package controller

import (
	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/service"
)

type AIController struct {
	aiSvc *service.AIService
}

func NewAIController(aiSvc *service.AIService) *AIController {
	return &AIController{aiSvc: aiSvc}
}

// Generate 内容生成
// @Summary 按模式生成文案（bulk_blog/bulk_product/bulk_supplier/title/policy/content）
// @Tags AI
// @Security BearerAuth
// @Accept json
// @Param body body service.AIGenerateRequest true "生成请求"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/ai/generate [post]
func (ctrl *AIController) Generate(c *gin.Context) {
	var req service.AIGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.aiSvc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "生成失败: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": result})
}

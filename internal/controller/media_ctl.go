package controller

import (
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

// maxUploadSize 上传大小上限 10MB
const maxUploadSize = 10 << 20

type MediaController struct {
	store   *store.Store
	storage service.StorageProvider
}

func NewMediaController(st *store.Store, storage service.StorageProvider) *MediaController {
	return &MediaController{store: st, storage: storage}
}

// ==================== 请求结构 ====================

type addMediaByURLReq struct {
	URL  string          `json:"url" binding:"required,url"`
	Name string          `json:"name"`
	Type model.MediaType `json:"type" binding:"omitempty,oneof=image document"`
}

// ==================== 接口 ====================

// List 媒体库列表
// @Summary 获取全部媒体条目，新的在前
// @Tags Media
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/media [get]
func (ctrl *MediaController) List(c *gin.Context) {
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": ctrl.store.Media()})
}

// Upload 上传文件
// @Summary 上传文件到对象存储并登记媒体条目
// @Tags Media
// @Security BearerAuth
// @Accept multipart/form-data
// @Param file formData file true "文件"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/media/upload [post]
func (ctrl *MediaController) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "未找到上传文件"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(400, gin.H{"code": 400, "message": "文件超过 10MB 上限"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	url, err := ctrl.storage.Upload(ctx, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "上传存储失败: " + err.Error()})
		return
	}

	item := model.MediaItem{
		URL:  url,
		Name: header.Filename,
		Type: mediaTypeOf(header.Header.Get("Content-Type")),
	}
	saved, err := ctrl.store.AddMedia(ctx, item)
	if err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已登记到缓存，远端同步失败待补写: " + err.Error(), "data": saved})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": saved})
}

// AddByURL 按 URL 登记
// @Summary 直接粘贴外链登记媒体条目，不经过对象存储
// @Tags Media
// @Security BearerAuth
// @Accept json
// @Param body body addMediaByURLReq true "外链信息"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/media [post]
func (ctrl *MediaController) AddByURL(c *gin.Context) {
	var req addMediaByURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请求参数错误: " + err.Error()})
		return
	}

	mediaType := req.Type
	if mediaType == "" {
		mediaType = model.MediaImage
	}
	name := req.Name
	if name == "" {
		parts := strings.Split(req.URL, "/")
		name = parts[len(parts)-1]
	}

	item := model.MediaItem{URL: req.URL, Name: name, Type: mediaType}
	saved, err := ctrl.store.AddMedia(c.Request.Context(), item)
	if err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已登记到缓存，远端同步失败待补写: " + err.Error(), "data": saved})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": saved})
}

// Delete 删除媒体条目
// @Summary 按 id 删除媒体条目并清理存储文件。
// 不检查页面/商品/文章中的引用，被引用的 URL 删除后前台显示失效。
// @Tags Media
// @Security BearerAuth
// @Param id path string true "媒体 id"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/media/{id} [delete]
func (ctrl *MediaController) Delete(c *gin.Context) {
	id := c.Param("id")

	// 记录删除前先拿到 URL，用于清理存储
	var url string
	for _, item := range ctrl.store.Media() {
		if item.ID == id {
			url = item.URL
			break
		}
	}

	ctx := c.Request.Context()
	if err := ctrl.store.DeleteMedia(ctx, id); err != nil {
		c.JSON(202, gin.H{"code": 202, "message": "已从缓存删除，远端同步失败待补写: " + err.Error()})
		return
	}

	// 存储清理失败不影响删除结果，外链登记的条目这里本来就删不到
	if url != "" {
		if err := ctrl.storage.Delete(ctx, url); err != nil {
			log.Printf("清理存储文件失败 [%s]: %v", url, err)
		}
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// mediaTypeOf 按 Content-Type 粗分图片/文档
func mediaTypeOf(contentType string) model.MediaType {
	if strings.HasPrefix(contentType, "image/") {
		return model.MediaImage
	}
	return model.MediaDocument
}

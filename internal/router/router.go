package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mctt_cms_v1/internal/controller"
	"mctt_cms_v1/internal/middleware"

	_ "mctt_cms_v1/docs"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth       *controller.AuthController
	Site       *controller.SiteController
	Product    *controller.ProductController
	Post       *controller.PostController
	Submission *controller.SubmissionController
	Media      *controller.MediaController
	AI         *controller.AIController
	Realtime   *controller.RealtimeController
	Sync       *controller.SyncController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, uploadsDir string) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 本地存储模式下的静态文件托管
	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	// 3. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/logout", ctl.Auth.Logout)
			auth.POST("/refresh", ctl.Auth.Refresh)
		}

		// 公开内容，登录态可选：管理端带 Token 请求 /api/site 能看到 AI 密钥
		api.GET("/site", middleware.OptionalAuth(), ctl.Site.GetSite)
		api.GET("/pages", ctl.Site.ListPublished)
		api.GET("/pages/:slug", ctl.Site.GetPage)
		api.GET("/products", ctl.Product.ListPublic)
		api.GET("/products/:slug", ctl.Product.GetBySlug)
		api.GET("/blog", ctl.Post.ListBlogPublic)
		api.GET("/blog/:slug", ctl.Post.GetBlogBySlug)
		api.GET("/suppliers", ctl.Post.ListSupplierPublic)
		api.GET("/suppliers/:slug", ctl.Post.GetSupplierBySlug)

		// 公开表单，按 IP 冷却防刷
		api.POST("/forms", middleware.FormThrottle(10*time.Second), ctl.Submission.Submit)

		// admin 管理组，JWT 强制 + admin 角色
		admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole("admin"), middleware.AuditLog())
		{
			admin.GET("/auth/me", ctl.Auth.Me)
			admin.PUT("/auth/password", ctl.Auth.ChangePassword)

			admin.GET("/config", ctl.Site.GetConfig)
			admin.PUT("/config", ctl.Site.SaveConfig)
			admin.GET("/pages", ctl.Site.ListPages)
			admin.PUT("/pages", ctl.Site.SavePage)

			admin.GET("/products", ctl.Product.ListAdmin)
			admin.POST("/products", ctl.Product.Save)
			admin.DELETE("/products/:id", ctl.Product.Delete)

			admin.GET("/blog", ctl.Post.ListBlogAdmin)
			admin.POST("/blog", ctl.Post.SaveBlog)
			admin.DELETE("/blog/:id", ctl.Post.DeleteBlog)
			admin.GET("/suppliers", ctl.Post.ListSupplierAdmin)
			admin.POST("/suppliers", ctl.Post.SaveSupplier)
			admin.DELETE("/suppliers/:id", ctl.Post.DeleteSupplier)

			admin.GET("/submissions", ctl.Submission.List)
			admin.PUT("/submissions/:id/status", ctl.Submission.UpdateStatus)
			admin.GET("/submissions/export", ctl.Submission.ExportCSV)

			admin.GET("/media", ctl.Media.List)
			admin.POST("/media", ctl.Media.AddByURL)
			admin.POST("/media/upload", ctl.Media.Upload)
			admin.DELETE("/media/:id", ctl.Media.Delete)

			admin.POST("/ai/generate", ctl.AI.Generate)

			// 变更事件推送：配置事件可能携带 AI 密钥，只对管理端开放
			admin.GET("/events", ctl.Realtime.Events)

			admin.GET("/stats", ctl.Sync.Stats)
			admin.GET("/sync/dirty", ctl.Sync.Dirty)
			admin.POST("/sync/retry", middleware.RetryThrottle(30*time.Second), ctl.Sync.Retry)
		}
	}
}

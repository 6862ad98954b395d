package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mctt_cms_v1/internal/controller"
	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/repository"
	"mctt_cms_v1/internal/router"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
	"mctt_cms_v1/internal/task"
	"mctt_cms_v1/pkg/config"
	"mctt_cms_v1/pkg/database"
)

// @title MCTT CMS API
// @version 1.0
// @description Alo Mua Chung 营销站与内容管理后台接口
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	gin.SetMode(cfg.Server.Mode)

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          "mctt-cms",
	})

	// 1. 初始化数据库
	db := initDatabase(cfg)

	// 2. 初始化依赖
	deps := initDependencies(cfg, db)

	// 3. 加载内容快照并挂接实时同步
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := deps.Store.Init(ctx); err != nil {
		log.Fatalf("内容加载失败: %v", err)
	}
	cancel()

	// 4. 启动定时任务
	deps.SyncTask.Start()

	// 5. 初始化路由
	r := gin.Default()
	uploadsDir := ""
	if cfg.Storage.Provider == "local" {
		uploadsDir = cfg.Storage.BasePath
		if uploadsDir == "" {
			uploadsDir = "./uploads"
		}
	}
	router.InitRoutes(r, deps.Controllers, uploadsDir)

	// 6. 启动服务
	startServer(cfg, r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Store       *store.Store
	Controllers *router.Controllers
	SyncTask    *task.SyncRetryTask
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		// 内容表
		&model.ConfigRow{}, &model.PageRow{}, &model.ProductRow{},
		&model.PostRow{}, &model.SubmissionRow{}, &model.MediaRow{},
		// 管理员
		&model.SysUser{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	configRepo := repository.NewConfigRepository(db)
	pageRepo := repository.NewPageRepository(db)
	productRepo := repository.NewProductRepository(db)
	postRepo := repository.NewPostRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	userRepo := repository.NewUserRepository(db)

	// -------- 认证 --------
	authSvc := service.NewAuthService(userRepo)
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authSvc.EnsureAdmin(bootCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("管理员引导失败: %v", err)
	}

	// -------- 内容后端与 Store --------
	backend := store.NewGormBackend(
		configRepo, pageRepo, productRepo,
		postRepo, submissionRepo, mediaRepo,
		authSvc,
	)
	st := store.New(backend)

	// -------- 存储 & 业务服务 --------
	storageProvider, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	formSvc := service.NewFormService(&service.FormConfig{WebhookURL: cfg.Form.WebhookURL}, st)
	aiSvc := service.NewAIService()

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:       controller.NewAuthController(st, authSvc),
		Site:       controller.NewSiteController(st),
		Product:    controller.NewProductController(st),
		Post:       controller.NewPostController(st),
		Submission: controller.NewSubmissionController(st, formSvc),
		Media:      controller.NewMediaController(st, storageProvider),
		AI:         controller.NewAIController(aiSvc),
		Realtime:   controller.NewRealtimeController(backend.Events()),
		Sync:       controller.NewSyncController(st),
	}

	// -------- 定时任务 --------
	syncTask := task.NewSyncRetryTask(st)
	if cfg.Sync.RetrySchedule != "" {
		syncTask.SetSchedule(cfg.Sync.RetrySchedule)
	}

	return &Dependencies{
		DB:          db,
		Store:       st,
		Controllers: controllers,
		SyncTask:    syncTask,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine, deps *Dependencies) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	deps.SyncTask.Stop()
	deps.Store.Close()

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

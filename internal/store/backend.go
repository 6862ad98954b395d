package store

import (
	"context"

	"mctt_cms_v1/internal/model"
)

// Session 后端会话状态
type Session struct {
	Authenticated bool
	Email         string
}

// Backend 远端内容后端能力接口。系统记录以后端为准，
// Store 只是其上的内存快照。Fetch* 无数据时返回空值不报错。
type Backend interface {
	// --- 会话 ---
	Session(ctx context.Context) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context) error

	// --- 配置（单例） ---
	FetchConfig(ctx context.Context) (*model.SiteConfig, error)
	SaveConfig(ctx context.Context, cfg *model.SiteConfig) error

	// --- 页面（按 slug 键） ---
	FetchPages(ctx context.Context) ([]model.PageData, error)
	UpsertPage(ctx context.Context, page model.PageData) error

	// --- 商品 ---
	FetchProducts(ctx context.Context) ([]model.Product, error)
	UpsertProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// --- 文章（blog/supplier 共表，按 type 判别） ---
	FetchPosts(ctx context.Context) (blog []model.BlogPost, supplier []model.SupplierPost, err error)
	UpsertBlogPost(ctx context.Context, p model.BlogPost) error
	UpsertSupplierPost(ctx context.Context, p model.SupplierPost) error
	DeletePost(ctx context.Context, postType model.PostType, id string) error

	// --- 表单提交 ---
	FetchSubmissions(ctx context.Context) ([]model.FormSubmission, error)
	UpsertSubmission(ctx context.Context, sub model.FormSubmission) error

	// --- 媒体 ---
	FetchMedia(ctx context.Context) ([]model.MediaItem, error)
	UpsertMedia(ctx context.Context, item model.MediaItem) error
	DeleteMedia(ctx context.Context, id string) error

	// Events 后端写入事件总线，Store 启动后挂接以保持快照同步
	Events() *Bus
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/repository"
)

// CredentialVerifier 凭证校验能力，由 AuthService 实现
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// GormBackend 基于 gorm 仓储的内容后端实现。
// 每次写入成功后向事件总线广播，挂接的 Store 据此收敛（行级 last-write-wins）。
type GormBackend struct {
	configs     repository.ConfigRepository
	pages       repository.PageRepository
	products    repository.ProductRepository
	posts       repository.PostRepository
	submissions repository.SubmissionRepository
	media       repository.MediaRepository
	auth        CredentialVerifier
	bus         *Bus
}

// NewGormBackend 创建数据库后端
func NewGormBackend(
	configs repository.ConfigRepository,
	pages repository.PageRepository,
	products repository.ProductRepository,
	posts repository.PostRepository,
	submissions repository.SubmissionRepository,
	media repository.MediaRepository,
	auth CredentialVerifier,
) *GormBackend {
	return &GormBackend{
		configs:     configs,
		pages:       pages,
		products:    products,
		posts:       posts,
		submissions: submissions,
		media:       media,
		auth:        auth,
		bus:         NewBus(),
	}
}

func (b *GormBackend) Events() *Bus { return b.bus }

// ==================== 会话 ====================

// Session 服务端无既存会话概念，始终从未认证开始
func (b *GormBackend) Session(ctx context.Context) (Session, error) {
	return Session{}, nil
}

func (b *GormBackend) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := b.auth.Verify(ctx, email, password); err != nil {
		return Session{}, err
	}
	return Session{Authenticated: true, Email: email}, nil
}

func (b *GormBackend) SignOut(ctx context.Context) error { return nil }

// ==================== 配置 ====================

func (b *GormBackend) FetchConfig(ctx context.Context) (*model.SiteConfig, error) {
	row, err := b.configs.Get(ctx, model.ConfigKeyMain)
	if err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	var cfg model.SiteConfig
	if err := json.Unmarshal(row.Value, &cfg); err != nil {
		return nil, &SchemaError{Kind: KindConfig, Key: row.Key, Err: err}
	}
	return &cfg, nil
}

func (b *GormBackend) SaveConfig(ctx context.Context, cfg *model.SiteConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	row := &model.ConfigRow{Key: model.ConfigKeyMain, Value: payload}
	if err := b.configs.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入配置失败: %w", err)
	}
	b.bus.Publish(Event{Kind: KindConfig, Action: ActionUpsert, Key: model.ConfigKeyMain, Payload: payload})
	return nil
}

// ==================== 页面 ====================

func (b *GormBackend) FetchPages(ctx context.Context) ([]model.PageData, error) {
	rows, err := b.pages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取页面失败: %w", err)
	}
	pages := make([]model.PageData, 0, len(rows))
	for _, row := range rows {
		var page model.PageData
		if err := json.Unmarshal(row.Data, &page); err != nil {
			return nil, &SchemaError{Kind: KindPage, Key: row.Slug, Err: err}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (b *GormBackend) UpsertPage(ctx context.Context, page model.PageData) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	row := &model.PageRow{Slug: page.Slug, Data: payload, UpdatedAt: time.Now()}
	if err := b.pages.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入页面失败 [%s]: %w", page.Slug, err)
	}
	b.bus.Publish(Event{Kind: KindPage, Action: ActionUpsert, Key: page.Slug, Payload: payload})
	return nil
}

// ==================== 商品 ====================

func (b *GormBackend) FetchProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := b.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取商品失败: %w", err)
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		var p model.Product
		if err := json.Unmarshal(row.Data, &p); err != nil {
			return nil, &SchemaError{Kind: KindProduct, Key: row.ID, Err: err}
		}
		products = append(products, p)
	}
	return products, nil
}

func (b *GormBackend) UpsertProduct(ctx context.Context, p model.Product) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	row := &model.ProductRow{ID: p.ID, Data: payload, UpdatedAt: time.Now()}
	if err := b.products.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入商品失败 [%s]: %w", p.ID, err)
	}
	b.bus.Publish(Event{Kind: KindProduct, Action: ActionUpsert, Key: p.ID, Payload: payload})
	return nil
}

func (b *GormBackend) DeleteProduct(ctx context.Context, id string) error {
	if err := b.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除商品失败 [%s]: %w", id, err)
	}
	b.bus.Publish(Event{Kind: KindProduct, Action: ActionDelete, Key: id})
	return nil
}

// ==================== 文章 ====================

func (b *GormBackend) FetchPosts(ctx context.Context) ([]model.BlogPost, []model.SupplierPost, error) {
	rows, err := b.posts.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("读取文章失败: %w", err)
	}
	var blog []model.BlogPost
	var supplier []model.SupplierPost
	for _, row := range rows {
		switch row.Type {
		case model.PostTypeBlog:
			var p model.BlogPost
			if err := json.Unmarshal(row.Data, &p); err != nil {
				return nil, nil, &SchemaError{Kind: KindPost, Key: row.ID, Err: err}
			}
			blog = append(blog, p)
		case model.PostTypeSupplier:
			var p model.SupplierPost
			if err := json.Unmarshal(row.Data, &p); err != nil {
				return nil, nil, &SchemaError{Kind: KindPost, Key: row.ID, Err: err}
			}
			supplier = append(supplier, p)
		}
	}
	return blog, supplier, nil
}

func (b *GormBackend) UpsertBlogPost(ctx context.Context, p model.BlogPost) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	row := &model.PostRow{ID: p.ID, Type: model.PostTypeBlog, Data: payload, UpdatedAt: time.Now()}
	if err := b.posts.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入文章失败 [%s]: %w", p.ID, err)
	}
	b.bus.Publish(Event{Kind: KindPost, Action: ActionUpsert, Key: p.ID, PostType: model.PostTypeBlog, Payload: payload})
	return nil
}

func (b *GormBackend) UpsertSupplierPost(ctx context.Context, p model.SupplierPost) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	row := &model.PostRow{ID: p.ID, Type: model.PostTypeSupplier, Data: payload, UpdatedAt: time.Now()}
	if err := b.posts.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入供应商文章失败 [%s]: %w", p.ID, err)
	}
	b.bus.Publish(Event{Kind: KindPost, Action: ActionUpsert, Key: p.ID, PostType: model.PostTypeSupplier, Payload: payload})
	return nil
}

func (b *GormBackend) DeletePost(ctx context.Context, postType model.PostType, id string) error {
	if err := b.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除文章失败 [%s]: %w", id, err)
	}
	b.bus.Publish(Event{Kind: KindPost, Action: ActionDelete, Key: id, PostType: postType})
	return nil
}

// ==================== 表单提交 ====================

func (b *GormBackend) FetchSubmissions(ctx context.Context) ([]model.FormSubmission, error) {
	rows, err := b.submissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取表单失败: %w", err)
	}
	subs := make([]model.FormSubmission, 0, len(rows))
	for _, row := range rows {
		var sub model.FormSubmission
		if err := json.Unmarshal(row.Data, &sub); err != nil {
			return nil, &SchemaError{Kind: KindSubmission, Key: row.ID, Err: err}
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (b *GormBackend) UpsertSubmission(ctx context.Context, sub model.FormSubmission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	createdAt, _ := time.Parse("2006-01-02T15:04:05.000Z07:00", sub.CreatedAt)
	row := &model.SubmissionRow{ID: sub.ID, Type: sub.Type, Data: payload, CreatedAt: createdAt}
	if err := b.submissions.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入表单失败 [%s]: %w", sub.ID, err)
	}
	b.bus.Publish(Event{Kind: KindSubmission, Action: ActionUpsert, Key: sub.ID, Payload: payload})
	return nil
}

// ==================== 媒体 ====================

func (b *GormBackend) FetchMedia(ctx context.Context) ([]model.MediaItem, error) {
	rows, err := b.media.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取媒体失败: %w", err)
	}
	items := make([]model.MediaItem, 0, len(rows))
	for _, row := range rows {
		var item model.MediaItem
		if err := json.Unmarshal(row.Data, &item); err != nil {
			return nil, &SchemaError{Kind: KindMedia, Key: row.ID, Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *GormBackend) UpsertMedia(ctx context.Context, item model.MediaItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	createdAt, _ := time.Parse("2006-01-02T15:04:05.000Z07:00", item.CreatedAt)
	row := &model.MediaRow{ID: item.ID, Data: payload, CreatedAt: createdAt}
	if err := b.media.Upsert(ctx, row); err != nil {
		return fmt.Errorf("写入媒体失败 [%s]: %w", item.ID, err)
	}
	b.bus.Publish(Event{Kind: KindMedia, Action: ActionUpsert, Key: item.ID, Payload: payload})
	return nil
}

func (b *GormBackend) DeleteMedia(ctx context.Context, id string) error {
	if err := b.media.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除媒体失败 [%s]: %w", id, err)
	}
	b.bus.Publish(Event{Kind: KindMedia, Action: ActionDelete, Key: id})
	return nil
}

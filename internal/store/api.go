package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/pkg/utils"
)

// ErrNotFound 按键查询不到记录
var ErrNotFound = errors.New("记录不存在")

// 内容访问 API。读操作只读快照，无网络 IO；
// 写操作先落缓存（立即可见）再持久化，远端失败不回滚只标脏。

// ==================== 读操作 ====================

// Config 当前站点配置
func (s *Store) Config() model.SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return *model.DefaultConfig()
	}
	return *s.config
}

// Pages 全部页面
func (s *Store) Pages() []model.PageData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PageData, len(s.pages))
	copy(out, s.pages)
	return out
}

// Page 按 slug 查询，不存在时 ok 为 false
func (s *Store) Page(slug string) (model.PageData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.PageData{}, false
}

// Products 全部商品
func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product 按 id 查询
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// BlogPosts 全部博客文章
func (s *Store) BlogPosts() []model.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.BlogPost, len(s.blogPosts))
	copy(out, s.blogPosts)
	return out
}

// SupplierPosts 全部供应商文章
func (s *Store) SupplierPosts() []model.SupplierPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SupplierPost, len(s.supplierPosts))
	copy(out, s.supplierPosts)
	return out
}

// Submissions 全部表单提交，新的在前
func (s *Store) Submissions() []model.FormSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FormSubmission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

// Media 媒体库条目，新的在前
func (s *Store) Media() []model.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MediaItem, len(s.media))
	copy(out, s.media)
	return out
}

// ==================== 写操作 ====================

// SaveConfig 整体替换站点配置
func (s *Store) SaveConfig(ctx context.Context, cfg model.SiteConfig) error {
	s.mu.Lock()
	s.config = &cfg
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindConfig, model.ConfigKeyMain}, func() error {
		return s.backend.SaveConfig(ctx, &cfg)
	})
}

// SavePage 按 slug 覆盖或新增页面，刷新 updatedAt
func (s *Store) SavePage(ctx context.Context, page model.PageData) error {
	if page.Slug == "" {
		return fmt.Errorf("页面 slug 不能为空")
	}
	page.UpdatedAt = model.NowISO()

	s.mu.Lock()
	s.pages = upsertPage(s.pages, page)
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindPage, page.Slug}, func() error {
		return s.backend.UpsertPage(ctx, page)
	})
}

// SaveProduct 保存商品，id 为空时生成。
// 阶梯价按原样保存，不排序不校验（排序是录入约定）。
func (s *Store) SaveProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = utils.ShortID()
	}
	p.UpdatedAt = model.NowISO()

	s.mu.Lock()
	s.products = upsertProduct(s.products, p)
	s.mu.Unlock()
	s.notify()

	err := s.persist(recordRef{KindProduct, p.ID}, func() error {
		return s.backend.UpsertProduct(ctx, p)
	})
	return p, err
}

// DeleteProduct 删除商品
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	s.products = removeProduct(s.products, id)
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindProduct, id}, func() error {
		return s.backend.DeleteProduct(ctx, id)
	})
}

// SaveBlogPost 保存博客文章
func (s *Store) SaveBlogPost(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	if p.ID == "" {
		p.ID = utils.ShortID()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = model.NowISO()
	}
	p.UpdatedAt = model.NowISO()

	s.mu.Lock()
	s.blogPosts = upsertBlogPost(s.blogPosts, p)
	s.mu.Unlock()
	s.notify()

	err := s.persist(recordRef{KindPost, p.ID}, func() error {
		return s.backend.UpsertBlogPost(ctx, p)
	})
	return p, err
}

// DeleteBlogPost 删除博客文章
func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	s.mu.Lock()
	s.blogPosts = removeBlogPost(s.blogPosts, id)
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindPost, id}, func() error {
		return s.backend.DeletePost(ctx, model.PostTypeBlog, id)
	})
}

// SaveSupplierPost 保存供应商文章
func (s *Store) SaveSupplierPost(ctx context.Context, p model.SupplierPost) (model.SupplierPost, error) {
	if p.ID == "" {
		p.ID = utils.ShortID()
	}
	p.UpdatedAt = model.NowISO()

	s.mu.Lock()
	s.supplierPosts = upsertSupplierPost(s.supplierPosts, p)
	s.mu.Unlock()
	s.notify()

	err := s.persist(recordRef{KindPost, p.ID}, func() error {
		return s.backend.UpsertSupplierPost(ctx, p)
	})
	return p, err
}

// DeleteSupplierPost 删除供应商文章
func (s *Store) DeleteSupplierPost(ctx context.Context, id string) error {
	s.mu.Lock()
	s.supplierPosts = removeSupplierPost(s.supplierPosts, id)
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindPost, id}, func() error {
		return s.backend.DeletePost(ctx, model.PostTypeSupplier, id)
	})
}

// AddSubmission 新增表单提交：生成 id/createdAt，状态置 new，插到队首
func (s *Store) AddSubmission(ctx context.Context, sub model.FormSubmission) (model.FormSubmission, error) {
	sub.ID = utils.ShortID()
	sub.CreatedAt = model.NowISO()
	sub.Status = model.SubmissionNew

	s.mu.Lock()
	s.submissions = append([]model.FormSubmission{sub}, s.submissions...)
	s.mu.Unlock()
	s.notify()

	err := s.persist(recordRef{KindSubmission, sub.ID}, func() error {
		return s.backend.UpsertSubmission(ctx, sub)
	})
	return sub, err
}

// UpdateSubmissionStatus 状态流转（new -> read -> contacted）
func (s *Store) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus) error {
	s.mu.Lock()
	var updated *model.FormSubmission
	for i := range s.submissions {
		if s.submissions[i].ID == id {
			s.submissions[i].Status = status
			sub := s.submissions[i]
			updated = &sub
			break
		}
	}
	s.mu.Unlock()
	if updated == nil {
		return ErrNotFound
	}
	s.notify()

	return s.persist(recordRef{KindSubmission, id}, func() error {
		return s.backend.UpsertSubmission(ctx, *updated)
	})
}

// AddMedia 新增媒体条目：生成 id/createdAt，插到队首
func (s *Store) AddMedia(ctx context.Context, item model.MediaItem) (model.MediaItem, error) {
	item.ID = utils.ShortID()
	item.CreatedAt = model.NowISO()

	s.mu.Lock()
	s.media = append([]model.MediaItem{item}, s.media...)
	s.mu.Unlock()
	s.notify()

	err := s.persist(recordRef{KindMedia, item.ID}, func() error {
		return s.backend.UpsertMedia(ctx, item)
	})
	return item, err
}

// DeleteMedia 删除媒体条目。不检查页面/商品/文章中的引用，
// 被引用的 URL 删除后前台显示为失效图片。
func (s *Store) DeleteMedia(ctx context.Context, id string) error {
	s.mu.Lock()
	s.media = removeMedia(s.media, id)
	s.mu.Unlock()
	s.notify()

	return s.persist(recordRef{KindMedia, id}, func() error {
		return s.backend.DeleteMedia(ctx, id)
	})
}

// ==================== 查找辅助 ====================

func (s *Store) findBlogPost(id string) (model.BlogPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.blogPosts {
		if p.ID == id {
			return p, true
		}
	}
	return model.BlogPost{}, false
}

func (s *Store) findSupplierPost(id string) (model.SupplierPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.supplierPosts {
		if p.ID == id {
			return p, true
		}
	}
	return model.SupplierPost{}, false
}

func (s *Store) findSubmission(id string) (model.FormSubmission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return model.FormSubmission{}, false
}

func (s *Store) findMedia(id string) (model.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.media {
		if item.ID == id {
			return item, true
		}
	}
	return model.MediaItem{}, false
}

// ==================== 切片操作 ====================

// upsert 均为 find-then-replace-or-append，保证幂等

func upsertPage(pages []model.PageData, page model.PageData) []model.PageData {
	for i := range pages {
		if pages[i].Slug == page.Slug {
			pages[i] = page
			return pages
		}
	}
	return append(pages, page)
}

func removePage(pages []model.PageData, slug string) []model.PageData {
	out := pages[:0]
	for _, p := range pages {
		if p.Slug != slug {
			out = append(out, p)
		}
	}
	return out
}

func upsertProduct(products []model.Product, p model.Product) []model.Product {
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return products
		}
	}
	return append(products, p)
}

func removeProduct(products []model.Product, id string) []model.Product {
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func upsertBlogPost(posts []model.BlogPost, p model.BlogPost) []model.BlogPost {
	for i := range posts {
		if posts[i].ID == p.ID {
			posts[i] = p
			return posts
		}
	}
	return append(posts, p)
}

func removeBlogPost(posts []model.BlogPost, id string) []model.BlogPost {
	out := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func upsertSupplierPost(posts []model.SupplierPost, p model.SupplierPost) []model.SupplierPost {
	for i := range posts {
		if posts[i].ID == p.ID {
			posts[i] = p
			return posts
		}
	}
	return append(posts, p)
}

func removeSupplierPost(posts []model.SupplierPost, id string) []model.SupplierPost {
	out := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func upsertSubmission(subs []model.FormSubmission, sub model.FormSubmission) []model.FormSubmission {
	for i := range subs {
		if subs[i].ID == sub.ID {
			subs[i] = sub
			return subs
		}
	}
	subs = append(subs, sub)
	sortSubmissions(subs)
	return subs
}

func removeMedia(items []model.MediaItem, id string) []model.MediaItem {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func upsertMedia(items []model.MediaItem, item model.MediaItem) []model.MediaItem {
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return items
		}
	}
	return append([]model.MediaItem{item}, items...)
}

// sortSubmissions 按提交时间倒序（ISO 串可直接字典序比较）
func sortSubmissions(subs []model.FormSubmission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt > subs[j].CreatedAt
	})
}

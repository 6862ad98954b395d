package store

import (
	"context"
	"log"

	"mctt_cms_v1/internal/model"
)

// pageMigration 启动期页面迁移。Apply 返回 true 表示页面被改动需要回写。
// 每条迁移必须幂等：对已迁移的页面再跑一次不产生变化。
type pageMigration struct {
	Version int
	Name    string
	Apply   func(p *model.PageData) bool
}

// pageMigrations 按 Version 升序执行，新迁移追加到末尾
var pageMigrations = []pageMigration{
	{
		Version: 1,
		Name:    "home_dynamic_sections",
		Apply:   migrateHomeDynamicSections,
	},
}

// migrateHomeDynamicSections 给 home 页补齐三个动态区块
// （products/events/blog），早期创建的页面没有这些区块。
func migrateHomeDynamicSections(p *model.PageData) bool {
	if p.Slug != "home" {
		return false
	}

	wanted := []model.SectionContent{
		{
			ID:       "products",
			Type:     model.SectionProducts,
			Title:    "Vườn giải pháp",
			Subtitle: "Sản phẩm đang mở gom chung",
		},
		{
			ID:       "events",
			Type:     model.SectionEvents,
			Title:    "Sự kiện cộng đồng",
			Subtitle: "Hoạt động sắp diễn ra",
		},
		{
			ID:       "blog",
			Type:     model.SectionBlog,
			Title:    "Dưỡng vườn tâm",
			Subtitle: "Bài viết mới nhất",
		},
	}

	maxOrder := 0
	for _, sec := range p.Sections {
		if sec.Order > maxOrder {
			maxOrder = sec.Order
		}
	}

	changed := false
	for _, sec := range wanted {
		if hasSectionType(p.Sections, sec.Type) {
			continue
		}
		maxOrder++
		sec.Order = maxOrder
		sec.IsVisible = true
		p.Sections = append(p.Sections, sec)
		changed = true
	}
	return changed
}

func hasSectionType(sections []model.SectionContent, t model.SectionType) bool {
	for _, sec := range sections {
		if sec.Type == t {
			return true
		}
	}
	return false
}

// runMigrations 对全部页面依序执行迁移，改动的页面立即回写后端
func (s *Store) runMigrations(ctx context.Context, pages []model.PageData) ([]model.PageData, error) {
	for _, m := range pageMigrations {
		for i := range pages {
			if !m.Apply(&pages[i]) {
				continue
			}
			pages[i].UpdatedAt = model.NowISO()
			log.Printf("页面迁移 v%d %s 应用于 [%s]", m.Version, m.Name, pages[i].Slug)
			if err := s.backend.UpsertPage(ctx, pages[i]); err != nil {
				return nil, err
			}
		}
	}
	return pages, nil
}

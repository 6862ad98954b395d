package store

import (
	"context"
	"testing"

	"mctt_cms_v1/internal/model"
)

func TestMigrateHomeAddsDynamicSections(t *testing.T) {
	page := model.PageData{
		Slug:   "home",
		Title:  "Trang Chủ",
		Status: model.StatusPublished,
		Sections: []model.SectionContent{
			{ID: "hero", Type: model.SectionHero, Order: 1, IsVisible: true},
			{ID: "pillars", Type: model.SectionFeatures, Order: 2, IsVisible: true},
		},
	}

	if changed := migrateHomeDynamicSections(&page); !changed {
		t.Fatal("缺少动态区块的 home 页应被改动")
	}

	if got := len(page.Sections); got != 5 {
		t.Fatalf("迁移后区块数 = %d, 期望 5", got)
	}
	// 追加区块排在既有区块之后，order 从 max+1 递增
	for i, want := range []struct {
		id    string
		typ   model.SectionType
		order int
	}{
		{"products", model.SectionProducts, 3},
		{"events", model.SectionEvents, 4},
		{"blog", model.SectionBlog, 5},
	} {
		sec := page.Sections[2+i]
		if sec.ID != want.id || sec.Type != want.typ || sec.Order != want.order {
			t.Errorf("区块[%d] = {%s %s %d}, 期望 {%s %s %d}",
				2+i, sec.ID, sec.Type, sec.Order, want.id, want.typ, want.order)
		}
		if !sec.IsVisible {
			t.Errorf("补齐的区块 %s 应默认可见", sec.ID)
		}
	}
}

func TestMigrateHomeIdempotent(t *testing.T) {
	page := model.PageData{
		Slug:   "home",
		Status: model.StatusPublished,
		Sections: []model.SectionContent{
			{ID: "hero", Type: model.SectionHero, Order: 1, IsVisible: true},
		},
	}

	migrateHomeDynamicSections(&page)
	count := len(page.Sections)

	if changed := migrateHomeDynamicSections(&page); changed {
		t.Error("二次迁移不应报告改动")
	}
	if got := len(page.Sections); got != count {
		t.Errorf("二次迁移产生重复区块: %d -> %d", count, got)
	}
}

func TestMigrateSkipsExistingSectionTypes(t *testing.T) {
	// 已手工加过商品区块的页面只补缺的两个
	page := model.PageData{
		Slug:   "home",
		Status: model.StatusPublished,
		Sections: []model.SectionContent{
			{ID: "my-products", Type: model.SectionProducts, Order: 7, IsVisible: true},
		},
	}

	if changed := migrateHomeDynamicSections(&page); !changed {
		t.Fatal("缺 events/blog 区块时应被改动")
	}
	if got := len(page.Sections); got != 3 {
		t.Fatalf("区块数 = %d, 期望 3", got)
	}
	if page.Sections[0].ID != "my-products" || page.Sections[0].Order != 7 {
		t.Errorf("既有区块被改动: %+v", page.Sections[0])
	}
	if page.Sections[1].Order != 8 || page.Sections[2].Order != 9 {
		t.Errorf("补齐区块 order 应从既有最大值递增: %d, %d",
			page.Sections[1].Order, page.Sections[2].Order)
	}
}

func TestMigrateIgnoresOtherPages(t *testing.T) {
	page := model.PageData{Slug: "model", Status: model.StatusPublished}
	if changed := migrateHomeDynamicSections(&page); changed {
		t.Error("非 home 页不应被迁移")
	}
	if len(page.Sections) != 0 {
		t.Errorf("非 home 页被追加了区块: %+v", page.Sections)
	}
}

func TestRunMigrationsWritesBackChangedPages(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	pages := []model.PageData{
		{Slug: "home", Status: model.StatusPublished},
		{Slug: "model", Status: model.StatusPublished},
	}

	migrated, err := s.runMigrations(context.Background(), pages)
	if err != nil {
		t.Fatalf("runMigrations 失败: %v", err)
	}

	home := migrated[0]
	if len(home.Sections) != 3 {
		t.Fatalf("home 区块数 = %d, 期望 3", len(home.Sections))
	}
	if home.UpdatedAt == "" {
		t.Error("改动页面应刷新 updatedAt")
	}
	if _, ok := backend.pages["home"]; !ok {
		t.Error("改动页面未回写后端")
	}
	if _, ok := backend.pages["model"]; ok {
		t.Error("未改动页面不应回写")
	}
}

package service

import (
	"context"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Combo 5kg  ", "combo-5kg"},
		{"Tra 123!", "tra-123"},
		{"---", ""},
		{"ALREADY-slug", "already-slug"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAIGenerate_BulkBlog(t *testing.T) {
	svc := NewAIService()

	result, err := svc.Generate(context.Background(), AIGenerateRequest{
		Prompt: "tra thao moc",
		Mode:   AIModeBulkBlog,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Title == "" || result.Excerpt == "" {
		t.Error("bulk_blog 应填充标题和摘要")
	}
	if result.Slug != Slugify(result.Title) {
		t.Errorf("Slug = %q, 应由标题派生", result.Slug)
	}
	if !strings.Contains(result.Content, "tra thao moc") {
		t.Error("正文应包含主题词")
	}
	if !strings.Contains(result.Content, "<h3>") {
		t.Error("正文应为带标题结构的富文本")
	}
}

func TestAIGenerate_BulkProduct(t *testing.T) {
	svc := NewAIService()

	result, err := svc.Generate(context.Background(), AIGenerateRequest{
		Prompt: "Mat ong rung",
		Mode:   AIModeBulkProduct,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Name != "Mat ong rung" {
		t.Errorf("Name = %q", result.Name)
	}
	if result.Slug != "mat-ong-rung" {
		t.Errorf("Slug = %q", result.Slug)
	}
	if result.ShortDescription == "" {
		t.Error("bulk_product 应填充简介")
	}
	// 模板中的承诺文案，确认 %% 转义无误
	if !strings.Contains(result.Content, "100%") {
		t.Error("正文应包含完整的承诺文案")
	}
}

func TestAIGenerate_TitleOnly(t *testing.T) {
	svc := NewAIService()

	result, err := svc.Generate(context.Background(), AIGenerateRequest{
		Prompt: "song xanh",
		Mode:   AIModeTitle,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Title != "" || result.Slug != "" {
		t.Error("title 模式只应填 Content")
	}
	if !strings.Contains(result.Content, "song xanh") {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestAIGenerate_DefaultsToContent(t *testing.T) {
	svc := NewAIService()

	result, err := svc.Generate(context.Background(), AIGenerateRequest{Prompt: "chu de"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Content == "" {
		t.Error("未指定模式应生成通用正文")
	}
}

func TestAIGenerate_Errors(t *testing.T) {
	svc := NewAIService()
	ctx := context.Background()

	if _, err := svc.Generate(ctx, AIGenerateRequest{Prompt: "   "}); err == nil {
		t.Error("空 prompt 应报错")
	}
	if _, err := svc.Generate(ctx, AIGenerateRequest{Prompt: "x", Mode: "video"}); err == nil {
		t.Error("未知模式应报错")
	}
}

func TestFillerHTMLScalesWithWordCount(t *testing.T) {
	short := strings.Count(fillerHTML("x", 60), "<p>")
	long := strings.Count(fillerHTML("x", 240), "<p>")

	if short != 1 {
		t.Errorf("60 词应生成 1 段, got %d", short)
	}
	if long != 4 {
		t.Errorf("240 词应生成 4 段, got %d", long)
	}
}

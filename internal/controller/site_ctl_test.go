package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/repository"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

// ==================== 测试环境 ====================

// newCtlTestStore 真实链路：sqlite 仓储 -> GormBackend -> Store
func newCtlTestStore(t *testing.T) (*store.Store, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	err = db.AutoMigrate(
		&model.ConfigRow{}, &model.PageRow{}, &model.ProductRow{},
		&model.PostRow{}, &model.SubmissionRow{}, &model.MediaRow{},
		&model.SysUser{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	authSvc := service.NewAuthService(repository.NewUserRepository(db))
	if err := authSvc.EnsureAdmin(context.Background(), "admin@alomuachung.vn", "admin123"); err != nil {
		t.Fatalf("管理员引导失败: %v", err)
	}

	backend := store.NewGormBackend(
		repository.NewConfigRepository(db),
		repository.NewPageRepository(db),
		repository.NewProductRepository(db),
		repository.NewPostRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewMediaRepository(db),
		authSvc,
	)
	st := store.New(backend)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("store 初始化失败: %v", err)
	}
	t.Cleanup(st.Close)
	return st, authSvc
}

// adminToken 签发测试用的管理员 access token
func adminToken(t *testing.T) string {
	t.Helper()
	access, _, err := middleware.GenerateTokenPair(1, "admin@alomuachung.vn", "admin")
	if err != nil {
		t.Fatalf("签发测试 Token 失败: %v", err)
	}
	return access
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v\n%s", err, w.Body.String())
	}
	return resp
}

func setupSiteRouter(st *store.Store) *gin.Engine {
	ctrl := NewSiteController(st)
	r := gin.New()
	r.GET("/api/site", middleware.OptionalAuth(), ctrl.GetSite)
	r.GET("/api/pages", ctrl.ListPublished)
	r.GET("/api/pages/:slug", ctrl.GetPage)

	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole("admin"))
	admin.GET("/config", ctrl.GetConfig)
	admin.PUT("/config", ctrl.SaveConfig)
	admin.GET("/pages", ctrl.ListPages)
	admin.PUT("/pages", ctrl.SavePage)
	return r
}

// ==================== 公开站点视图 ====================

func TestGetSite_StripsAIKeysForPublic(t *testing.T) {
	st, _ := newCtlTestStore(t)

	cfg := st.Config()
	cfg.AIKeys = &model.AIKeys{Gemini: "bi-mat"}
	if err := st.SaveConfig(context.Background(), cfg); err != nil {
		t.Fatalf("SaveConfig 失败: %v", err)
	}

	r := setupSiteRouter(st)

	// 匿名请求不含密钥
	w := doJSON(r, "GET", "/api/site", "", nil)
	assert.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), "bi-mat")

	// 带 Token 请求能看到密钥
	w = doJSON(r, "GET", "/api/site", adminToken(t), nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "bi-mat")
}

func TestGetSite_OnlyPublishedPages(t *testing.T) {
	st, _ := newCtlTestStore(t)

	err := st.SavePage(context.Background(), model.PageData{
		Slug:   "nhap",
		Title:  "Bản nháp",
		Status: model.StatusDraft,
	})
	assert.NoError(t, err)

	r := setupSiteRouter(st)
	w := doJSON(r, "GET", "/api/site", "", nil)
	assert.Equal(t, 200, w.Code)

	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	for _, raw := range data["pages"].([]interface{}) {
		page := raw.(map[string]interface{})
		assert.NotEqual(t, "nhap", page["slug"], "草稿页不应出现在公开视图")
	}
}

func TestListPublished_ExcludesDrafts(t *testing.T) {
	st, _ := newCtlTestStore(t)
	st.SavePage(context.Background(), model.PageData{
		Slug:   "nhap",
		Status: model.StatusDraft,
	})

	r := setupSiteRouter(st)
	w := doJSON(r, "GET", "/api/pages", "", nil)
	assert.Equal(t, 200, w.Code)

	resp := decodeEnvelope(t, w)
	pages := resp["data"].([]interface{})
	assert.Len(t, pages, 5, "五个种子页面都是已发布状态")
	for _, raw := range pages {
		assert.NotEqual(t, "nhap", raw.(map[string]interface{})["slug"])
	}
}

func TestGetPage_DraftAndMissingAre404(t *testing.T) {
	st, _ := newCtlTestStore(t)
	st.SavePage(context.Background(), model.PageData{
		Slug:   "nhap",
		Status: model.StatusDraft,
	})

	r := setupSiteRouter(st)

	w := doJSON(r, "GET", "/api/pages/home", "", nil)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/pages/nhap", "", nil)
	assert.Equal(t, 404, w.Code)

	w = doJSON(r, "GET", "/api/pages/khong-ton-tai", "", nil)
	assert.Equal(t, 404, w.Code)
}

// ==================== 管理接口 ====================

func TestAdminConfig_RequiresToken(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSiteRouter(st)

	w := doJSON(r, "GET", "/api/admin/config", "", nil)
	assert.Equal(t, 401, w.Code)

	w = doJSON(r, "GET", "/api/admin/config", "khong-hop-le", nil)
	assert.Equal(t, 401, w.Code)
}

func TestAdminConfig_SaveAndRead(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSiteRouter(st)
	token := adminToken(t)

	cfg := st.Config()
	cfg.SiteName = "Tên mới"
	w := doJSON(r, "PUT", "/api/admin/config", token, cfg)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "GET", "/api/admin/config", token, nil)
	assert.Equal(t, 200, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Tên mới", data["siteName"])
}

func TestAdminSavePage_RequiresSlug(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSiteRouter(st)

	w := doJSON(r, "PUT", "/api/admin/pages", adminToken(t), model.PageData{Title: "Không slug"})
	assert.Equal(t, 400, w.Code)
}

func TestAdminSavePage_RoundTrip(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSiteRouter(st)
	token := adminToken(t)

	page := model.PageData{
		Slug:   "gioi-thieu",
		Title:  "Giới thiệu",
		Status: model.StatusPublished,
		Sections: []model.SectionContent{
			{ID: "a", Type: model.SectionText, Order: 1, IsVisible: true},
		},
	}
	w := doJSON(r, "PUT", "/api/admin/pages", token, page)
	assert.Equal(t, 200, w.Code)

	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "gioi-thieu", data["slug"])
	assert.NotEmpty(t, data["updatedAt"], "保存应刷新 updatedAt")

	saved, ok := st.Page("gioi-thieu")
	assert.True(t, ok)
	assert.Len(t, saved.Sections, 1)
}

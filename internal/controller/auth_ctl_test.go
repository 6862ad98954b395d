package controller

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

func setupAuthRouter(st *store.Store, authSvc *service.AuthService) *gin.Engine {
	ctrl := NewAuthController(st, authSvc)
	r := gin.New()
	r.POST("/api/auth/login", ctrl.Login)
	r.POST("/api/auth/logout", ctrl.Logout)
	r.POST("/api/auth/refresh", ctrl.Refresh)

	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole("admin"))
	admin.GET("/auth/me", ctrl.Me)
	admin.PUT("/auth/password", ctrl.ChangePassword)
	return r
}

func TestLogin_Success(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)

	w := doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@alomuachung.vn",
		"password": "admin123",
	})
	assert.Equal(t, 200, w.Code)

	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])
	assert.Equal(t, "admin@alomuachung.vn", data["email"])
	assert.True(t, st.CheckAuth(), "登录成功后会话标志应置位")
}

func TestLogin_BadCredentials(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)

	w := doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@alomuachung.vn",
		"password": "sai-mat-khau",
	})
	assert.Equal(t, 401, w.Code)
	assert.False(t, st.CheckAuth())

	// 缺字段走参数校验
	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{"email": "khong-phai-email"})
	assert.Equal(t, 400, w.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)

	doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@alomuachung.vn",
		"password": "admin123",
	})
	w := doJSON(r, "POST", "/api/auth/logout", "", nil)
	assert.Equal(t, 200, w.Code)
	assert.False(t, st.CheckAuth())
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)

	login := doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@alomuachung.vn",
		"password": "admin123",
	})
	data := decodeEnvelope(t, login)["data"].(map[string]interface{})

	w := doJSON(r, "POST", "/api/auth/refresh", "", gin.H{
		"refreshToken": data["refreshToken"],
	})
	assert.Equal(t, 200, w.Code)

	// access token 不能当 refresh 用
	w = doJSON(r, "POST", "/api/auth/refresh", "", gin.H{
		"refreshToken": data["accessToken"],
	})
	assert.Equal(t, 401, w.Code)
}

func TestMe_ReturnsClaims(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)

	w := doJSON(r, "GET", "/api/admin/auth/me", adminToken(t), nil)
	assert.Equal(t, 200, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "admin@alomuachung.vn", data["email"])
	assert.Equal(t, "admin", data["role"])
}

func TestChangePassword_Flow(t *testing.T) {
	st, authSvc := newCtlTestStore(t)
	r := setupAuthRouter(st, authSvc)
	token := adminToken(t)

	// 旧密码错误
	w := doJSON(r, "PUT", "/api/admin/auth/password", token, gin.H{
		"oldPassword": "sai",
		"newPassword": "matkhaumoi123",
	})
	assert.Equal(t, 401, w.Code)

	// 新密码太短
	w = doJSON(r, "PUT", "/api/admin/auth/password", token, gin.H{
		"oldPassword": "admin123",
		"newPassword": "ngan",
	})
	assert.Equal(t, 400, w.Code)

	// 正常修改
	w = doJSON(r, "PUT", "/api/admin/auth/password", token, gin.H{
		"oldPassword": "admin123",
		"newPassword": "matkhaumoi123",
	})
	assert.Equal(t, 200, w.Code)

	// 新密码可登录
	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@alomuachung.vn",
		"password": "matkhaumoi123",
	})
	assert.Equal(t, 200, w.Code)
}

package controller

import (
	"context"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mctt_cms_v1/internal/middleware"
	"mctt_cms_v1/internal/model"
	"mctt_cms_v1/internal/service"
	"mctt_cms_v1/internal/store"
)

func setupSubmissionRouter(st *store.Store) *gin.Engine {
	formSvc := service.NewFormService(&service.FormConfig{}, st)
	ctrl := NewSubmissionController(st, formSvc)

	r := gin.New()
	r.POST("/api/forms", ctrl.Submit)

	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole("admin"))
	admin.GET("/submissions", ctrl.List)
	admin.PUT("/submissions/:id/status", ctrl.UpdateStatus)
	admin.GET("/submissions/export", ctrl.ExportCSV)
	return r
}

func TestSubmitForm_Public(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSubmissionRouter(st)

	w := doJSON(r, "POST", "/api/forms", "", gin.H{
		"type":  "leader_registration",
		"name":  "Chị Hoa",
		"email": "hoa@example.com",
		"phone": "0909123456",
	})
	assert.Equal(t, 200, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	id, _ := data["id"].(string)
	assert.Len(t, id, 9)

	subs := st.Submissions()
	assert.Len(t, subs, 1)
	assert.Equal(t, model.SubmissionNew, subs[0].Status)
}

func TestSubmitForm_Validation(t *testing.T) {
	st, _ := newCtlTestStore(t)
	r := setupSubmissionRouter(st)

	// 未知类型
	w := doJSON(r, "POST", "/api/forms", "", gin.H{
		"type": "khieu-nai",
		"name": "Ai đó",
	})
	assert.Equal(t, 400, w.Code)

	// 缺姓名
	w = doJSON(r, "POST", "/api/forms", "", gin.H{
		"type": "general_contact",
	})
	assert.Equal(t, 400, w.Code)
}

func TestListSubmissions_FilterByType(t *testing.T) {
	st, _ := newCtlTestStore(t)
	ctx := context.Background()
	st.AddSubmission(ctx, model.FormSubmission{Type: model.SubmissionLeader, Name: "A"})
	st.AddSubmission(ctx, model.FormSubmission{Type: model.SubmissionGeneral, Name: "B"})

	r := setupSubmissionRouter(st)
	token := adminToken(t)

	w := doJSON(r, "GET", "/api/admin/submissions", token, nil)
	assert.Equal(t, 200, w.Code)
	assert.Len(t, decodeEnvelope(t, w)["data"].([]interface{}), 2)

	w = doJSON(r, "GET", "/api/admin/submissions?type=leader_registration", token, nil)
	items := decodeEnvelope(t, w)["data"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, "A", items[0].(map[string]interface{})["name"])
}

func TestUpdateSubmissionStatus(t *testing.T) {
	st, _ := newCtlTestStore(t)
	saved, _ := st.AddSubmission(context.Background(), model.FormSubmission{
		Type: model.SubmissionGeneral,
		Name: "Anh Tu",
	})

	r := setupSubmissionRouter(st)
	token := adminToken(t)

	w := doJSON(r, "PUT", "/api/admin/submissions/"+saved.ID+"/status", token, gin.H{"status": "read"})
	assert.Equal(t, 200, w.Code)

	subs := st.Submissions()
	assert.Equal(t, model.SubmissionRead, subs[0].Status)

	// 非法状态
	w = doJSON(r, "PUT", "/api/admin/submissions/"+saved.ID+"/status", token, gin.H{"status": "xong"})
	assert.Equal(t, 400, w.Code)

	// 不存在的记录
	w = doJSON(r, "PUT", "/api/admin/submissions/khong-co/status", token, gin.H{"status": "read"})
	assert.Equal(t, 404, w.Code)
}

func TestExportSubmissions_CSVAttachment(t *testing.T) {
	st, _ := newCtlTestStore(t)
	st.AddSubmission(context.Background(), model.FormSubmission{
		Type: model.SubmissionLeader,
		Name: "Chị Hoa",
	})

	r := setupSubmissionRouter(st)
	w := doJSON(r, "GET", "/api/admin/submissions/export", adminToken(t), nil)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "submissions_export_")

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	assert.Equal(t, "Date,Type,Name,Email,Phone,Status", lines[0])
	assert.Len(t, lines, 2)
}

package controller

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"mctt_cms_v1/internal/store"
)

// RealtimeController 变更事件推送。后台编辑页面用 SSE 订阅，
// 任何一端保存后其他端立即刷新，不用轮询。
type RealtimeController struct {
	bus *store.Bus
}

func NewRealtimeController(bus *store.Bus) *RealtimeController {
	return &RealtimeController{bus: bus}
}

// Events 变更事件流
// @Summary 订阅内容变更事件（SSE）
// @Tags Realtime
// @Security BearerAuth
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/admin/events [get]
func (ctrl *RealtimeController) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch, cancel := ctrl.bus.Attach()
	defer cancel()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		}
	})
}

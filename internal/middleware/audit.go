package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 管理操作审计 ====================

// AuditLog 管理端操作审计中间件。
// 记录谁在什么时候改了什么：只记写操作（GET 不记），
// 内容表没有 created_by 列，审计落应用日志而非数据库。
func AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		email := GetEmail(c)
		if email == "" {
			email = "-"
		}
		log.Printf("[audit] %s %s %s status=%d cost=%v",
			email, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 限流中间件 ====================

// FormThrottle 公开表单防刷中间件，按客户端 IP 冷却。
// 正常用户一次提交一条，间隔内的重复请求直接拒绝。
func FormThrottle(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "form:" + c.ClientIP()

		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": int(result.RetryAfter.Seconds()),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RetryThrottle 手动补写触发的全局冷却。
// 后台定时任务每分钟扫一轮，手动触发只是提前一步，不需要更密。
func RetryThrottle(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := GetLimiter().Check("sync:retry", interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": int(result.RetryAfter.Seconds()),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 60 {
		return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("操作过于频繁，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("操作过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JEEVAA0107/attendance-sub001/pkg/redis"
	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// RateLimit 基于 Redis 的固定窗口限流中间件
// Redis 不可用时放行（限流降级，不影响业务）
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())

		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// 限流失败不阻断请求
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10006, "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}

		c.Next()
	}
}

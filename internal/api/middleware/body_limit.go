package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 超出 maxBytes 的请求在读取 Body 时会被 http.MaxBytesReader 截断
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}

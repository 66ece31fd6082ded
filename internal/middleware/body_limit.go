package middleware

import (
	"net/http"
	"pixel-gallery-server/internal/config"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制请求体大小
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Server.BodyLimitMB
		if maxSizeMB <= 0 {
			// 如果未设置或为0，默认 12MB（需容纳图片上传）
			maxSizeMB = 12
		}

		// 限制大小 (MB -> Bytes)
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		// 使用 MaxBytesReader 限制读取的字节数
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}

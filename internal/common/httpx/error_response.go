package httpx

import (
	"net/http"
	"pixel-gallery-server/internal/common"

	"github.com/gin-gonic/gin"
)

// 统一的 API 错误响应体：
// 4xx 客户端错误为 {"status":"fail","message":...}
// 5xx 服务端错误为 {"status":"error","message":...}

// Fail 写入 4xx 客户端错误响应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "fail", "message": message})
}

// Error 写入 5xx 服务端错误响应
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "message": message})
}

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			Error(c, status, serviceErr.Message)
			return
		}
		Fail(c, status, serviceErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, fallbackMessage)
}

func serviceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden:
		return http.StatusForbidden
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package router

import (
	"pixel-gallery-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	api.POST("/auth/register", authLimiter, handler.Register)
	api.POST("/auth/login", authLimiter, handler.Login)

	// 注销需要已认证身份，由网关保证
	api.POST("/auth/logout", handler.Logout)
}

package router

import (
	"pixel-gallery-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")
	// 应用请求体大小限制中间件
	api.Use(middleware.BodyLimitMiddleware())
	// 认证网关：公开路径在网关内部放行
	api.Use(middleware.AuthGate())

	// 认证限流：在多个域路由中复用同一个实例，保持行为一致
	authLimiter := middleware.AuthRateLimitMiddleware()

	registerPublicRoutes(api)
	registerAuthRoutes(api, authLimiter)
	registerUserRoutes(api)
	registerPhotoRoutes(api)
}

package router

import (
	"pixel-gallery-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup) {
	userGroup := api.Group("/user")

	userGroup.GET("/profile", handler.GetProfile)
	userGroup.PATCH("/password", handler.UpdatePassword)
}

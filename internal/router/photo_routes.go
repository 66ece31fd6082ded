package router

import (
	"pixel-gallery-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerPhotoRoutes(api *gin.RouterGroup) {
	photoGroup := api.Group("/photos")

	photoGroup.GET("", handler.ListPhotos)
	photoGroup.POST("/store", handler.StorePhoto)
	photoGroup.GET("/chart", handler.GetPhotoChart)
	photoGroup.GET("/:id", handler.GetPhoto)
	photoGroup.POST("/:id/update", handler.UpdatePhoto)
	photoGroup.POST("/:id/update-image", handler.UpdatePhotoImage)
	photoGroup.GET("/:id/delete", handler.DeletePhoto)
}

package handler

import (
	"net/http"
	"pixel-gallery-server/internal/common/httpx"
	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/model"
	"pixel-gallery-server/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// photoResponse 序列化单张照片。
// image_url 只在文件名已回填且文件仍在磁盘上时给出，
// 文件被带外删除的照片按"无图"处理而不是报错。
func photoResponse(photo *model.Photo) gin.H {
	resp := gin.H{
		"id":          photo.ID,
		"user_id":     photo.UserID,
		"title":       photo.Title,
		"category":    photo.Category,
		"description": photo.Description,
		"price":       photo.Price,
		"filename":    photo.Filename,
		"created_at":  photo.CreatedAt,
		"updated_at":  photo.UpdatedAt,
	}
	if photo.Filename != nil && service.FileExists(*photo.Filename) {
		prefix := config.Get().Upload.URLPrefix
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		resp["image_url"] = prefix + *photo.Filename
	}
	return resp
}

// parsePhotoForm 解析 multipart 表单中的元数据字段
func parsePhotoForm(c *gin.Context) (service.PhotoForm, bool) {
	priceStr := strings.TrimSpace(c.PostForm("price"))
	if priceStr == "" {
		httpx.Fail(c, http.StatusBadRequest, "价格不能为空")
		return service.PhotoForm{}, false
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "价格格式错误")
		return service.PhotoForm{}, false
	}

	return service.PhotoForm{
		Title:       c.PostForm("title"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
		Price:       price,
	}, true
}

func parsePhotoID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpx.Fail(c, http.StatusNotFound, "照片不存在")
		return uuid.Nil, false
	}
	return id, true
}

// ListPhotos 列出当前用户的全部照片
func ListPhotos(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	photos, err := service.ListUserPhotos(user.ID)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "获取照片列表失败")
		return
	}

	list := make([]gin.H, 0, len(photos))
	for i := range photos {
		list = append(list, photoResponse(&photos[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"list":  list,
		"total": len(list),
	})
}

// StorePhoto 创建照片（multipart: title, category, description, price, file）
func StorePhoto(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	form, ok := parsePhotoForm(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "请选择要上传的图片")
		return
	}

	photo, err := service.ProcessPhotoCreate(user.ID, form, file)
	if err != nil {
		httpx.WriteServiceError(c, err, "保存照片失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "照片保存成功",
		"photo":   photoResponse(photo),
	})
}

// GetPhoto 查看单张照片，仅限本人
func GetPhoto(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	id, ok := parsePhotoID(c)
	if !ok {
		return
	}

	photo := service.GetUserOwnedPhoto(id, user.ID)
	if photo == nil {
		httpx.Fail(c, http.StatusNotFound, "照片不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo": photoResponse(photo)})
}

// UpdatePhoto 更新照片元数据，不触碰图片文件
func UpdatePhoto(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	id, ok := parsePhotoID(c)
	if !ok {
		return
	}

	photo := service.GetUserOwnedPhoto(id, user.ID)
	if photo == nil {
		httpx.Fail(c, http.StatusNotFound, "照片不存在")
		return
	}

	form, ok := parsePhotoForm(c)
	if !ok {
		return
	}
	if strings.TrimSpace(form.Title) == "" {
		httpx.Fail(c, http.StatusBadRequest, "标题不能为空")
		return
	}
	if strings.TrimSpace(form.Category) == "" {
		httpx.Fail(c, http.StatusBadRequest, "分类不能为空")
		return
	}
	if form.Price.IsNegative() {
		httpx.Fail(c, http.StatusBadRequest, "价格不能为负数")
		return
	}

	updated := service.UpdatePhotoData(id, strings.TrimSpace(form.Title), strings.TrimSpace(form.Category), form.Description, form.Price)
	if updated == nil {
		httpx.Fail(c, http.StatusNotFound, "照片不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "照片信息已更新",
		"photo":   photoResponse(updated),
	})
}

// UpdatePhotoImage 替换照片图片（multipart: file）
func UpdatePhotoImage(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	id, ok := parsePhotoID(c)
	if !ok {
		return
	}

	photo := service.GetUserOwnedPhoto(id, user.ID)
	if photo == nil {
		httpx.Fail(c, http.StatusNotFound, "照片不存在")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "请选择要上传的图片")
		return
	}

	if _, err := service.ProcessPhotoReplaceImage(photo, file); err != nil {
		httpx.WriteServiceError(c, err, "替换图片失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "图片已替换",
		"photo":   photoResponse(photo),
	})
}

// DeletePhoto 删除照片及其图片文件，重复删除不报错
func DeletePhoto(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	id, ok := parsePhotoID(c)
	if !ok {
		return
	}

	if err := service.ProcessPhotoDelete(id, user.ID); err != nil {
		httpx.WriteServiceError(c, err, "删除失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// GetPhotoChart 当前用户各分类的照片数量
func GetPhotoChart(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	counts, err := service.CountPhotosByCategory(user.ID)
	if err != nil {
		httpx.Error(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": counts})
}

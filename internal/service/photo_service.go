package service

import (
	"errors"
	"log"
	"pixel-gallery-server/internal/db"
	"pixel-gallery-server/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 照片元数据的持久化，所有列表/聚合查询都按归属用户过滤。

// ListUserPhotos 列出某用户的全部照片，按创建时间倒序
func ListUserPhotos(userID uuid.UUID) ([]model.Photo, error) {
	var photos []model.Photo
	err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// GetPhotoByID 按 ID 查找照片，不存在返回 nil
func GetPhotoByID(id uuid.UUID) *model.Photo {
	var photo model.Photo
	err := db.DB.First(&photo, "id = ?", id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Get photo by id error: %v\n", err)
		}
		return nil
	}
	return &photo
}

// GetUserOwnedPhoto 按 ID 查找照片并校验归属，不存在或非本人返回 nil
func GetUserOwnedPhoto(id, userID uuid.UUID) *model.Photo {
	photo := GetPhotoByID(id)
	if photo == nil || photo.UserID != userID {
		return nil
	}
	return photo
}

// CreatePhotoRecord 创建照片记录，ID 与时间戳由服务端分配
func CreatePhotoRecord(photo *model.Photo) error {
	return db.DB.Create(photo).Error
}

// UpdatePhotoData 更新照片元数据（标题、分类、描述、价格）。
// 不触碰 filename；记录不存在时返回 nil。
func UpdatePhotoData(id uuid.UUID, title, category, description string, price decimal.Decimal) *model.Photo {
	photo := GetPhotoByID(id)
	if photo == nil {
		return nil
	}

	err := db.DB.Model(photo).Updates(map[string]interface{}{
		"title":       title,
		"category":    category,
		"description": description,
		"price":       price,
	}).Error
	if err != nil {
		log.Printf("Update photo data error: %v\n", err)
		return nil
	}
	return photo
}

// UpdatePhotoFilename 只更新照片的存储文件名，记录不存在时为空操作
func UpdatePhotoFilename(id uuid.UUID, filename string) error {
	return db.DB.Model(&model.Photo{}).Where("id = ?", id).Update("filename", filename).Error
}

// DeletePhotoRecord 删除照片记录
func DeletePhotoRecord(id uuid.UUID) error {
	return db.DB.Delete(&model.Photo{}, "id = ?", id).Error
}

// CountPhotosByCategory 统计某用户各分类的照片数量。
// 只统计该用户的照片，每个出现过的分类一条结果。
func CountPhotosByCategory(userID uuid.UUID) (map[string]int64, error) {
	type categoryCount struct {
		Category string
		Count    int64
	}

	var rows []categoryCount
	err := db.DB.Model(&model.Photo{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Category] = row.Count
	}
	return result, nil
}

package service

import (
	"errors"
	"log"
	"pixel-gallery-server/internal/db"
	"pixel-gallery-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 已签发凭证的持久化：登录时写入，网关逐请求查询，注销/改密时批量吊销。

// CreateAuthToken 持久化一条新签发的凭证记录
func CreateAuthToken(userID uuid.UUID, token string) (*model.AuthToken, error) {
	record := model.AuthToken{
		UserID: userID,
		Token:  token,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindUserToken 按 (用户 ID, 凭证串) 精确匹配查找。
// 任一字段不匹配都返回 nil；同一凭证串属于其他用户时不得命中。
func FindUserToken(userID uuid.UUID, token string) *model.AuthToken {
	var record model.AuthToken
	err := db.DB.Where("user_id = ? AND token = ?", userID, token).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Find user token error: %v\n", err)
		}
		return nil
	}
	return &record
}

// RevokeAllTokens 吊销某用户的全部凭证。
// 没有任何记录时也是成功（幂等）。
func RevokeAllTokens(userID uuid.UUID) error {
	return db.DB.Where("user_id = ?", userID).Delete(&model.AuthToken{}).Error
}

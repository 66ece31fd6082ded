package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthToken 一条已签发的登录凭证记录。
// 创建后不再修改，只会在注销或改密时被批量删除。
type AuthToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Token     string    `json:"token" gorm:"size:512;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *AuthToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package service

import (
	"errors"
	"log"
	"pixel-gallery-server/internal/common"
	"pixel-gallery-server/internal/db"
	"pixel-gallery-server/internal/model"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser 创建用户。
// 邮箱统一小写存储，重复邮箱（不区分大小写）返回冲突错误。
func CreateUser(name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, common.NewValidationError("昵称、邮箱和密码均不能为空")
	}

	if existing := GetUserByEmail(email); existing != nil {
		return nil, common.NewConflictError("该邮箱已被注册")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("密码处理失败")
	}

	user := model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Create user error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}
	return &user, nil
}

// GetUserByID 按 ID 查找用户，不存在返回 nil
func GetUserByID(id uuid.UUID) *model.User {
	var user model.User
	err := db.DB.First(&user, "id = ?", id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Get user by id error: %v\n", err)
		}
		return nil
	}
	return &user
}

// GetUserByEmail 按邮箱查找用户（不区分大小写），不存在返回 nil
func GetUserByEmail(email string) *model.User {
	var user model.User
	err := db.DB.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Get user by email error: %v\n", err)
		}
		return nil
	}
	return &user
}

// UpdateUserPassword 修改密码。
// 校验旧密码后写入新哈希，并吊销该用户的全部凭证，所有会话需重新登录。
func UpdateUserPassword(user *model.User, oldPassword, newPassword string) error {
	if newPassword == "" {
		return common.NewValidationError("新密码不能为空")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return common.NewUnauthorizedError("旧密码错误")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewInternalError("密码处理失败")
	}

	if err := db.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		log.Printf("Update password error: %v\n", err)
		return common.NewInternalError("修改密码失败，请稍后重试")
	}

	if err := RevokeAllTokens(user.ID); err != nil {
		log.Printf("Revoke tokens after password change error: %v\n", err)
	}
	return nil
}

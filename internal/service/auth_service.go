package service

import (
	"log"
	"pixel-gallery-server/internal/common"
	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/model"
	"pixel-gallery-server/internal/utils"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser 注册新用户
func RegisterUser(name, email, password string) (*model.User, error) {
	return CreateUser(name, email, password)
}

// LoginUser 校验邮箱密码，签发并持久化登录凭证，返回凭证串
func LoginUser(email, password string) (string, error) {
	user := GetUserByEmail(email)
	if user == nil {
		return "", common.NewUnauthorizedError("邮箱或密码错误")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", common.NewUnauthorizedError("邮箱或密码错误")
	}

	cfg := config.Get()
	token, err := utils.GenerateAuthToken(
		[]byte(cfg.JWT.Secret),
		user.ID,
		time.Hour*time.Duration(cfg.JWT.ExpirationHours),
	)
	if err != nil {
		log.Printf("Generate auth token error: %v\n", err)
		return "", common.NewInternalError("登录失败，请稍后重试")
	}

	// 凭证必须同时存在于数据库中才会被网关放行，
	// 这样注销/改密可以即时吊销仍在有效期内的凭证。
	if _, err := CreateAuthToken(user.ID, token); err != nil {
		log.Printf("Persist auth token error: %v\n", err)
		return "", common.NewInternalError("登录失败，请稍后重试")
	}

	return token, nil
}

// LogoutUser 吊销该用户的全部凭证
func LogoutUser(userID uuid.UUID) error {
	if err := RevokeAllTokens(userID); err != nil {
		log.Printf("Revoke tokens on logout error: %v\n", err)
		return common.NewInternalError("注销失败，请稍后重试")
	}
	return nil
}

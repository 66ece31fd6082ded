package utils

import (
	"fmt"
	"pixel-gallery-server/internal/consts"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 登录凭证的生成与校验。
// 签名密钥由调用方显式传入，便于测试时使用固定密钥与固定时钟。

// AuthClaims 登录凭证携带的声明，subject 为用户 ID
type AuthClaims struct {
	Type string `json:"type"` // "login"
	jwt.RegisteredClaims
}

func GenerateAuthToken(secret []byte, userID uuid.UUID, duration time.Duration) (string, error) {
	claims := AuthClaims{
		Type: "login",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    consts.TokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken 校验凭证签名与结构。
// allowExpired 为 false 时，过期的凭证同样视为无效。
func ValidateToken(secret []byte, tokenString string, allowExpired bool) bool {
	_, err := parseAuthClaims(secret, tokenString, allowExpired)
	return err == nil
}

// ExtractUserID 从凭证中提取用户 ID。
// 只要求签名与结构合法，不检查过期时间；解析失败时返回 false。
func ExtractUserID(secret []byte, tokenString string) (uuid.UUID, bool) {
	claims, err := parseAuthClaims(secret, tokenString, true)
	if err != nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func parseAuthClaims(secret []byte, tokenString string, allowExpired bool) (*AuthClaims, error) {
	var opts []jwt.ParserOption
	if allowExpired {
		// 仍然校验签名，只跳过 exp 等时间声明的检查
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		if claims.Type != "login" {
			return nil, jwt.ErrTokenInvalidClaims
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

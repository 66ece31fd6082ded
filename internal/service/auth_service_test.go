package service

import (
	"testing"

	"pixel-gallery-server/internal/common"
	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/utils"
)

// 测试内容：验证登录签发的凭证可解析出用户 ID，且在数据库中有对应记录。
func TestLoginUser_Success(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterUser("小王", "wang@example.com", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	token, err := LoginUser("wang@example.com", "secret123")
	if err != nil {
		t.Fatalf("LoginUser error: %v", err)
	}
	if token == "" {
		t.Fatalf("期望返回非空凭证")
	}

	userID, ok := utils.ExtractUserID([]byte(config.Get().JWT.Secret), token)
	if !ok || userID != user.ID {
		t.Fatalf("凭证载荷不匹配: ok=%v id=%s", ok, userID)
	}
	if FindUserToken(user.ID, token) == nil {
		t.Fatalf("期望凭证已持久化")
	}
}

// 测试内容：验证邮箱不存在与密码错误返回同样措辞的未授权错误。
func TestLoginUser_BadCredentials(t *testing.T) {
	setupTestDB(t)

	if _, err := RegisterUser("小王", "wang@example.com", "secret123"); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	for _, c := range []struct{ email, password string }{
		{"nobody@example.com", "secret123"},
		{"wang@example.com", "wrong-password"},
	} {
		_, err := LoginUser(c.email, c.password)
		serviceErr, ok := common.AsServiceError(err)
		if !ok || serviceErr.Code != common.ErrorCodeUnauthorized {
			t.Fatalf("期望未授权错误，实际 %v", err)
		}
		if serviceErr.Message != "邮箱或密码错误" {
			t.Fatalf("两种失败应返回同样措辞，实际 %q", serviceErr.Message)
		}
	}
}

// 测试内容：验证邮箱登录不区分大小写。
func TestLoginUser_EmailCaseInsensitive(t *testing.T) {
	setupTestDB(t)

	if _, err := RegisterUser("小王", "Wang@Example.com", "secret123"); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	if _, err := LoginUser("WANG@example.COM", "secret123"); err != nil {
		t.Fatalf("期望大小写不同的邮箱也能登录: %v", err)
	}
}

// 测试内容：验证注销吊销该用户全部凭证，之后旧凭证查不到。
func TestLogoutUser(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterUser("小王", "wang@example.com", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	token1, err := LoginUser("wang@example.com", "secret123")
	if err != nil {
		t.Fatalf("LoginUser error: %v", err)
	}
	token2, err := LoginUser("wang@example.com", "secret123")
	if err != nil {
		t.Fatalf("LoginUser error: %v", err)
	}

	if err := LogoutUser(user.ID); err != nil {
		t.Fatalf("LogoutUser error: %v", err)
	}
	if FindUserToken(user.ID, token1) != nil || FindUserToken(user.ID, token2) != nil {
		t.Fatalf("注销后凭证应全部吊销")
	}
}

package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证注册参数校验与重复邮箱冲突。
func TestRegister_Validation(t *testing.T) {
	r := setupServer(t)

	// 缺字段
	w := doJSON(r, "POST", "/api/auth/register", "", gin.H{"name": "小王"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d: %s", w.Code, w.Body.String())
	}
	// 邮箱格式非法
	w = doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name": "小王", "email": "not-an-email", "password": "pw",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d: %s", w.Code, w.Body.String())
	}

	// 正常注册后，重复邮箱（大小写不同）返回冲突
	w = doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name": "小王", "email": "wang@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("注册失败 %d: %s", w.Code, w.Body.String())
	}
	// 响应不得携带密码哈希
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("注册响应不应包含密码字段: %s", w.Body.String())
	}

	w = doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name": "小李", "email": "WANG@Example.com", "password": "pw123456",
	})
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "该邮箱已被注册") {
		t.Fatalf("期望 409 邮箱冲突，实际 %d: %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证密码错误时登录返回 401 且措辞不泄露邮箱是否存在。
func TestLogin_WrongPassword(t *testing.T) {
	r := setupServer(t)
	registerAndLoginHTTP(t, r, "小王", "wang@example.com", "secret123")

	w := doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email": "wang@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "邮箱或密码错误") {
		t.Fatalf("期望 401，实际 %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "邮箱或密码错误") {
		t.Fatalf("期望 401，实际 %d: %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证注销后旧凭证立即失效。
func TestLogout_RevokesToken(t *testing.T) {
	r := setupServer(t)
	token := registerAndLoginHTTP(t, r, "小王", "wang@example.com", "secret123")

	// 注销前能访问受保护接口
	if w := doJSON(r, "GET", "/api/user/profile", token, nil); w.Code != http.StatusOK {
		t.Fatalf("期望 profile 可访问，实际 %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "POST", "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("注销失败 %d: %s", w.Code, w.Body.String())
	}

	// Token 本身没过期，但服务端记录已删
	w := doJSON(r, "GET", "/api/user/profile", token, nil)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "凭证已失效") {
		t.Fatalf("期望 401 凭证已失效，实际 %d: %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证改密流程吊销旧凭证，新密码可重新登录。
func TestUpdatePassword_Flow(t *testing.T) {
	r := setupServer(t)
	token := registerAndLoginHTTP(t, r, "小王", "wang@example.com", "old-pass")

	// 旧密码错误
	w := doJSON(r, "PATCH", "/api/user/password", token, gin.H{
		"old_password": "wrong", "new_password": "new-pass",
	})
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "旧密码错误") {
		t.Fatalf("期望 401 旧密码错误，实际 %d: %s", w.Code, w.Body.String())
	}

	// 改密成功
	w = doJSON(r, "PATCH", "/api/user/password", token, gin.H{
		"old_password": "old-pass", "new_password": "new-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("改密失败 %d: %s", w.Code, w.Body.String())
	}

	// 旧凭证已被吊销
	if w := doJSON(r, "GET", "/api/user/profile", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望旧凭证失效，实际 %d", w.Code)
	}
	// 旧密码登录失败，新密码成功
	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email": "wang@example.com", "password": "old-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望旧密码登录失败，实际 %d", w.Code)
	}
	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email": "wang@example.com", "password": "new-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望新密码登录成功，实际 %d: %s", w.Code, w.Body.String())
	}
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/router"
	"pixel-gallery-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// setupServer 构建完整路由的测试服务：
// 独立数据库、临时上传目录、关闭限流避免干扰用例。
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	saved := []testutils.SavedEnv{
		testutils.SetEnv("PIXEL_GALLERY_RATE_LIMIT_ENABLED", "false"),
	}
	t.Cleanup(func() { testutils.RestoreEnv(saved) })

	config.InitConfig("")
	testutils.SetupDB(t)

	tmp := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取工作目录失败: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	router.InitRouter(r)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart 发送带文件的表单请求；file 为 nil 时不附带文件字段
func doMultipart(r *gin.Engine, method, path, token string, fields map[string]string, filename string, file []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	if file != nil {
		part, _ := writer.CreateFormFile("file", filename)
		_, _ = part.Write(file)
	}
	_ = writer.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是合法 JSON: %v, body=%s", err, w.Body.String())
	}
	return body
}

// registerAndLoginHTTP 通过真实接口完成注册与登录，返回凭证
func registerAndLoginHTTP(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()

	w := doJSON(r, "POST", "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	if w.Code != 200 {
		t.Fatalf("注册失败 %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, "POST", "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	if w.Code != 200 {
		t.Fatalf("登录失败 %d: %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("登录响应缺少 token: %s", w.Body.String())
	}
	return token
}

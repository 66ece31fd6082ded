package router

import (
	"testing"

	"pixel-gallery-server/internal/config"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证路由表包含全部对外接口。
func TestInitRouter_RegistersRoutes(t *testing.T) {
	config.InitConfig("")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	InitRouter(r)

	want := []struct{ method, path string }{
		{"GET", "/api/ping"},
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"POST", "/api/auth/logout"},
		{"GET", "/api/user/profile"},
		{"PATCH", "/api/user/password"},
		{"GET", "/api/photos"},
		{"POST", "/api/photos/store"},
		{"GET", "/api/photos/chart"},
		{"GET", "/api/photos/:id"},
		{"POST", "/api/photos/:id/update"},
		{"POST", "/api/photos/:id/update-image"},
		{"GET", "/api/photos/:id/delete"},
	}

	routes := r.Routes()
	has := func(method, path string) bool {
		for _, route := range routes {
			if route.Method == method && route.Path == path {
				return true
			}
		}
		return false
	}
	for _, w := range want {
		if !has(w.method, w.path) {
			t.Errorf("路由缺失: %s %s", w.method, w.path)
		}
	}
}

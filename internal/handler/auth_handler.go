package handler

import (
	"net/http"
	"pixel-gallery-server/internal/common/httpx"
	"pixel-gallery-server/internal/service"

	"github.com/gin-gonic/gin"
)

func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	user, err := service.RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "注册成功",
		"user":    user,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	token, err := service.LoginUser(req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "登录成功",
	})
}

// Logout 注销当前用户的全部凭证
func Logout(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	if err := service.LogoutUser(user.ID); err != nil {
		httpx.WriteServiceError(c, err, "注销失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "注销成功"})
}

package handler

import (
	"net/http"
	"pixel-gallery-server/internal/common/httpx"
	"pixel-gallery-server/internal/service"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdatePassword 修改密码，成功后所有会话的凭证都会被吊销
func UpdatePassword(c *gin.Context) {
	user := authUser(c)
	if user == nil {
		httpx.Fail(c, http.StatusUnauthorized, "未获取到用户信息")
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	if err := service.UpdateUserPassword(user, req.OldPassword, req.NewPassword); err != nil {
		httpx.WriteServiceError(c, err, "修改密码失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "密码修改成功，请重新登录"})
}

package handler

import (
	"pixel-gallery-server/internal/consts"
	"pixel-gallery-server/internal/model"

	"github.com/gin-gonic/gin"
)

// authUser 读取认证网关写入的当前用户，未通过网关时返回 nil
func authUser(c *gin.Context) *model.User {
	value, exists := c.Get(consts.CtxKeyAuthUser)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

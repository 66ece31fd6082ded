package middleware

import (
	"net/http"
	"pixel-gallery-server/internal/common/httpx"
	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/consts"
	"pixel-gallery-server/internal/service"
	"pixel-gallery-server/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthGate 认证网关。
// 每个请求按固定顺序检查：公开路径放行 → Bearer 头格式 →
// 签名与有效期 → 提取 subject → 凭证记录查询 → 用户查询，
// 每一级失败都有独立的状态码与提示语，便于区分失败原因。
// 通过后把当前用户写入本次请求的上下文，后续处理器只读。
func AuthGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Get()

		// 1. 公开路径直接放行
		path := c.Request.URL.Path
		for _, prefix := range cfg.Auth.PublicPrefixes {
			if prefix != "" && strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// 2. 提取 Bearer 凭证
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.Fail(c, http.StatusUnauthorized, "需要认证才能访问")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			httpx.Fail(c, http.StatusUnauthorized, "需要认证才能访问")
			c.Abort()
			return
		}
		tokenString := parts[1]
		secret := []byte(cfg.JWT.Secret)

		// 3. 校验签名与有效期
		if !utils.ValidateToken(secret, tokenString, false) {
			httpx.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		// 4. 提取 subject
		// 签名通过但载荷缺少可用的用户标识时单独报告，
		// 与上一步区分开，避免把结构问题误报成签名问题。
		userID, ok := utils.ExtractUserID(secret, tokenString)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "Token 载荷不完整")
			c.Abort()
			return
		}

		// 5. 服务端凭证记录必须存在。
		// Token 自身未过期但已被注销/改密吊销时在这里拦下。
		if service.FindUserToken(userID, tokenString) == nil {
			httpx.Fail(c, http.StatusUnauthorized, "凭证已失效，请重新登录")
			c.Abort()
			return
		}

		// 6. 用户必须仍然存在（凭证指向已删除账号的情况）
		user := service.GetUserByID(userID)
		if user == nil {
			httpx.Fail(c, http.StatusNotFound, "用户不存在")
			c.Abort()
			return
		}

		// 7. 填充本次请求的认证上下文
		c.Set(consts.CtxKeyUserID, user.ID)
		c.Set(consts.CtxKeyAuthUser, user)
		c.Next()
	}
}

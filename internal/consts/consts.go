package consts

const (
	ApplicationName    = "Pixel Gallery Server"
	ApplicationVersion = "v1.0.0"
)

// TokenIssuer JWT 的签发者标识
const TokenIssuer = "pixel-gallery-server"

// gin 上下文键：由认证网关写入，处理器读取
const (
	// CtxKeyUserID 当前登录用户 ID (uuid.UUID)
	CtxKeyUserID = "auth_user_id"

	// CtxKeyAuthUser 当前登录用户 (*model.User)
	CtxKeyAuthUser = "auth_user"
)

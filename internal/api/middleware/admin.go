package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/api/response"
	"github.com/leon37/BloggerHub/internal/model"
)

// AdminOnly 管理员门禁，必须挂在 JWTAuth 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserType) != model.UserTypeAdmin {
			response.AbortError(c, apperr.Forbidden("NOT_AN_ADMIN"))
			return
		}
		c.Next()
	}
}

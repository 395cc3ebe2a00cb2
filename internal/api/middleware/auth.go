package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/api/response"
	"github.com/leon37/BloggerHub/internal/repository"
	"github.com/spf13/viper"
)

// Context keys，下游 handler 用这两个 key 拿调用者身份
const (
	CtxUserID   = "userID"
	CtxUserType = "userType"
)

// JWTAuth 身份提取中间件
// 任何不合规的 Authorization 头一律 401，不允许静默放行
func JWTAuth(userRepo repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, apperr.Unauthorized("AUTH_MISSING"))
			return
		}

		// 格式必须是 "Bearer <token>"，scheme 大小写不敏感
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.AbortError(c, apperr.Unauthorized("AUTH_INVALID"))
			return
		}

		tokenString := parts[1]
		secret := viper.GetString("jwt.secret")

		// 解析 Token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			response.AbortError(c, apperr.Unauthorized("AUTH_INVALID"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortError(c, apperr.Unauthorized("AUTH_INVALID"))
			return
		}
		userID, ok := claims["id"].(string)
		if !ok {
			response.AbortError(c, apperr.Unauthorized("AUTH_INVALID"))
			return
		}

		// 拿角色要查库：Token 里只存 id，角色以库里当前值为准
		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.AbortError(c, apperr.Unauthorized("AUTH_INVALID"))
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserType, user.Type)
		c.Next()
	}
}

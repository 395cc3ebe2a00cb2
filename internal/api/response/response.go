package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/apperr"
)

// JSON 成功响应，body 直接是数据本身（不包信封）
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent 204 成功响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// OK 200 空响应
func OK(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Error 统一错误出口：业务错误翻译成状态码 + 稳定错误码
// 没分类的错误一律 500，不往外漏内部细节
func Error(c *gin.Context, err error) {
	if e, ok := apperr.From(err); ok {
		c.JSON(statusOf(e.Kind), gin.H{"code": e.Code})
		return
	}

	slog.Error("Unclassified error", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_SERVER_ERROR"})
}

// AbortError 中间件版本的 Error，终止后续 handler
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

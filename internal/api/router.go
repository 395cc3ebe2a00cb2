package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/api/controller"
	"github.com/leon37/BloggerHub/internal/api/middleware"
	"github.com/leon37/BloggerHub/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leon37/BloggerHub/docs"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, userRepo repository.UserRepo, userCtrl *controller.UserController, postCtrl *controller.PostController) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuth(userRepo)

	users := r.Group("/api/v1/users")
	{
		users.POST("/register", userCtrl.Register)
		users.POST("/login", userCtrl.Login)
		users.GET("", auth, userCtrl.List)
		users.POST("", auth, middleware.AdminOnly(), userCtrl.CreateUser)
		users.GET("/home", auth, userCtrl.Home)
	}

	posts := r.Group("/posts")
	posts.Use(auth)
	{
		posts.GET("", postCtrl.ListPublic)
		posts.GET("/blogger", postCtrl.ListMine)
		posts.POST("/blogger/newPost", postCtrl.Create)
		posts.PUT("/blogger/editPost/:id", postCtrl.Update)
		posts.DELETE("/blogger/deletePost/:id", postCtrl.Delete)
		posts.PUT("/blogger/publishPost/:id", postCtrl.Publish)
		posts.PUT("/blogger/hidePost/:id", postCtrl.Hide)
	}

	// 没匹配上的路由统一 404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND"})
	})
}

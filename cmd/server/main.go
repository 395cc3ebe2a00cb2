package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/api"
	"github.com/leon37/BloggerHub/internal/api/controller"
	"github.com/leon37/BloggerHub/internal/api/middleware"
	"github.com/leon37/BloggerHub/internal/config"
	"github.com/leon37/BloggerHub/internal/infrastructure/database"
	"github.com/leon37/BloggerHub/internal/repository"
	"github.com/leon37/BloggerHub/internal/service"
)

// @title           BloggerHub API
// @version         1.0
// @description     基于 Go + Gin + GORM 的博客平台后端

// @contact.name    API Support

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 请在输入框中输入 "Bearer <token>" (注意 Bearer 和 token 之间有空格)

func main() {
	// 1. 初始化 Logger
	// 使用 JSONHandler 可以让日志以 JSON 格式输出，方便解析
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))

	// 设置为全局默认 logger
	slog.SetDefault(logger)

	slog.Info("BloggerHub 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	db := database.NewMySQLConnection(conf.Database.DSN) // 这里会自动建表

	if conf.Server.Port != ":8080" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo)

	userController := controller.NewUserController(authSvc, userSvc)
	postController := controller.NewPostController(postSvc)

	// 4. Server Start
	r := gin.Default()
	r.Use(middleware.Cors())
	api.RegisterRoutes(r, userRepo, userController, postController)

	slog.Info("BloggerHub Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}

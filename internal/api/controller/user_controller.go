package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/api/middleware"
	"github.com/leon37/BloggerHub/internal/api/response"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/model"
	"github.com/leon37/BloggerHub/internal/service"
)

// UserController 处理用户注册、登录和用户列表
type UserController struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewUserController 构造函数
func NewUserController(authService *service.AuthService, userService *service.UserService) *UserController {
	return &UserController{
		authService: authService,
		userService: userService,
	}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type CreateUserRequest struct {
	Type     string `json:"type" binding:"required,oneof=ADMIN BLOGGER"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// UserView 列表投影，非管理员看不到 id
type UserView struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ==========================================
// Handlers
// ==========================================

// Register 用户注册
// @Summary 用户注册
// @Description 创建 BLOGGER 账号，密码加密存储
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册参数"
// @Success 204 "注册成功"
// @Failure 400 {object} map[string]string "NAME_ALREADY_USED / EMAIL_ALREADY_USED"
// @Router /api/v1/users/register [post]
func (ctrl *UserController) Register(c *gin.Context) {
	var req RegisterRequest

	// 1. 参数校验
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Register params invalid", "err", err)
		response.Error(c, apperr.BadRequest("INVALID_REQUEST_BODY"))
		return
	}

	// 2. 业务逻辑
	if err := ctrl.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		slog.Warn("Register failed", "email", req.Email, "err", err)
		response.Error(c, err)
		return
	}

	// 3. 成功响应
	slog.Info("User registered", "email", req.Email)
	response.NoContent(c)
}

// CreateUser 管理员建号
// @Summary 管理员创建用户
// @Description 创建任意角色的账号，仅限 ADMIN
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "建号参数"
// @Success 204 "创建成功"
// @Failure 403 {object} map[string]string "NOT_AN_ADMIN"
// @Router /api/v1/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("CreateUser params invalid", "err", err)
		response.Error(c, apperr.BadRequest("INVALID_REQUEST_BODY"))
		return
	}

	if err := ctrl.authService.CreateByAdmin(c.Request.Context(), req.Type, req.Name, req.Email, req.Password); err != nil {
		slog.Warn("CreateUser failed", "email", req.Email, "err", err)
		response.Error(c, err)
		return
	}

	slog.Info("User created by admin", "email", req.Email, "type", req.Type)
	response.NoContent(c)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验账号密码，颁发 JWT Token（30 天有效）
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录参数"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} map[string]string "EMAIL_OR_PASSWORD_INCORRECT"
// @Router /api/v1/users/login [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		// 格式不对也按登录失败处理，错误码保持统一
		response.Error(c, apperr.Unauthorized("EMAIL_OR_PASSWORD_INCORRECT"))
		return
	}

	token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// 为了防止暴力破解，提示信息模糊化
		slog.Warn("Login failed", "email", req.Email)
		response.Error(c, err)
		return
	}

	slog.Info("User logged in", "email", req.Email)
	response.JSON(c, LoginResponse{Token: token})
}

// List 用户列表
// @Summary 用户列表
// @Description ADMIN 返回 {id,name,email} 全量；其他角色返回 {name,email} 且不含管理员账号
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserView
// @Router /api/v1/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	callerType := c.GetString(middleware.CtxUserType)

	users, err := ctrl.userService.List(c.Request.Context(), callerType)
	if err != nil {
		response.Error(c, err)
		return
	}

	isAdmin := callerType == model.UserTypeAdmin
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		v := UserView{Name: u.Name, Email: u.Email}
		if isAdmin {
			v.ID = u.ID
		}
		views = append(views, v)
	}
	response.JSON(c, views)
}

// Home 登录后的欢迎页
// @Summary 欢迎页
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/v1/users/home [get]
func (ctrl *UserController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome on home page"})
}

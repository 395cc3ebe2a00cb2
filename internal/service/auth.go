package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/model"
	"github.com/leon37/BloggerHub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepo
}

func NewAuthService(userRepo repository.UserRepo) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册逻辑，角色强制为 BLOGGER
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	return s.createUser(ctx, model.UserTypeBlogger, name, email, password)
}

// CreateByAdmin 管理员建号，可以指定任意角色（包括 ADMIN）
// 权限校验在 AdminOnly 中间件里完成，这里不再重复
func (s *AuthService) CreateByAdmin(ctx context.Context, userType, name, email, password string) error {
	return s.createUser(ctx, userType, name, email, password)
}

func (s *AuthService) createUser(ctx context.Context, userType, name, email, password string) error {
	// 1. 唯一性检查：name 和 email 都不能撞车
	// 同一条请求两个都撞时先报 name（和线上行为保持一致）
	similar, err := s.userRepo.GetByNameOrEmail(ctx, name, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if similar != nil {
		if similar.Name == name {
			return apperr.BadRequest("NAME_ALREADY_USED")
		}
		return apperr.BadRequest("EMAIL_ALREADY_USED")
	}

	// 2. 密码加密，明文绝不落库
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 3. 落库
	id, _ := uuid.NewV7()
	user := &model.User{
		ID:           id.String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Type:         userType,
	}
	return s.userRepo.Create(ctx, user)
}

// Login 登录逻辑，返回 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	// 1. 查用户
	// 邮箱不存在和密码错误返回同一个错误码，防止撞库探测
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperr.Unauthorized("EMAIL_OR_PASSWORD_INCORRECT")
	}

	// 2. 比对密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("EMAIL_OR_PASSWORD_INCORRECT")
	}

	// 3. 生成 JWT
	return s.generateToken(user.ID)
}

func (s *AuthService) generateToken(userID string) (string, error) {
	secret := viper.GetString("jwt.secret")
	expireHours := viper.GetInt("jwt.expire_hours")

	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour * time.Duration(expireHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

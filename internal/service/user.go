package service

import (
	"context"

	"github.com/leon37/BloggerHub/internal/model"
	"github.com/leon37/BloggerHub/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 按调用者角色返回用户列表
// ADMIN 看到所有人，非 ADMIN 看不到管理员账号（投影裁剪在 controller 做）
func (s *UserService) List(ctx context.Context, callerType string) ([]model.User, error) {
	excludeAdmin := callerType != model.UserTypeAdmin
	return s.userRepo.List(ctx, excludeAdmin)
}

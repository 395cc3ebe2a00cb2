package repository

import (
	"context"

	"github.com/leon37/BloggerHub/internal/model"
	"gorm.io/gorm"
)

// UserRepo 定义接口 (为了以后方便 Mock)
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByNameOrEmail 返回第一个 name 或 email 撞车的用户，没有则返回 gorm.ErrRecordNotFound
	GetByNameOrEmail(ctx context.Context, name, email string) (*model.User, error)
	// List excludeAdmin 为 true 时过滤掉 ADMIN 账号
	List(ctx context.Context, excludeAdmin bool) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 构造函数
func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	// 查找 Email，如果没找到返回 gorm.ErrRecordNotFound
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByNameOrEmail(ctx context.Context, name, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("name = ? OR email = ?", name, email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, excludeAdmin bool) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx)
	if excludeAdmin {
		q = q.Where("type <> ?", model.UserTypeAdmin)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

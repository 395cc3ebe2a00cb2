package repository

import (
	"context"

	"github.com/leon37/BloggerHub/internal/model"
	"gorm.io/gorm"
)

// PostRepo 定义接口 (为了以后方便 Mock)
type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListPublic 只返回 is_hidden = false 的文章
	ListPublic(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo 构造函数
func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	// WithContext 确保请求超时能传递到数据库层
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) ListPublic(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).Where("is_hidden = ?", false).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) ListByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	// 物理删除，不做软删
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

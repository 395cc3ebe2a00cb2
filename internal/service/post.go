package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/model"
	"github.com/leon37/BloggerHub/internal/repository"
	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepo
}

// NewPostService 构造函数 (依赖注入)
func NewPostService(postRepo repository.PostRepo) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create 发布新文章
// 新文章默认公开 (is_hidden = false)，作者可以随后 hide
func (s *PostService) Create(ctx context.Context, authorID, title, content string) error {
	id, _ := uuid.NewV7()
	post := &model.Post{
		ID:       id.String(),
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		IsHidden: false,
	}
	return s.postRepo.Create(ctx, post)
}

// ListPublic 公开文章列表，任何持有效 Token 的人都能看
func (s *PostService) ListPublic(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.ListPublic(ctx)
}

// ListMine 作者自己的文章，不论是否隐藏
func (s *PostService) ListMine(ctx context.Context, authorID string) ([]model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

// Update 修改标题和正文 (带归属权校验)，is_hidden 不动
func (s *PostService) Update(ctx context.Context, callerID, postID, title, content string) error {
	post, err := s.loadOwned(ctx, callerID, postID, apperr.NotFound("THIS_POST_DOES_NOT_EXISTS"), "YOU_CAN'T_EDIT_THIS_POST")
	if err != nil {
		return err
	}

	post.Title = title
	post.Content = content
	return s.postRepo.Update(ctx, post)
}

// Delete 删除文章 (带归属权校验)
// 不存在时报 400，跟线上行为对齐
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	_, err := s.loadOwned(ctx, callerID, postID, apperr.BadRequest("THIS_POST_DOES_NOT_EXISTS"), "YOU_CAN'T_DELETE_THIS_POST")
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	slog.Info("Post deleted", "postID", postID, "authorID", callerID)
	return nil
}

// Publish 公开文章，重复 publish 会被拒绝而不是静默成功
func (s *PostService) Publish(ctx context.Context, callerID, postID string) error {
	post, err := s.loadOwned(ctx, callerID, postID, apperr.NotFound("THIS_POST_DOES_NOT_EXISTS"), "YOU_CAN'T_PUBLISH_THIS_POST")
	if err != nil {
		return err
	}

	if !post.IsHidden {
		return apperr.BadRequest("ALREADY_PUBLISHED")
	}

	post.IsHidden = false
	return s.postRepo.Update(ctx, post)
}

// Hide 隐藏文章，重复 hide 同样被拒绝
func (s *PostService) Hide(ctx context.Context, callerID, postID string) error {
	post, err := s.loadOwned(ctx, callerID, postID, apperr.NotFound("THIS_POST_DOES_NOT_EXISTS"), "YOU_CAN'T_HIDE_THIS_POST")
	if err != nil {
		return err
	}

	if post.IsHidden {
		return apperr.BadRequest("ALREADY_HIDDEN")
	}

	post.IsHidden = true
	return s.postRepo.Update(ctx, post)
}

// loadOwned 归属权校验的统一入口
// 🛡️ 安全核心：必须先判存在再比作者，顺序反了会把"文章不存在"误报成"无权操作"
func (s *PostService) loadOwned(ctx context.Context, callerID, postID string, missing *apperr.Error, forbiddenCode string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missing
		}
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, apperr.Forbidden(forbiddenCode)
	}
	return post, nil
}

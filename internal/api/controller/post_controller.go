package controller

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/leon37/BloggerHub/internal/api/middleware"
	"github.com/leon37/BloggerHub/internal/api/response"
	"github.com/leon37/BloggerHub/internal/apperr"
	"github.com/leon37/BloggerHub/internal/service"
)

type PostController struct {
	service *service.PostService // 依赖 Service
}

// NewPostController 构造函数
func NewPostController(s *service.PostService) *PostController {
	return &PostController{service: s}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

type PostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// PublicPostView 公开列表投影
type PublicPostView struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MyPostView 作者视角的投影，带可见性
type MyPostView struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsHidden bool   `json:"is_hidden"`
}

// ==========================================
// Handlers
// ==========================================

// Create 新建文章
// @Summary 新建文章
// @Description 以调用者为作者创建文章，默认公开
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "文章内容"
// @Success 204 "创建成功"
// @Router /posts/blogger/newPost [post]
func (ctrl *PostController) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Create post params invalid", "err", err)
		response.Error(c, apperr.BadRequest("INVALID_REQUEST_BODY"))
		return
	}

	callerID := c.GetString(middleware.CtxUserID)
	if err := ctrl.service.Create(c.Request.Context(), callerID, req.Title, req.Content); err != nil {
		slog.Error("Create post failed", "authorID", callerID, "err", err)
		response.Error(c, err)
		return
	}

	slog.Info("Post created", "authorID", callerID)
	response.NoContent(c)
}

// ListPublic 公开文章列表
// @Summary 公开文章列表
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PublicPostView
// @Router /posts [get]
func (ctrl *PostController) ListPublic(c *gin.Context) {
	posts, err := ctrl.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]PublicPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, PublicPostView{Title: p.Title, Content: p.Content})
	}
	response.JSON(c, views)
}

// ListMine 我的文章列表（含隐藏的）
// @Summary 我的文章列表
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} MyPostView
// @Router /posts/blogger [get]
func (ctrl *PostController) ListMine(c *gin.Context) {
	callerID := c.GetString(middleware.CtxUserID)

	posts, err := ctrl.service.ListMine(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]MyPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, MyPostView{Title: p.Title, Content: p.Content, IsHidden: p.IsHidden})
	}
	response.JSON(c, views)
}

// Update 修改文章
// @Summary 修改文章
// @Description 只有作者本人能改，只更新标题和正文
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章 ID"
// @Param request body PostRequest true "新的标题和正文"
// @Success 200 "修改成功"
// @Failure 403 {object} map[string]string "YOU_CAN'T_EDIT_THIS_POST"
// @Router /posts/blogger/editPost/{id} [put]
func (ctrl *PostController) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Update post params invalid", "err", err)
		response.Error(c, apperr.BadRequest("INVALID_REQUEST_BODY"))
		return
	}

	callerID := c.GetString(middleware.CtxUserID)
	postID := c.Param("id")
	if err := ctrl.service.Update(c.Request.Context(), callerID, postID, req.Title, req.Content); err != nil {
		slog.Warn("Update post failed", "postID", postID, "callerID", callerID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// Delete 删除文章
// @Summary 删除文章
// @Description 只有作者本人能删，物理删除
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章 ID"
// @Success 200 "删除成功"
// @Failure 400 {object} map[string]string "THIS_POST_DOES_NOT_EXISTS"
// @Router /posts/blogger/deletePost/{id} [delete]
func (ctrl *PostController) Delete(c *gin.Context) {
	callerID := c.GetString(middleware.CtxUserID)
	postID := c.Param("id")

	if err := ctrl.service.Delete(c.Request.Context(), callerID, postID); err != nil {
		slog.Warn("Delete post failed", "postID", postID, "callerID", callerID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// Publish 公开文章
// @Summary 公开文章
// @Description 已公开的文章再 publish 会报 ALREADY_PUBLISHED
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章 ID"
// @Success 200 "已公开"
// @Failure 400 {object} map[string]string "ALREADY_PUBLISHED"
// @Router /posts/blogger/publishPost/{id} [put]
func (ctrl *PostController) Publish(c *gin.Context) {
	callerID := c.GetString(middleware.CtxUserID)
	postID := c.Param("id")

	if err := ctrl.service.Publish(c.Request.Context(), callerID, postID); err != nil {
		slog.Warn("Publish post failed", "postID", postID, "callerID", callerID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// Hide 隐藏文章
// @Summary 隐藏文章
// @Description 已隐藏的文章再 hide 会报 ALREADY_HIDDEN
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章 ID"
// @Success 200 "已隐藏"
// @Failure 400 {object} map[string]string "ALREADY_HIDDEN"
// @Router /posts/blogger/hidePost/{id} [put]
func (ctrl *PostController) Hide(c *gin.Context) {
	callerID := c.GetString(middleware.CtxUserID)
	postID := c.Param("id")

	if err := ctrl.service.Hide(c.Request.Context(), callerID, postID); err != nil {
		slog.Warn("Hide post failed", "postID", postID, "callerID", callerID, "err", err)
		response.Error(c, err)
		return
	}

	response.OK(c)
}

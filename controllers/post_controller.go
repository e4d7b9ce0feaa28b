package controllers

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/cppla/threadbbs/middleware"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
)

// PostController manages post endpoints.
type PostController struct {
	posts *services.PostService
}

var postRulesOnce sync.Once

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService) *PostController {
	postRulesOnce.Do(func() {
		utils.RegisterStructValidation(validateCreatePost, createPostRequest{})
	})
	return &PostController{posts: posts}
}

type createPostRequest struct {
	Title   string  `json:"title" binding:"required,max=255"`
	Content *string `json:"content"`
	Link    *string `json:"link" binding:"omitempty,url"`
}

// validateCreatePost requires a non-blank content or link.
func validateCreatePost(sl validator.StructLevel) {
	req := sl.Current().Interface().(createPostRequest)
	if blank(req.Content) && blank(req.Link) {
		sl.ReportError(req.Content, "content", "Content", "required_without", "link")
	}
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// ListPosts returns all posts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.posts.ListAll(ctx.Request.Context())
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// GetPost returns a post with its flat comment list.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, err := p.posts.GetOne(ctx.Request.Context(), ctx.Param("postId"))
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, post)
}

// CreatePost creates a post authored by the caller.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Abort(ctx, utils.ValidationError(40020, err))
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), userID, services.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Link:    req.Link,
	})
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Created(ctx, post)
}

// DeletePost removes a post owned by the caller.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}
	if err := p.posts.Delete(ctx.Request.Context(), ctx.Param("postId"), userID); err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, utils.MessageResponse{Message: "post deleted"})
}

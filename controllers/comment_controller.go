package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/threadbbs/middleware"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
)

// CommentController serves the comments of a post.
type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// ListComments returns the reply forest of a post.
func (c *CommentController) ListComments(ctx *gin.Context) {
	tree, err := c.comments.ListByPost(ctx.Request.Context(), ctx.Param("postId"))
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, tree)
}

// CreateComment adds a comment or reply to a post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Abort(ctx, utils.ValidationError(40030, err))
		return
	}

	comment, err := c.comments.Create(ctx.Request.Context(), userID, ctx.Param("postId"), services.CreateCommentInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Created(ctx, comment)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
	"github.com/cppla/threadbbs/web"
)

// PageController renders the HTML front end.
type PageController struct {
	posts    *services.PostService
	comments *services.CommentService
	tpl      web.Templates
}

func NewPageController(posts *services.PostService, comments *services.CommentService, tpl web.Templates) *PageController {
	return &PageController{posts: posts, comments: comments, tpl: tpl}
}

func (p *PageController) render(ctx *gin.Context, status int, name string, data gin.H) {
	ctx.Status(status)
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	if err := p.tpl[name].ExecuteTemplate(ctx.Writer, "layout", data); err != nil {
		utils.Logger.Error("render page failed", zap.String("page", name), zap.Error(err))
	}
}

func (p *PageController) renderError(ctx *gin.Context, err error) {
	appErr := utils.AsAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
	}
	p.render(ctx, appErr.Status, "error", gin.H{
		"Title":   http.StatusText(appErr.Status),
		"Status":  appErr.Status,
		"Message": appErr.Message,
	})
}

// Home lists every post.
func (p *PageController) Home(ctx *gin.Context) {
	posts, err := p.posts.ListAll(ctx.Request.Context())
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	p.render(ctx, http.StatusOK, "home", gin.H{"Posts": posts})
}

// Post shows a post with its comment tree.
func (p *PageController) Post(ctx *gin.Context) {
	id := ctx.Param("id")
	post, err := p.posts.GetOne(ctx.Request.Context(), id)
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	tree, err := p.comments.ListByPost(ctx.Request.Context(), id)
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	p.render(ctx, http.StatusOK, "post", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"Comments": tree,
	})
}

func (p *PageController) Submit(ctx *gin.Context) {
	p.render(ctx, http.StatusOK, "submit", gin.H{"Title": "Submit"})
}

func (p *PageController) Login(ctx *gin.Context) {
	p.render(ctx, http.StatusOK, "login", gin.H{"Title": "Login"})
}

func (p *PageController) Register(ctx *gin.Context) {
	p.render(ctx, http.StatusOK, "register", gin.H{"Title": "Register"})
}

// NotFound renders the HTML 404 page.
func (p *PageController) NotFound(ctx *gin.Context) {
	p.renderError(ctx, utils.NotFound(40400, "page not found"))
}

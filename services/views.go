package services

import (
	"github.com/cppla/threadbbs/api"
	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

// Domain failures shared by the services. Each maps to one HTTP status.
var (
	ErrUserExists         = utils.Unauthorized(40107, "email or username already exists")
	ErrInvalidCredentials = utils.Unauthorized(40106, "invalid credentials")
	ErrNotPostAuthor      = utils.Unauthorized(40112, "you can only delete your own posts")
	ErrParentMismatch     = utils.Forbidden(40301, "parent comment does not belong to this post")
	ErrPostNotFound       = utils.NotFound(40401, "post not found")
	ErrParentNotFound     = utils.NotFound(40402, "parent comment not found")
	ErrUserNotFound       = utils.NotFound(40403, "user not found")
	ErrPasswordTooLong    = utils.Validation(40003, "validation failed", map[string]string{
		"password": "must be at most 72 bytes",
	})
)

// JSON views live in package api; the aliases keep service signatures short.
type (
	UserView      = api.UserView
	AuthResult    = api.AuthResult
	AuthorView    = api.AuthorView
	PostCounts    = api.PostCounts
	CommentCounts = api.CommentCounts
	PostView      = api.PostView
	PostDetail    = api.PostDetail
	CommentView   = api.CommentView
	CommentNode   = api.CommentNode
)

func toUserView(u models.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

func toAuthorView(u models.User, withEmail bool) AuthorView {
	a := AuthorView{ID: u.ID, Username: u.Username}
	if withEmail {
		a.Email = u.Email
	}
	return a
}

func toPostView(p models.Post, withEmail bool) PostView {
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Link:      p.Link,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    toAuthorView(p.Author, withEmail),
	}
}

func toCommentView(c models.Comment, withEmail bool) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    toAuthorView(c.Author, withEmail),
	}
}

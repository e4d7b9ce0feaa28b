// Package api defines the JSON bodies exchanged by the board's HTTP API.
// It has no dependencies so clients can import it without the server stack.
package api

import "time"

// UserView is the public projection of a user.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// AuthorView is the author summary embedded in posts and comments.
// Email is only filled in on create responses.
type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type PostCounts struct {
	Votes    int64 `json:"votes"`
	Comments int64 `json:"comments"`
}

type CommentCounts struct {
	Votes   int64 `json:"votes"`
	Replies int64 `json:"replies"`
}

type PostView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   *string    `json:"content"`
	Link      *string    `json:"link"`
	AuthorID  string     `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Author    AuthorView `json:"author"`
	Count     PostCounts `json:"_count"`
}

// PostDetail is a post together with its comments as a flat, newest-first list.
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

type CommentView struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	AuthorID  string        `json:"authorId"`
	PostID    string        `json:"postId"`
	ParentID  *string       `json:"parentId"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Author    AuthorView    `json:"author"`
	Count     CommentCounts `json:"_count"`
}

// CommentNode is a comment with its full reply subtree. Replies is never nil.
type CommentNode struct {
	CommentView
	Replies []*CommentNode `json:"replies"`
}

// Package client is a Go client for the threadbbs HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cppla/threadbbs/api"
)

const (
	dialTimeout = 10 * time.Second
	reqTimeout  = 30 * time.Second
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int               `json:"-"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for field, msg := range e.Errors {
		parts = append(parts, field+" "+msg)
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

// Client talks to one server. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	dialer := &net.Dialer{Timeout: dialTimeout}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{DialContext: dialer.DialContext},
			Timeout:   reqTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, email, username, password string) (*api.AuthResult, error) {
	var res api.AuthResult
	body := map[string]string{"email": email, "username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	var res api.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// Logout revokes the current token on the server and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Me(ctx context.Context) (*api.UserView, error) {
	var u api.UserView
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListPosts(ctx context.Context) ([]api.PostView, error) {
	var posts []api.PostView
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*api.PostDetail, error) {
	var p api.PostDetail
	if err := c.do(ctx, http.MethodGet, "/posts/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost submits a post. Empty content or link are omitted.
func (c *Client) CreatePost(ctx context.Context, title, content, link string) (*api.PostView, error) {
	body := map[string]string{"title": title}
	if content != "" {
		body["content"] = content
	}
	if link != "" {
		body["link"] = link
	}
	var p api.PostView
	if err := c.do(ctx, http.MethodPost, "/posts", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]*api.CommentNode, error) {
	var tree []*api.CommentNode
	if err := c.do(ctx, http.MethodGet, "/posts/"+postID+"/comments", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// AddComment comments on a post, replying to parentID when it is not empty.
func (c *Client) AddComment(ctx context.Context, postID, content, parentID string) (*api.CommentView, error) {
	body := map[string]string{"content": content}
	if parentID != "" {
		body["parentId"] = parentID
	}
	var cv api.CommentView
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/comments", body, &cv); err != nil {
		return nil, err
	}
	return &cv, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

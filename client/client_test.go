package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/threadbbs/client"
	"github.com/cppla/threadbbs/config"
	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/routes"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.AppConfig{
		GinMode:     "test",
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "client.db") + "?_pragma=busy_timeout(5000)",
		LogLevel:    "silent",
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	require.NoError(t, err)
	tokens := utils.NewTokenManager("client-secret", time.Hour)
	r, err := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		DB:       db,
		Tokens:   tokens,
		Auth:     services.NewAuthService(db, tokens, nil),
		Posts:    services.NewPostService(db),
		Comments: services.NewCommentService(db, 4),
	})
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := client.New(srv.URL)

	reg, err := c.Register(ctx, "zoe@example.com", "zoe", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.Token, c.Token())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "zoe", me.Username)

	post, err := c.CreatePost(ctx, "From the client", "", "https://example.com/x")
	require.NoError(t, err)
	assert.Nil(t, post.Content)

	root, err := c.AddComment(ctx, post.ID, "root", "")
	require.NoError(t, err)
	_, err = c.AddComment(ctx, post.ID, "child", root.ID)
	require.NoError(t, err)

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.EqualValues(t, 2, posts[0].Count.Comments)

	detail, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 2)

	tree, err := c.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "child", tree[0].Replies[0].Content)

	require.NoError(t, c.DeletePost(ctx, post.ID))
	_, err = c.GetPost(ctx, post.ID)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "post not found", apiErr.Message)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())
}

func TestClientErrors(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := client.New(srv.URL)

	_, err := c.CreatePost(ctx, "no auth", "body", "")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Login(ctx, "nobody@example.com", "pw")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid credentials", apiErr.Message)

	_, err = c.Register(ctx, "ann@example.com", "ann", "pw")
	require.NoError(t, err)
	_, err = c.CreatePost(ctx, "empty", "", "")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Errors, "content")
	assert.Contains(t, apiErr.Error(), "content is required when link is empty")
}

func TestCredentialStore(t *testing.T) {
	store := client.CredentialStore{Path: filepath.Join(t.TempDir(), "nested", "credentials.json")}

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc.def.ghi"}`, string(raw))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

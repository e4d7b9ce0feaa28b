package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"regexp"
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

type harness struct {
	t     *testing.T
	url   string
	creds string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := config.AppConfig{
		GinMode:     "test",
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(dir, "cli.db") + "?_pragma=busy_timeout(5000)",
		LogLevel:    "silent",
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	require.NoError(t, err)
	tokens := utils.NewTokenManager("cli-secret", time.Hour)
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
	t.Cleanup(srv.Close)
	return &harness{t: t, url: srv.URL, creds: filepath.Join(dir, "credentials.json")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", h.url, "--credentials", h.creds}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

var idPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func TestCLIFlow(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("posts", "create", "--title", "x", "--content", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	out := h.mustRun("register", "--email", "kim@example.com", "--username", "kim", "--password", "pw")
	assert.Contains(t, out, "registered as kim")

	token, err := client.CredentialStore{Path: h.creds}.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	out = h.mustRun("posts", "create", "--title", "CLI post", "--content", "hello from the terminal")
	postID := idPattern.FindString(out)
	require.NotEmpty(t, postID, out)

	out = h.mustRun("comments", "add", postID, "top comment")
	rootID := idPattern.FindString(out)
	require.NotEmpty(t, rootID, out)
	h.mustRun("comments", "add", postID, "nested reply", "--parent", rootID)

	out = h.mustRun("posts", "list")
	assert.Contains(t, out, "CLI post")
	assert.Contains(t, out, "kim")

	out = h.mustRun("posts", "show", postID)
	assert.Contains(t, out, "hello from the terminal")
	assert.Regexp(t, `(?s)top comment.*\n    nested reply`, out)

	out = h.mustRun("comments", "list", postID)
	assert.Contains(t, out, "nested reply")

	h.mustRun("posts", "delete", postID)
	out = h.mustRun("posts", "list")
	assert.Contains(t, out, "no posts yet")

	h.mustRun("logout")
	token, err = client.CredentialStore{Path: h.creds}.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = h.run("login", "--email", "kim@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	out = h.mustRun("login", "--email", "kim@example.com", "--password", "pw")
	assert.Contains(t, out, "logged in as kim")
}

func TestRenderTreeOrder(t *testing.T) {
	leaf := &services.CommentNode{Replies: []*services.CommentNode{}}
	leaf.Content = "c"
	leaf.Author.Username = "u3"
	mid := &services.CommentNode{Replies: []*services.CommentNode{leaf}}
	mid.Content = "b"
	mid.Author.Username = "u2"
	other := &services.CommentNode{Replies: []*services.CommentNode{}}
	other.Content = "d"
	other.Author.Username = "u4"
	root := &services.CommentNode{Replies: []*services.CommentNode{mid}}
	root.Content = "a"
	root.Author.Username = "u1"

	var buf bytes.Buffer
	renderTree(&buf, []*services.CommentNode{root, other})
	assert.Regexp(t, `(?s)^u1.*\n  a\n  u2.*\n    b\n    u3.*\n      c\nu4.*\n  d\n$`, buf.String())
}

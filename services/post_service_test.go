package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/threadbbs/models"
)

func TestCreatePost(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := seedUser(t, db, "alice")

	t.Run("content only", func(t *testing.T) {
		p, err := svc.Create(ctx, u.ID, CreatePostInput{Title: "Hello", Content: strPtr("first post")})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Hello", p.Title)
		require.NotNil(t, p.Content)
		assert.Equal(t, "first post", *p.Content)
		assert.Nil(t, p.Link)
		assert.Equal(t, u.ID, p.AuthorID)
		assert.Equal(t, AuthorView{ID: u.ID, Username: "alice", Email: "alice@example.com"}, p.Author)
		assert.Equal(t, PostCounts{}, p.Count)
	})

	t.Run("link only", func(t *testing.T) {
		p, err := svc.Create(ctx, u.ID, CreatePostInput{Title: "A link", Link: strPtr("https://go.dev")})
		require.NoError(t, err)
		assert.Nil(t, p.Content)
		require.NotNil(t, p.Link)
		assert.Equal(t, "https://go.dev", *p.Link)
	})

	t.Run("neither content nor link", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, CreatePostInput{Title: "Empty", Content: strPtr("   ")})
		assert.ErrorIs(t, err, ErrPostEmpty)
	})

	t.Run("text is stored as submitted", func(t *testing.T) {
		p, err := svc.Create(ctx, u.ID, CreatePostInput{
			Title:   "Tom & Jerry",
			Content: strPtr("if a < b && c > d"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Tom & Jerry", p.Title)
		assert.Equal(t, "if a < b && c > d", *p.Content)

		got, err := svc.GetOne(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tom & Jerry", got.Title)
		assert.Equal(t, "if a < b && c > d", *got.Content)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, CreatePostInput{Title: "  ", Content: strPtr("x")})
		assert.ErrorIs(t, err, ErrTitleEmpty)
	})
}

func TestListAllNewestFirstWithCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := seedUser(t, db, "alice")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	older := seedPost(t, db, u.ID, "older", base)
	newer := seedPost(t, db, u.ID, "newer", base.Add(time.Minute))
	seedComment(t, db, u.ID, older.ID, nil, "c1", base.Add(2*time.Minute))
	seedComment(t, db, u.ID, older.ID, nil, "c2", base.Add(3*time.Minute))
	require.NoError(t, db.Create(&models.Vote{UserID: u.ID, PostID: &older.ID, Value: 1}).Error)

	posts, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	assert.Equal(t, PostCounts{}, posts[0].Count)
	assert.Equal(t, PostCounts{Votes: 1, Comments: 2}, posts[1].Count)
	assert.Equal(t, "alice", posts[1].Author.Username)
	assert.Empty(t, posts[1].Author.Email)
}

func TestListAllEmpty(t *testing.T) {
	svc := NewPostService(newTestDB(t))
	posts, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestGetOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := seedUser(t, db, "alice")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := seedPost(t, db, u.ID, "post", base)

	root := seedComment(t, db, u.ID, p.ID, nil, "root", base.Add(time.Minute))
	reply := seedComment(t, db, u.ID, p.ID, &root.ID, "reply", base.Add(2*time.Minute))

	detail, err := svc.GetOne(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.ID)
	assert.Equal(t, PostCounts{Comments: 2}, detail.Count)

	// flat, newest first, replies included
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, reply.ID, detail.Comments[0].ID)
	assert.Equal(t, root.ID, detail.Comments[1].ID)
	require.NotNil(t, detail.Comments[0].ParentID)
	assert.Equal(t, root.ID, *detail.Comments[0].ParentID)
	assert.Equal(t, CommentCounts{Replies: 1}, detail.Comments[1].Count)
}

func TestGetOneWithoutComments(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, "post", time.Now())

	detail, err := svc.GetOne(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Comments)
	assert.Empty(t, detail.Comments)
}

func TestGetOneMissing(t *testing.T) {
	svc := NewPostService(newTestDB(t))
	_, err := svc.GetOne(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	now := time.Now()

	p := seedPost(t, db, owner.ID, "doomed", now)
	keep := seedPost(t, db, owner.ID, "kept", now)
	c := seedComment(t, db, other.ID, p.ID, nil, "c", now)
	seedComment(t, db, other.ID, p.ID, &c.ID, "r", now)
	kc := seedComment(t, db, other.ID, keep.ID, nil, "k", now)
	require.NoError(t, db.Create(&models.Vote{UserID: other.ID, PostID: &p.ID}).Error)
	require.NoError(t, db.Create(&models.Vote{UserID: other.ID, CommentID: &c.ID}).Error)
	require.NoError(t, db.Create(&models.Vote{UserID: other.ID, CommentID: &kc.ID}).Error)

	t.Run("non owner", func(t *testing.T) {
		err := svc.Delete(ctx, p.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotPostAuthor)
		var n int64
		require.NoError(t, db.Model(&models.Post{}).Where("id = ?", p.ID).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, "nope", owner.ID), ErrPostNotFound)
	})

	t.Run("owner removes post comments and votes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, p.ID, owner.ID))

		var n int64
		require.NoError(t, db.Model(&models.Post{}).Where("id = ?", p.ID).Count(&n).Error)
		assert.Zero(t, n)
		require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", p.ID).Count(&n).Error)
		assert.Zero(t, n)
		require.NoError(t, db.Model(&models.Vote{}).Count(&n).Error)
		assert.EqualValues(t, 1, n, "only the vote on the other post's comment survives")

		_, err := svc.GetOne(ctx, p.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)

		_, err = svc.GetOne(ctx, keep.ID)
		assert.NoError(t, err)
	})
}

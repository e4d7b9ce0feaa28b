package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/threadbbs/config"
	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)",
		LogLevel:    "silent",
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTokens() *utils.TokenManager {
	return utils.NewTokenManager("test-secret", time.Hour)
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Email: name + "@example.com", Username: name, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, authorID, title string, at time.Time) models.Post {
	t.Helper()
	body := "body of " + title
	p := models.Post{Title: title, Content: &body, AuthorID: authorID, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedComment(t *testing.T, db *gorm.DB, authorID, postID string, parentID *string, content string, at time.Time) models.Comment {
	t.Helper()
	c := models.Comment{Content: content, AuthorID: authorID, PostID: postID, ParentID: parentID, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func strPtr(s string) *string { return &s }

var ctx = context.Background()

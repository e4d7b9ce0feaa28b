package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote targets either a post or a comment. Only aggregate counts are exposed.
type Vote struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Value     int     `gorm:"not null;default:1"`
	UserID    string  `gorm:"size:36;index;not null"`
	PostID    *string `gorm:"size:36;index"`
	CommentID *string `gorm:"size:36;index"`
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Comment{}, &Vote{}}
}

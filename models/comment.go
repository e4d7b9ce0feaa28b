package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a reply to a post, or to another comment when ParentID is set.
type Comment struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Content   string  `gorm:"type:text;not null"`
	AuthorID  string  `gorm:"size:36;index;not null"`
	PostID    string  `gorm:"size:36;index:idx_comments_post_parent;not null"`
	ParentID  *string `gorm:"size:36;index:idx_comments_post_parent;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Replies   []Comment `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Votes     []Vote    `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

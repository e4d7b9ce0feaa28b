package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a submission: a title plus optional text and/or link.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"size:255;not null"`
	Content   *string   `gorm:"type:text"`
	Link      *string   `gorm:"size:2048"`
	AuthorID  string    `gorm:"size:36;index;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Votes     []Vote    `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

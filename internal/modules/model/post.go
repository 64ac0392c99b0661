package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry written by an admin.
type Post struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Slug        string     `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Post <-> User
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"author,omitempty"`
}

func (Post) TableName() string { return "posts" }

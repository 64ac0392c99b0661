package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an admin account. The marketplace has no consumer accounts; all
// browsing endpoints are anonymous.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string    `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordPHC string    `gorm:"column:password_phc;type:text;not null" json:"-"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User <-> Post
	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }

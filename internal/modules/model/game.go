package model

import "time"

const (
	GameStatusDraft     = "draft"
	GameStatusPublished = "published"
)

// Game is one catalog entry. The numeric id is load-bearing: thumbnail asset
// names embed it and the resolver's modulo fallback indexes by it.
type Game struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string `gorm:"type:text;not null" json:"title"`
	Slug         string `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	Instructions string `gorm:"type:text" json:"instructions"`
	CategoryID   *int64 `gorm:"index" json:"category_id"`

	// DirectoryToken names the extracted package directory under the games
	// root; EntryFile is the HTML file to load, relative to that directory.
	DirectoryToken string `gorm:"type:text;not null" json:"directory_token"`
	EntryFile      string `gorm:"type:text;not null" json:"entry_file"`
	// Thumbnail is the asset filename the resolver starts from. May be stale
	// for historical records; the resolver's cascade covers that.
	Thumbnail string `gorm:"type:text" json:"thumbnail"`

	Status   string `gorm:"type:text;not null;default:draft;index" json:"status"`
	Featured bool   `gorm:"not null;default:false;index" json:"featured"`

	PlayCount     int64 `gorm:"not null;default:0" json:"play_count"`
	FavoriteCount int64 `gorm:"not null;default:0" json:"favorite_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Game <-> Category
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"category,omitempty"`
}

func (Game) TableName() string { return "games" }

func (g *Game) Published() bool { return g.Status == GameStatusPublished }

package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlayEvent is one recorded game start. Rows arrive through the play-event
// queue consumer, not directly from request handlers.
type PlayEvent struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID int64 `gorm:"not null;index" json:"game_id"`

	// Context carries optional request metadata captured at the HTTP edge,
	// e.g. user agent and referrer.
	Context datatypes.JSONMap `gorm:"type:jsonb" json:"context,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// PlayEvent <-> Game
	Game *Game `gorm:"foreignKey:GameID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (PlayEvent) TableName() string { return "play_events" }

// Favorite marks a game as favorited by an anonymous client, keyed by the
// opaque client id the frontend stores locally.
type Favorite struct {
	GameID    int64  `gorm:"primaryKey" json:"game_id"`
	ClientKey string `gorm:"type:text;primaryKey" json:"client_key"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Favorite <-> Game
	Game *Game `gorm:"foreignKey:GameID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Favorite) TableName() string { return "favorites" }

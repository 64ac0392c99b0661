package model

import "time"

const (
	ChallengeStatusUpcoming = "upcoming"
	ChallengeStatusActive   = "active"
	ChallengeStatusEnded    = "ended"
)

// Challenge is a time-boxed competition on one game. Status is derived from
// the window at read time; nothing sweeps it in the background.
type Challenge struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID   int64  `gorm:"not null;index" json:"game_id"`
	Title    string `gorm:"type:text;not null" json:"title"`
	Rules    string `gorm:"type:text" json:"rules"`
	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Challenge <-> Game
	Game *Game `gorm:"foreignKey:GameID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"game,omitempty"`

	// Challenge <-> ChallengeScore
	Scores []ChallengeScore `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Challenge) TableName() string { return "challenges" }

// StatusAt derives the challenge status from its window.
func (c *Challenge) StatusAt(now time.Time) string {
	switch {
	case now.Before(c.StartsAt):
		return ChallengeStatusUpcoming
	case now.After(c.EndsAt):
		return ChallengeStatusEnded
	default:
		return ChallengeStatusActive
	}
}

type ChallengeScore struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID int64  `gorm:"not null;index" json:"challenge_id"`
	PlayerName  string `gorm:"type:text;not null" json:"player_name"`
	Score       int64  `gorm:"not null" json:"score"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// ChallengeScore <-> Challenge
	Challenge *Challenge `gorm:"foreignKey:ChallengeID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ChallengeScore) TableName() string { return "challenge_scores" }

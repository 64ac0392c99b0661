package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
)

const defaultLeaderboardSize = 10

type ChallengeService interface {
	Create(ctx context.Context, c *model.Challenge) error
	Update(ctx context.Context, c *model.Challenge) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Challenge, error)
	List(ctx context.Context, limit int) ([]model.Challenge, error)
	ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error)
	SubmitScore(ctx context.Context, in SubmitScoreInput) (*model.ChallengeScore, error)
	Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error)
}

type challengeService struct {
	r     repo.ChallengeRepo
	games repo.GameRepo
	now   func() time.Time
}

func NewChallengeService(r repo.ChallengeRepo, games repo.GameRepo) ChallengeService {
	return &challengeService{r: r, games: games, now: time.Now}
}

func (s *challengeService) Create(ctx context.Context, c *model.Challenge) error {
	if !c.EndsAt.After(c.StartsAt) {
		return errors.New("challenge window must end after it starts")
	}
	if _, err := s.games.GetByID(ctx, c.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.r.Create(ctx, c)
}

func (s *challengeService) Update(ctx context.Context, c *model.Challenge) error {
	existing, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	startsAt := existing.StartsAt
	if !c.StartsAt.IsZero() {
		startsAt = c.StartsAt
	}
	endsAt := existing.EndsAt
	if !c.EndsAt.IsZero() {
		endsAt = c.EndsAt
	}
	if !endsAt.After(startsAt) {
		return errors.New("challenge window must end after it starts")
	}
	return s.r.Update(ctx, c)
}

func (s *challengeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *challengeService) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	challenge, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (s *challengeService) List(ctx context.Context, limit int) ([]model.Challenge, error) {
	return s.r.List(ctx, limit)
}

func (s *challengeService) ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error) {
	return s.r.ListByGame(ctx, gameID)
}

type SubmitScoreInput struct {
	ChallengeID int64  `json:"challenge_id"`
	PlayerName  string `json:"player_name"`
	Score       int64  `json:"score"`
}

// SubmitScore records a score only while the challenge window is open. Status
// is derived from the window at submission time, so a challenge needs no
// background transition to close.
func (s *challengeService) SubmitScore(ctx context.Context, in SubmitScoreInput) (*model.ChallengeScore, error) {
	challenge, err := s.GetByID(ctx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge.StatusAt(s.now()) != model.ChallengeStatusActive {
		return nil, ErrChallengeClosed
	}

	score := &model.ChallengeScore{
		ChallengeID: in.ChallengeID,
		PlayerName:  in.PlayerName,
		Score:       in.Score,
	}
	if err := s.r.CreateScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *challengeService) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error) {
	if _, err := s.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardSize
	}
	return s.r.Leaderboard(ctx, challengeID, limit)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/config"
	mq "github.com/arcadehq/arcade/internal/infra/queue"
	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
)

// PlayRoutingKey routes play events from the HTTP layer to the analytics
// consumer.
const PlayRoutingKey = "game.play.recorded"

// PlayRecorded is the queue payload for one game start.
type PlayRecorded struct {
	GameID     int64          `json:"game_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Context    map[string]any `json:"context,omitempty"`
}

type RecordPlayInput struct {
	GameID int64
	// Context is optional request metadata (user agent, referrer) carried
	// through the queue onto the stored event.
	Context map[string]any
}

type AnalyticsService interface {
	RecordPlay(ctx context.Context, in RecordPlayInput) error
	HandlePlayRecorded(ctx context.Context, body []byte) error
	ToggleFavorite(ctx context.Context, in ToggleFavoriteInput) (*ToggleFavoriteOutput, error)
	GameStats(ctx context.Context, gameID int64) (*GameStats, error)
}

type analyticsService struct {
	r         repo.AnalyticsRepo
	games     repo.GameRepo
	publisher *mq.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewAnalyticsService(r repo.AnalyticsRepo, games repo.GameRepo, publisher *mq.Publisher, cfg *config.Config, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		r:         r,
		games:     games,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// RecordPlay acknowledges the play immediately and defers persistence to the
// queue consumer, keeping the hot play endpoint off the database write path.
func (s *analyticsService) RecordPlay(ctx context.Context, in RecordPlayInput) error {
	if _, err := s.games.GetByID(ctx, in.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	event := PlayRecorded{GameID: in.GameID, OccurredAt: time.Now(), Context: in.Context}
	if s.publisher != nil {
		return s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.Exchange, PlayRoutingKey, event)
	}

	// No broker configured; fall back to synchronous persistence.
	return s.persistPlay(ctx, event)
}

// HandlePlayRecorded is the consumer-side handler for play events.
func (s *analyticsService) HandlePlayRecorded(ctx context.Context, body []byte) error {
	var event PlayRecorded
	if err := sonic.Unmarshal(body, &event); err != nil {
		// A payload that cannot parse will never parse; drop it rather than
		// requeue forever.
		s.log.Error("dropping malformed play event", zap.Error(err))
		return nil
	}
	if event.GameID <= 0 {
		s.log.Warn("dropping play event without game id")
		return nil
	}
	return s.persistPlay(ctx, event)
}

func (s *analyticsService) persistPlay(ctx context.Context, event PlayRecorded) error {
	row := &model.PlayEvent{GameID: event.GameID}
	if !event.OccurredAt.IsZero() {
		row.CreatedAt = event.OccurredAt
	}
	if len(event.Context) > 0 {
		row.Context = datatypes.JSONMap(event.Context)
	}
	if err := s.r.CreatePlayEvent(ctx, row); err != nil {
		return err
	}
	return s.games.IncrementPlayCount(ctx, event.GameID, 1)
}

type ToggleFavoriteInput struct {
	GameID    int64  `json:"game_id"`
	ClientKey string `json:"client_key"`
}

type ToggleFavoriteOutput struct {
	Favorited     bool  `json:"favorited"`
	FavoriteCount int64 `json:"favorite_count"`
}

// ToggleFavorite flips the favorite state for one anonymous client and keeps
// the denormalized counter on the game row in step.
func (s *analyticsService) ToggleFavorite(ctx context.Context, in ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	if _, err := s.games.GetByID(ctx, in.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	deleted, err := s.r.DeleteFavorite(ctx, in.GameID, in.ClientKey)
	if err != nil {
		return nil, err
	}

	out := &ToggleFavoriteOutput{}
	if deleted {
		if err := s.games.IncrementFavoriteCount(ctx, in.GameID, -1); err != nil {
			return nil, err
		}
	} else {
		created, err := s.r.CreateFavorite(ctx, &model.Favorite{GameID: in.GameID, ClientKey: in.ClientKey})
		if err != nil {
			return nil, err
		}
		if created {
			if err := s.games.IncrementFavoriteCount(ctx, in.GameID, 1); err != nil {
				return nil, err
			}
		}
		out.Favorited = true
	}

	count, err := s.r.CountFavorites(ctx, in.GameID)
	if err != nil {
		return nil, err
	}
	out.FavoriteCount = count
	return out, nil
}

type GameStats struct {
	GameID        int64 `json:"game_id"`
	PlayCount     int64 `json:"play_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

func (s *analyticsService) GameStats(ctx context.Context, gameID int64) (*GameStats, error) {
	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	plays, err := s.r.CountPlays(ctx, gameID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.r.CountFavorites(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &GameStats{GameID: gameID, PlayCount: plays, FavoriteCount: favorites}, nil
}

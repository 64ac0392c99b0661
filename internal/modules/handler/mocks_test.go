package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/service"
)

// MockGameService is a mock implementation of service.GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) Create(ctx context.Context, in service.CreateGameInput) (*model.Game, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameService) Update(ctx context.Context, in service.UpdateGameInput) (*model.Game, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameService) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameService) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameService) List(ctx context.Context, in service.ListGamesInput) (*service.ListGamesOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListGamesOutput), args.Error(1)
}

func (m *MockGameService) TopPlayed(ctx context.Context, limit int) ([]model.Game, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Game), args.Error(1)
}

func (m *MockGameService) SetStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockGameService) SetFeatured(ctx context.Context, id int64, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

// MockChallengeService is a mock implementation of service.ChallengeService
type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) Create(ctx context.Context, c *model.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeService) Update(ctx context.Context, c *model.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallengeService) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeService) List(ctx context.Context, limit int) ([]model.Challenge, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Challenge), args.Error(1)
}

func (m *MockChallengeService) ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Challenge), args.Error(1)
}

func (m *MockChallengeService) SubmitScore(ctx context.Context, in service.SubmitScoreInput) (*model.ChallengeScore, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChallengeScore), args.Error(1)
}

func (m *MockChallengeService) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error) {
	args := m.Called(ctx, challengeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChallengeScore), args.Error(1)
}

// MockAnalyticsService is a mock implementation of service.AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) RecordPlay(ctx context.Context, in service.RecordPlayInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAnalyticsService) HandlePlayRecorded(ctx context.Context, body []byte) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

func (m *MockAnalyticsService) ToggleFavorite(ctx context.Context, in service.ToggleFavoriteInput) (*service.ToggleFavoriteOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ToggleFavoriteOutput), args.Error(1)
}

func (m *MockAnalyticsService) GameStats(ctx context.Context, gameID int64) (*service.GameStats, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GameStats), args.Error(1)
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
)

// MockGameRepo is a mock implementation of repo.GameRepo
type MockGameRepo struct {
	mock.Mock
}

func (m *MockGameRepo) Create(ctx context.Context, g *model.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGameRepo) Update(ctx context.Context, g *model.Game) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGameRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepo) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameRepo) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *MockGameRepo) List(ctx context.Context, q repo.ListGamesQuery) ([]model.Game, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Game), args.Error(1)
}

func (m *MockGameRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepo) IncrementPlayCount(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockGameRepo) IncrementFavoriteCount(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockGameRepo) TopPlayed(ctx context.Context, limit int) ([]model.Game, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Game), args.Error(1)
}

func (m *MockGameRepo) SetStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockGameRepo) SetFeatured(ctx context.Context, id int64, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

// MockCategoryRepo is a mock implementation of repo.CategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepo) Update(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockChallengeRepo is a mock implementation of repo.ChallengeRepo
type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, c *model.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepo) Update(ctx context.Context, c *model.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) List(ctx context.Context, limit int) ([]model.Challenge, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) CreateScore(ctx context.Context, s *model.ChallengeScore) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockChallengeRepo) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error) {
	args := m.Called(ctx, challengeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChallengeScore), args.Error(1)
}

// MockPostRepo is a mock implementation of repo.PostRepo
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, p *model.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostRepo) Update(ctx context.Context, p *model.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) List(ctx context.Context, q repo.ListPostsQuery) ([]model.Post, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockAnalyticsRepo is a mock implementation of repo.AnalyticsRepo
type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) CreatePlayEvent(ctx context.Context, e *model.PlayEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockAnalyticsRepo) CountPlays(ctx context.Context, gameID int64) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepo) CreateFavorite(ctx context.Context, f *model.Favorite) (bool, error) {
	args := m.Called(ctx, f)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnalyticsRepo) DeleteFavorite(ctx context.Context, gameID int64, clientKey string) (bool, error) {
	args := m.Called(ctx, gameID, clientKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnalyticsRepo) CountFavorites(ctx context.Context, gameID int64) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) CountAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// fixedClock pins time-dependent services in tests.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

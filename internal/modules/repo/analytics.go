package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
)

type AnalyticsRepo interface {
	CreatePlayEvent(ctx context.Context, e *model.PlayEvent) error
	CountPlays(ctx context.Context, gameID int64) (int64, error)
	CreateFavorite(ctx context.Context, f *model.Favorite) (created bool, err error)
	DeleteFavorite(ctx context.Context, gameID int64, clientKey string) (deleted bool, err error)
	CountFavorites(ctx context.Context, gameID int64) (int64, error)
}

type analyticsRepo struct{ db *gorm.DB }

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) CreatePlayEvent(ctx context.Context, e *model.PlayEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *analyticsRepo) CountPlays(ctx context.Context, gameID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlayEvent{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}

// CreateFavorite inserts the favorite row. Reports created=false when the
// client already favorited the game.
func (r *analyticsRepo) CreateFavorite(ctx context.Context, f *model.Favorite) (bool, error) {
	err := r.db.WithContext(ctx).Create(f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *analyticsRepo) DeleteFavorite(ctx context.Context, gameID int64, clientKey string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("game_id = ? AND client_key = ?", gameID, clientKey).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *analyticsRepo) CountFavorites(ctx context.Context, gameID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}

package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
)

// ListGamesQuery filters the catalog listing. Cursor fields implement keyset
// pagination over (created_at, id).
type ListGamesQuery struct {
	Status       string
	CategoryID   *int64
	FeaturedOnly bool
	AfterTime    time.Time
	AfterID      int64
	Limit        int
	TimeDesc     bool
}

type GameRepo interface {
	Create(ctx context.Context, g *model.Game) error
	Update(ctx context.Context, g *model.Game) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Game, error)
	GetBySlug(ctx context.Context, slug string) (*model.Game, error)
	List(ctx context.Context, q ListGamesQuery) ([]model.Game, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error)
	IncrementPlayCount(ctx context.Context, id int64, delta int64) error
	IncrementFavoriteCount(ctx context.Context, id int64, delta int64) error
	TopPlayed(ctx context.Context, limit int) ([]model.Game, error)
	SetStatus(ctx context.Context, id int64, status string) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
}

type gameRepo struct{ db *gorm.DB }

func NewGameRepo(db *gorm.DB) GameRepo {
	return &gameRepo{db: db}
}

func (r *gameRepo) Create(ctx context.Context, g *model.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gameRepo) Update(ctx context.Context, g *model.Game) error {
	return r.db.WithContext(ctx).Where("id = ?", g.ID).Updates(g).Error
}

func (r *gameRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Game{}).Error
}

func (r *gameRepo) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) List(ctx context.Context, q ListGamesQuery) ([]model.Game, error) {
	query := r.db.WithContext(ctx).Model(&model.Game{}).Preload("Category")

	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}

	if !q.AfterTime.IsZero() {
		if q.TimeDesc {
			query = query.Where("(created_at, id) < (?, ?)", q.AfterTime, q.AfterID)
		} else {
			query = query.Where("(created_at, id) > (?, ?)", q.AfterTime, q.AfterID)
		}
	}

	if q.TimeDesc {
		query = query.Order("created_at DESC, id DESC")
	} else {
		query = query.Order("created_at ASC, id ASC")
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var games []model.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Game{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gameRepo) IncrementPlayCount(ctx context.Context, id int64, delta int64) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).Where("id = ?", id).
		UpdateColumn("play_count", gorm.Expr("play_count + ?", delta)).Error
}

func (r *gameRepo) IncrementFavoriteCount(ctx context.Context, id int64, delta int64) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).Where("id = ?", id).
		UpdateColumn("favorite_count", gorm.Expr("GREATEST(favorite_count + ?, 0)", delta)).Error
}

func (r *gameRepo) TopPlayed(ctx context.Context, limit int) ([]model.Game, error) {
	var games []model.Game
	err := r.db.WithContext(ctx).
		Where("status = ?", model.GameStatusPublished).
		Order("play_count DESC, id ASC").
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *gameRepo) SetFeatured(ctx context.Context, id int64, featured bool) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).Where("id = ?", id).
		UpdateColumn("featured", featured).Error
}

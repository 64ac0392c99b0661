package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
)

type ChallengeRepo interface {
	Create(ctx context.Context, c *model.Challenge) error
	Update(ctx context.Context, c *model.Challenge) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Challenge, error)
	List(ctx context.Context, limit int) ([]model.Challenge, error)
	ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error)
	CreateScore(ctx context.Context, s *model.ChallengeScore) error
	Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error)
}

type challengeRepo struct{ db *gorm.DB }

func NewChallengeRepo(db *gorm.DB) ChallengeRepo {
	return &challengeRepo{db: db}
}

func (r *challengeRepo) Create(ctx context.Context, c *model.Challenge) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *challengeRepo) Update(ctx context.Context, c *model.Challenge) error {
	return r.db.WithContext(ctx).Where("id = ?", c.ID).Updates(c).Error
}

func (r *challengeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Challenge{}).Error
}

func (r *challengeRepo) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.db.WithContext(ctx).Preload("Game").Where("id = ?", id).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) List(ctx context.Context, limit int) ([]model.Challenge, error) {
	var challenges []model.Challenge
	query := r.db.WithContext(ctx).Preload("Game").Order("starts_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("starts_at DESC").Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) CreateScore(ctx context.Context, s *model.ChallengeScore) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Leaderboard returns the top scores, ties broken by earliest submission.
func (r *challengeRepo) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.ChallengeScore, error) {
	var scores []model.ChallengeScore
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("score DESC, created_at ASC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

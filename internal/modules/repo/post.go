package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
)

type ListPostsQuery struct {
	PublishedOnly bool
	AfterTime     time.Time
	AfterID       int64
	Limit         int
	TimeDesc      bool
}

type PostRepo interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, q ListPostsQuery) ([]model.Post, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error)
}

type postRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepo) Update(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Where("id = ?", p.ID).Updates(p).Error
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context, q ListPostsQuery) ([]model.Post, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})

	if q.PublishedOnly {
		query = query.Where("published = ?", true)
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

	var posts []model.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) ExistsBySlug(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

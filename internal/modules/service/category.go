package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
)

type CategoryService interface {
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	r repo.CategoryRepo
}

func NewCategoryService(r repo.CategoryRepo) CategoryService {
	return &categoryService{r: r}
}

func (s *categoryService) Create(ctx context.Context, c *model.Category) error {
	taken, err := s.r.ExistsBySlug(ctx, c.Slug, nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return s.r.Create(ctx, c)
}

func (s *categoryService) Update(ctx context.Context, c *model.Category) error {
	if _, err := s.GetByID(ctx, c.ID); err != nil {
		return err
	}
	if c.Slug != "" {
		taken, err := s.r.ExistsBySlug(ctx, c.Slug, &c.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
	}
	return s.r.Update(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.r.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.r.List(ctx)
}

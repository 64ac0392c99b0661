package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		category *model.Category
		setup    func(*MockCategoryRepo)
		wantErr  error
	}{
		{
			name:     "successful creation",
			category: &model.Category{Name: "Puzzle", Slug: "puzzle"},
			setup: func(r *MockCategoryRepo) {
				r.On("ExistsBySlug", ctx, "puzzle", (*int64)(nil)).Return(false, nil)
				r.On("Create", ctx, mock.AnythingOfType("*model.Category")).Return(nil)
			},
		},
		{
			name:     "duplicate slug",
			category: &model.Category{Name: "Puzzle", Slug: "puzzle"},
			setup: func(r *MockCategoryRepo) {
				r.On("ExistsBySlug", ctx, "puzzle", (*int64)(nil)).Return(true, nil)
			},
			wantErr: ErrSlugTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &MockCategoryRepo{}
			tt.setup(r)

			svc := NewCategoryService(r)
			err := svc.Create(ctx, tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}

func TestCategoryService_GetBySlug_NotFound(t *testing.T) {
	ctx := context.Background()

	r := &MockCategoryRepo{}
	r.On("GetBySlug", ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := NewCategoryService(r)
	_, err := svc.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
	"github.com/arcadehq/arcade/internal/pkg/assetstore"
	"github.com/arcadehq/arcade/internal/pkg/gamepkg"
	"github.com/arcadehq/arcade/internal/pkg/paging"
)

type GameService interface {
	Create(ctx context.Context, in CreateGameInput) (*model.Game, error)
	Update(ctx context.Context, in UpdateGameInput) (*model.Game, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Game, error)
	GetBySlug(ctx context.Context, slug string) (*model.Game, error)
	List(ctx context.Context, in ListGamesInput) (*ListGamesOutput, error)
	TopPlayed(ctx context.Context, limit int) ([]model.Game, error)
	SetStatus(ctx context.Context, id int64, status string) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
}

type gameService struct {
	r         repo.GameRepo
	extractor *gamepkg.Extractor
	assets    *assetstore.Store
	log       *zap.Logger
}

func NewGameService(r repo.GameRepo, extractor *gamepkg.Extractor, assets *assetstore.Store, log *zap.Logger) GameService {
	return &gameService{
		r:         r,
		extractor: extractor,
		assets:    assets,
		log:       log,
	}
}

type CreateGameInput struct {
	Title        string
	Slug         string
	Description  string
	Instructions string
	CategoryID   *int64

	// Archive is the uploaded zip package; required.
	Archive []byte
	// Thumbnail image bytes; optional, the resolver covers games without one.
	Thumbnail []byte
}

// Create runs the full ingestion pipeline: extract the package, persist the
// catalog row, then attach the thumbnail under the final game id. The
// extracted directory is retired again if the database insert fails.
func (s *gameService) Create(ctx context.Context, in CreateGameInput) (*model.Game, error) {
	taken, err := s.r.ExistsBySlug(ctx, in.Slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	pkg, err := s.extractor.Extract(ctx, in.Archive)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		Title:          in.Title,
		Slug:           in.Slug,
		Description:    in.Description,
		Instructions:   in.Instructions,
		CategoryID:     in.CategoryID,
		DirectoryToken: pkg.DirectoryToken,
		EntryFile:      pkg.EntryFile,
		Status:         model.GameStatusDraft,
	}
	if err := s.r.Create(ctx, game); err != nil {
		if rmErr := s.assets.RemoveGameDirectory(pkg.DirectoryToken); rmErr != nil {
			s.log.Warn("failed to retire game directory after insert failure",
				zap.String("token", pkg.DirectoryToken), zap.Error(rmErr))
		}
		return nil, err
	}

	if len(in.Thumbnail) > 0 {
		// The asset name embeds the game id, so this has to happen after the
		// insert assigns one.
		name, err := s.assets.SaveThumbnail(in.Thumbnail, &game.ID)
		if err != nil {
			return nil, err
		}
		game.Thumbnail = name
		if err := s.r.Update(ctx, &model.Game{ID: game.ID, Thumbnail: name}); err != nil {
			return nil, err
		}
	}

	s.log.Info("game created",
		zap.Int64("game_id", game.ID),
		zap.String("slug", game.Slug),
		zap.String("entry_file", game.EntryFile))
	return game, nil
}

type UpdateGameInput struct {
	ID           int64
	Title        *string
	Slug         *string
	Description  *string
	Instructions *string
	CategoryID   *int64

	// Archive, when set, replaces the extracted package wholesale; the old
	// directory is removed after the new one is in place.
	Archive []byte
	// Thumbnail, when set, replaces the stored thumbnail asset. A
	// thumbnail-only update never touches the game directory.
	Thumbnail []byte
}

func (s *gameService) Update(ctx context.Context, in UpdateGameInput) (*model.Game, error) {
	game, err := s.r.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Slug != nil && *in.Slug != game.Slug {
		taken, err := s.r.ExistsBySlug(ctx, *in.Slug, &game.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		game.Slug = *in.Slug
	}
	if in.Title != nil {
		game.Title = *in.Title
	}
	if in.Description != nil {
		game.Description = *in.Description
	}
	if in.Instructions != nil {
		game.Instructions = *in.Instructions
	}
	if in.CategoryID != nil {
		game.CategoryID = in.CategoryID
	}

	if len(in.Archive) > 0 {
		pkg, err := s.extractor.Extract(ctx, in.Archive)
		if err != nil {
			return nil, err
		}
		oldToken := game.DirectoryToken
		game.DirectoryToken = pkg.DirectoryToken
		game.EntryFile = pkg.EntryFile
		if err := s.assets.RemoveGameDirectory(oldToken); err != nil {
			s.log.Warn("failed to retire replaced game directory",
				zap.String("token", oldToken), zap.Error(err))
		}
	}

	if len(in.Thumbnail) > 0 {
		name, err := s.assets.UpdateThumbnail(game.Thumbnail, in.Thumbnail, &game.ID)
		if err != nil {
			return nil, err
		}
		game.Thumbnail = name
	}

	if err := s.r.Update(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete removes the catalog row, the extracted directory, and the thumbnail
// asset. Storage removals are idempotent so a half-deleted game can be
// retried.
func (s *gameService) Delete(ctx context.Context, id int64) error {
	game, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.assets.RemoveGameDirectory(game.DirectoryToken); err != nil {
		s.log.Warn("failed to remove game directory",
			zap.String("token", game.DirectoryToken), zap.Error(err))
	}
	if game.Thumbnail != "" {
		if err := s.assets.RemoveThumbnail(game.Thumbnail); err != nil {
			s.log.Warn("failed to remove thumbnail",
				zap.String("asset", game.Thumbnail), zap.Error(err))
		}
	}
	return nil
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	game, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	game, err := s.r.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return game, nil
}

type ListGamesInput struct {
	Status       string `json:"status"`
	CategoryID   *int64 `json:"category_id"`
	FeaturedOnly bool   `json:"featured_only"`
	Limit        int    `json:"limit"`
	Cursor       string `json:"cursor"`
	TimeDesc     bool   `json:"time_desc"`
}

type ListGamesOutput struct {
	Items      []model.Game `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
}

func (s *gameService) List(ctx context.Context, in ListGamesInput) (*ListGamesOutput, error) {
	// Parse cursor (createdAt, id); an empty cursor indicates starting from the latest
	var afterT time.Time
	var afterID int64
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	// Query limit+1 is used to determine has_more
	games, err := s.r.List(ctx, repo.ListGamesQuery{
		Status:       in.Status,
		CategoryID:   in.CategoryID,
		FeaturedOnly: in.FeaturedOnly,
		AfterTime:    afterT,
		AfterID:      afterID,
		Limit:        in.Limit + 1,
		TimeDesc:     in.TimeDesc,
	})
	if err != nil {
		return nil, err
	}

	out := &ListGamesOutput{
		Items:   games,
		HasMore: false,
	}
	if len(games) > in.Limit {
		out.HasMore = true
		out.Items = games[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}

func (s *gameService) TopPlayed(ctx context.Context, limit int) ([]model.Game, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.r.TopPlayed(ctx, limit)
}

func (s *gameService) SetStatus(ctx context.Context, id int64, status string) error {
	if status != model.GameStatusDraft && status != model.GameStatusPublished {
		return errors.New("unknown game status")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.r.SetStatus(ctx, id, status)
}

func (s *gameService) SetFeatured(ctx context.Context, id int64, featured bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.r.SetFeatured(ctx, id, featured)
}

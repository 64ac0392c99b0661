package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
	"github.com/arcadehq/arcade/internal/pkg/paging"
)

type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error)
	List(ctx context.Context, in ListPostsInput) (*ListPostsOutput, error)
}

type postService struct {
	r   repo.PostRepo
	now func() time.Time
}

func NewPostService(r repo.PostRepo) PostService {
	return &postService{r: r, now: time.Now}
}

type CreatePostInput struct {
	AuthorID  uuid.UUID
	Title     string
	Slug      string
	Excerpt   string
	Body      string
	Published bool
}

func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	taken, err := s.r.ExistsBySlug(ctx, in.Slug, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	post := &model.Post{
		AuthorID:  in.AuthorID,
		Title:     in.Title,
		Slug:      in.Slug,
		Excerpt:   in.Excerpt,
		Body:      in.Body,
		Published: in.Published,
	}
	if in.Published {
		now := s.now()
		post.PublishedAt = &now
	}
	if err := s.r.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

type UpdatePostInput struct {
	ID        int64
	Title     *string
	Slug      *string
	Excerpt   *string
	Body      *string
	Published *bool
}

func (s *postService) Update(ctx context.Context, in UpdatePostInput) (*model.Post, error) {
	post, err := s.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != post.Slug {
		taken, err := s.r.ExistsBySlug(ctx, *in.Slug, &post.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		post.Slug = *in.Slug
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Body != nil {
		post.Body = *in.Body
	}
	if in.Published != nil && *in.Published != post.Published {
		post.Published = *in.Published
		if *in.Published {
			// First publication stamps the time; re-publishing keeps it.
			if post.PublishedAt == nil {
				now := s.now()
				post.PublishedAt = &now
			}
		}
	}

	if err := s.r.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *postService) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error) {
	post, err := s.r.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if publishedOnly && !post.Published {
		return nil, ErrNotFound
	}
	return post, nil
}

type ListPostsInput struct {
	PublishedOnly bool   `json:"published_only"`
	Limit         int    `json:"limit"`
	Cursor        string `json:"cursor"`
	TimeDesc      bool   `json:"time_desc"`
}

type ListPostsOutput struct {
	Items      []model.Post `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
}

func (s *postService) List(ctx context.Context, in ListPostsInput) (*ListPostsOutput, error) {
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
	posts, err := s.r.List(ctx, repo.ListPostsQuery{
		PublishedOnly: in.PublishedOnly,
		AfterTime:     afterT,
		AfterID:       afterID,
		Limit:         in.Limit + 1,
		TimeDesc:      in.TimeDesc,
	})
	if err != nil {
		return nil, err
	}

	out := &ListPostsOutput{
		Items:   posts,
		HasMore: false,
	}
	if len(posts) > in.Limit {
		out.HasMore = true
		out.Items = posts[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}

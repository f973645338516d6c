package usecase

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
)

// PostUsecase defines the post operations of the data access layer. Reads of
// a browser context are served from its cache scope where possible.
type PostUsecase interface {
	// ListPosts fetches a page of published posts, newest first. An empty
	// cursor starts the listing over.
	ListPosts(ctx context.Context, pageSize int, after entity.PageCursor) (*entity.PostPage, error)
	// LoadMorePosts appends the next page to the listing. It is a no-op while
	// another load of the same listing is in flight.
	LoadMorePosts(ctx context.Context, pageSize int) (*entity.PostPage, error)
	ListUserPosts(ctx context.Context, userID uuid.UUID, pageSize int, after entity.PageCursor) (*entity.PostPage, error)
	LoadMoreUserPosts(ctx context.Context, userID uuid.UUID, pageSize int) (*entity.PostPage, error)
	// GetPost returns nil when the post does not exist.
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	CreatePost(ctx context.Context, input *PostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, input *PostInput) (*entity.Post, error)
	// DeletePost is idempotent and returns id.
	DeletePost(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// ValidatePost checks input without touching the store.
	ValidatePost(input *PostInput) error
}

// --- Input DTOs ---

// PostInput defines the editable post fields.
type PostInput struct {
	Title     string    `form:"title" label:"Title" validate:"min=5,max=100"`
	Body      string    `form:"body" label:"Body" validate:"min=10,max=50000"`
	Published bool      `form:"published"`
	AuthorID  uuid.UUID `form:"-"`
}

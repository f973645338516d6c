// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"fmt"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrPostNotFound is returned when the store has no post with the requested id.
var ErrPostNotFound = errors.New("post not found")

// PostListQuery identifies one listing. Cursors returned for a query are only
// valid for the same query.
type PostListQuery struct {
	// AuthorID restricts the listing to one author (drafts included).
	// uuid.Nil lists published posts of everyone.
	AuthorID uuid.UUID
	PageSize int
}

// Key returns the cache key of the listing.
func (q PostListQuery) Key() string {
	if q.AuthorID == uuid.Nil {
		return fmt.Sprintf("feed:%d", q.PageSize)
	}

	return fmt.Sprintf("author:%s:%d", q.AuthorID, q.PageSize)
}

// PostRepository defines the post operations against the remote store.
// Implementations keep a normalized cache: mutations upsert, deletes evict,
// pages append to the listing they continue.
type PostRepository interface {
	// FetchPage loads one page from the store. An empty after starts the
	// listing over; a cursor equal to the listing's next cursor appends to it.
	FetchPage(ctx context.Context, query PostListQuery, after entity.PageCursor) (*entity.PostPage, error)

	// Listing returns the accumulated listing for query from the cache.
	Listing(ctx context.Context, query PostListQuery) (*entity.PostPage, bool)

	// FindByID returns ErrPostNotFound when the post does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// Create persists a new post and returns the stored record.
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)

	// Update returns ErrPostNotFound when no record matched post.ID.
	Update(ctx context.Context, post *entity.Post) (*entity.Post, error)

	// Delete removes the post. Deleting a missing post is not an error;
	// deleted reports whether a record was actually removed.
	Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error)
}

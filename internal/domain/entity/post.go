package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog post as stored by the GraphQL backend.
type Post struct {
	ID        uuid.UUID // Server-assigned identifier.
	Title     string
	Body      string
	CreatedAt time.Time
	Published bool      // Unpublished posts are only visible to their author.
	AuthorID  uuid.UUID // Owner of the post.
	Author    *Profile  // Denormalized author snapshot; nil when not fetched.
}

// IsOwnedBy reports whether userID authored the post.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p != nil && userID != uuid.Nil && p.AuthorID == userID
}

// PageCursor is an opaque position in a post listing. It is only meaningful
// for the listing that returned it.
type PageCursor string

// PostPage is one page of a forward-only post listing.
type PostPage struct {
	Posts      []*Post
	NextCursor PageCursor
	HasMore    bool
}

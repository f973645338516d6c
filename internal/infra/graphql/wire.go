package graphql

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"quill/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Timestamp accepts the datetime shapes pg_graphql emits for timestamp and
// timestamptz columns.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}

		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed

			return nil
		}
	}

	return errors.Errorf("unrecognized timestamp %q", raw)
}

// PageInfo is the relay page info of a collection.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Edge wraps one node of a collection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is a pg_graphql collection.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Nodes returns the nodes in edge order.
func (c *Connection[T]) Nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}

	return out
}

// Mutation is the payload of insertInto/update/deleteFrom collection mutations.
type Mutation[T any] struct {
	Records []T `json:"records"`
}

// ProfileNode is a profiles row as the store returns it. Nullable text columns decode to "".
type ProfileNode struct {
	NodeID      string    `json:"nodeId"`
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Website     string    `json:"website"`
	CreatedAt   Timestamp `json:"created_at"`
}

// ToEntity converts the node. It fails when the id is not a uuid.
func (n *ProfileNode) ToEntity() (*entity.Profile, error) {
	id, err := uuid.Parse(n.ID)
	if err != nil {
		return nil, errors.Wrap(err, "profile id")
	}

	return &entity.Profile{
		ID:          id,
		Username:    n.Username,
		DisplayName: n.DisplayName,
		Bio:         n.Bio,
		Website:     n.Website,
		AvatarURL:   n.AvatarURL,
		CreatedAt:   n.CreatedAt.Time,
	}, nil
}

// UserField is the author relation of a post. Depending on how the foreign key
// is exposed, the store returns either a single record or a collection, so the
// field is decoded as a tagged union. Author records that fail to decode are
// left out in both shapes; Invalid keeps the first reason.
type UserField struct {
	Flat    *entity.Profile
	Edges   []*entity.Profile
	Invalid error
}

func (f *UserField) UnmarshalJSON(data []byte) error {
	*f = UserField{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var shape struct {
		ID    *string              `json:"id"`
		Edges *[]Edge[ProfileNode] `json:"edges"`
	}
	if err := json.Unmarshal(trimmed, &shape); err != nil {
		return errors.Wrap(err, "user field")
	}

	if shape.ID != nil && strings.TrimSpace(*shape.ID) != "" {
		var node ProfileNode
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return errors.Wrap(err, "user field")
		}
		if profile, err := node.ToEntity(); err != nil {
			f.Invalid = err
		} else {
			f.Flat = profile
		}
	}

	if shape.Edges != nil {
		for _, edge := range *shape.Edges {
			profile, err := edge.Node.ToEntity()
			if err != nil {
				if f.Invalid == nil {
					f.Invalid = err
				}

				continue
			}
			f.Edges = append(f.Edges, profile)
		}
	}

	return nil
}

// NormalizeUserField collapses the union: a flat record with an id wins, else
// the first edge, else nil.
func NormalizeUserField(f UserField) *entity.Profile {
	if f.Flat != nil && f.Flat.ID != uuid.Nil {
		return f.Flat
	}

	for _, p := range f.Edges {
		if p != nil {
			return p
		}
	}

	return nil
}

// PostNode is a posts row with its author relation.
type PostNode struct {
	NodeID    string    `json:"nodeId"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt Timestamp `json:"created_at"`
	Published bool      `json:"published"`
	UserID    string    `json:"user_id"`
	User      UserField `json:"user"`
}

// ToEntity converts the node. An author snapshot whose id differs from
// user_id is dropped; mismatch reports that it happened.
func (n *PostNode) ToEntity() (post *entity.Post, mismatch bool, err error) {
	id, err := uuid.Parse(n.ID)
	if err != nil {
		return nil, false, errors.Wrap(err, "post id")
	}

	post = &entity.Post{
		ID:        id,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt.Time,
		Published: n.Published,
	}

	if n.UserID != "" {
		authorID, err := uuid.Parse(n.UserID)
		if err != nil {
			return nil, false, errors.Wrap(err, "post user_id")
		}
		post.AuthorID = authorID
	}

	if author := NormalizeUserField(n.User); author != nil {
		if post.AuthorID == uuid.Nil {
			post.AuthorID = author.ID
		}
		if author.ID == post.AuthorID {
			post.Author = author
		} else {
			mismatch = true
		}
	}

	return post, mismatch, nil
}

// DeletedRecord is what the delete mutation returns per row.
type DeletedRecord struct {
	ID string `json:"id"`
}

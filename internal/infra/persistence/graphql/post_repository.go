// Package graphql contains the persistence layer backed by the hosted GraphQL store.
package graphql

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/infra/graphql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TransportProvider hands out the transport of the browser context in ctx.
type TransportProvider interface {
	For(ctx context.Context) *graphql.Transport
}

// CacheProvider hands out the cache scope of the browser context in ctx.
type CacheProvider interface {
	For(ctx context.Context) *graphql.Cache
}

// postRepository implements the domain.PostRepository interface.
type postRepository struct {
	transports TransportProvider
	caches     CacheProvider
	logger     *slog.Logger
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(transports TransportProvider, caches CacheProvider, logger *slog.Logger) repository.PostRepository {
	return &postRepository{
		transports: transports,
		caches:     caches,
		logger:     logger,
	}
}

type postsCollectionData struct {
	PostsCollection graphql.Connection[graphql.PostNode] `json:"postsCollection"`
}

// FetchPage loads one page and merges it into the listing of query.
func (repo *postRepository) FetchPage(ctx context.Context, query repository.PostListQuery, after entity.PageCursor) (*entity.PostPage, error) {
	op := graphql.GetPosts
	vars := map[string]any{"first": query.PageSize}
	if query.AuthorID != uuid.Nil {
		op = graphql.GetUserPosts
		vars["userId"] = query.AuthorID.String()
	}
	if after != "" {
		vars["after"] = string(after)
	}

	var data postsCollectionData
	if err := repo.transports.For(ctx).Execute(ctx, op, vars, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to fetch posts")
	}

	page := &entity.PostPage{
		Posts:   repo.toPosts(ctx, data.PostsCollection.Nodes()),
		HasMore: data.PostsCollection.PageInfo.HasNextPage,
	}
	if page.HasMore {
		page.NextCursor = entity.PageCursor(data.PostsCollection.PageInfo.EndCursor)
	}

	cache := repo.caches.For(ctx)
	key := query.Key()
	switch next, ok := cache.NextCursor(key); {
	case after == "":
		cache.ResetListing(key, page)
	case ok && next == after:
		cache.AppendListing(key, page)
	default:
		// A cursor the listing has moved past: keep the records, not the order.
		for _, p := range page.Posts {
			cache.WritePost(p)
		}
		repo.log(ctx).Debug("Stale page cursor, listing left unchanged", slog.String("listing", key))
	}

	return page, nil
}

// Listing returns the accumulated listing from the cache.
func (repo *postRepository) Listing(ctx context.Context, query repository.PostListQuery) (*entity.PostPage, bool) {
	return repo.caches.For(ctx).Listing(query.Key())
}

// FindByID fetches the post from the store and refreshes its cached copy.
// Other browser contexts may have changed or removed it since it was cached.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var data postsCollectionData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.GetPostByID, map[string]any{"id": id.String()}, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to fetch post")
	}

	cache := repo.caches.For(ctx)
	posts := repo.toPosts(ctx, data.PostsCollection.Nodes())
	if len(posts) == 0 {
		cache.EvictPost(id)

		return nil, repository.ErrPostNotFound
	}

	cache.WritePost(posts[0])

	return posts[0], nil
}

type insertPostsData struct {
	Result graphql.Mutation[graphql.PostNode] `json:"insertIntopostsCollection"`
}

// Create inserts the post and caches the stored record.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	vars := map[string]any{
		"title":     post.Title,
		"body":      post.Body,
		"published": post.Published,
		"user_id":   post.AuthorID.String(),
	}

	var data insertPostsData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.CreatePost, vars, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to create post")
	}

	posts := repo.toPosts(ctx, data.Result.Records)
	if len(posts) == 0 {
		return nil, domainerrors.NewStoreExecuteError(errors.New("insert returned no records"), "failed to create post")
	}

	repo.caches.For(ctx).WritePost(posts[0])

	return posts[0], nil
}

type updatePostsData struct {
	Result graphql.Mutation[graphql.PostNode] `json:"updatepostsCollection"`
}

// Update changes title, body and published of the post with post.ID.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	vars := map[string]any{
		"id":        post.ID.String(),
		"title":     post.Title,
		"body":      post.Body,
		"published": post.Published,
	}

	var data updatePostsData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.UpdatePost, vars, &data); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "failed to update post")
	}

	posts := repo.toPosts(ctx, data.Result.Records)
	if len(posts) == 0 {
		return nil, repository.ErrPostNotFound
	}

	repo.caches.For(ctx).WritePost(posts[0])

	return posts[0], nil
}

type deletePostsData struct {
	Result graphql.Mutation[graphql.DeletedRecord] `json:"deleteFrompostsCollection"`
}

// Delete removes the post from the store and evicts it from the cache.
func (repo *postRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var data deletePostsData
	if err := repo.transports.For(ctx).Execute(ctx, graphql.DeletePost, map[string]any{"id": id.String()}, &data); err != nil {
		return false, domainerrors.NewStoreExecuteError(err, "failed to delete post")
	}

	repo.caches.For(ctx).EvictPost(id)

	return len(data.Result.Records) > 0, nil
}

func (repo *postRepository) toPosts(ctx context.Context, nodes []graphql.PostNode) []*entity.Post {
	posts := make([]*entity.Post, 0, len(nodes))
	for i := range nodes {
		post, mismatch, err := nodes[i].ToEntity()
		if err != nil {
			repo.log(ctx).Warn("Skipping undecodable post", slog.String("id", nodes[i].ID), slog.Any("error", err))

			continue
		}
		if nodes[i].User.Invalid != nil {
			repo.log(ctx).Warn("Dropped undecodable author snapshot",
				slog.String("post_id", post.ID.String()),
				slog.Any("error", nodes[i].User.Invalid),
			)
		}
		if mismatch {
			repo.log(ctx).Warn("Dropped author snapshot that does not match user_id",
				slog.String("post_id", post.ID.String()),
				slog.String("user_id", post.AuthorID.String()),
			)
		}
		posts = append(posts, post)
	}

	return posts
}

func (repo *postRepository) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, repo.logger)
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/usecase"
	"quill/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	minPageSize = 1
	maxPageSize = 50
)

// postService implements the PostUsecase interface.
type postService struct {
	posts     repository.PostRepository
	validator *validation.Validator
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewPostService is the constructor for postService.
func NewPostService(
	posts repository.PostRepository,
	validator *validation.Validator,
	logger *slog.Logger,
) usecase.PostUsecase {
	return &postService{
		posts:     posts,
		validator: validator,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func clampPageSize(pageSize int) int {
	return min(max(pageSize, minPageSize), maxPageSize)
}

// ListPosts fetches a page of published posts, newest first.
func (srv *postService) ListPosts(ctx context.Context, pageSize int, after entity.PageCursor) (*entity.PostPage, error) {
	query := repository.PostListQuery{PageSize: clampPageSize(pageSize)}

	page, err := srv.posts.FetchPage(ctx, query, after)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return page, nil
}

// LoadMorePosts appends the next page of the published listing.
func (srv *postService) LoadMorePosts(ctx context.Context, pageSize int) (*entity.PostPage, error) {
	return srv.loadMore(ctx, repository.PostListQuery{PageSize: clampPageSize(pageSize)})
}

// ListUserPosts fetches a page of the author's posts, drafts included.
func (srv *postService) ListUserPosts(ctx context.Context, userID uuid.UUID, pageSize int, after entity.PageCursor) (*entity.PostPage, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "missing author")
	}

	query := repository.PostListQuery{AuthorID: userID, PageSize: clampPageSize(pageSize)}

	page, err := srv.posts.FetchPage(ctx, query, after)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user posts")
	}

	return page, nil
}

// LoadMoreUserPosts appends the next page of the author's listing.
func (srv *postService) LoadMoreUserPosts(ctx context.Context, userID uuid.UUID, pageSize int) (*entity.PostPage, error) {
	if userID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "missing author")
	}

	return srv.loadMore(ctx, repository.PostListQuery{AuthorID: userID, PageSize: clampPageSize(pageSize)})
}

// loadMore continues the cached listing of query. While another load of the
// same listing in the same browser context runs, it returns the listing as is.
func (srv *postService) loadMore(ctx context.Context, query repository.PostListQuery) (*entity.PostPage, error) {
	key := deliverycontext.HandleFrom(ctx) + "|" + query.Key()

	srv.mu.Lock()
	if _, busy := srv.inFlight[key]; busy {
		srv.mu.Unlock()
		srv.log(ctx).Debug("Load more skipped, already in flight", slog.String("listing", query.Key()))

		return srv.currentListing(ctx, query), nil
	}
	srv.inFlight[key] = struct{}{}
	srv.mu.Unlock()

	defer func() {
		srv.mu.Lock()
		delete(srv.inFlight, key)
		srv.mu.Unlock()
	}()

	var after entity.PageCursor
	if listing, ok := srv.posts.Listing(ctx, query); ok {
		if !listing.HasMore {
			return listing, nil
		}
		after = listing.NextCursor
	}

	if _, err := srv.posts.FetchPage(ctx, query, after); err != nil {
		return nil, errors.Wrap(err, "failed to load more posts")
	}

	return srv.currentListing(ctx, query), nil
}

func (srv *postService) currentListing(ctx context.Context, query repository.PostListQuery) *entity.PostPage {
	if listing, ok := srv.posts.Listing(ctx, query); ok {
		return listing
	}

	return &entity.PostPage{}
}

// GetPost returns nil when the post does not exist.
func (srv *postService) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := srv.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// ValidatePost trims and checks input. It never touches the store.
func (srv *postService) ValidatePost(input *usecase.PostInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)

	return srv.validator.Struct(input)
}

// CreatePost validates input and stores a new post for input.AuthorID.
func (srv *postService) CreatePost(ctx context.Context, input *usecase.PostInput) (*entity.Post, error) {
	if err := srv.ValidatePost(input); err != nil {
		return nil, err
	}
	if input.AuthorID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "post has no author")
	}

	post, err := srv.posts.Create(ctx, &entity.Post{
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
		AuthorID:  input.AuthorID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	srv.log(ctx).Info("Post created", slog.String("post_id", post.ID.String()))

	return post, nil
}

// UpdatePost validates input and replaces the editable fields of post id.
// Ownership is checked by the caller and by the store's row policy.
func (srv *postService) UpdatePost(ctx context.Context, id uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	if err := srv.ValidatePost(input); err != nil {
		return nil, err
	}

	post, err := srv.posts.Update(ctx, &entity.Post{
		ID:        id,
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "post not found")
		}

		return nil, errors.Wrap(err, "failed to update post")
	}

	srv.log(ctx).Info("Post updated", slog.String("post_id", id.String()))

	return post, nil
}

// DeletePost removes the post. Deleting a missing post succeeds.
func (srv *postService) DeletePost(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	deleted, err := srv.posts.Delete(ctx, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to delete post")
	}

	srv.log(ctx).Info("Post deleted", slog.String("post_id", id.String()), slog.Bool("existed", deleted))

	return id, nil
}

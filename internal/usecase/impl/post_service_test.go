package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	mockRepo "quill/internal/mocks/repository"
	"quill/internal/usecase"
	"quill/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// postServiceFixtures holds all test dependencies for post service tests.
type postServiceFixtures struct {
	service usecase.PostUsecase
	posts   *mockRepo.MockPostRepository
}

func createTestPostService(t *testing.T) postServiceFixtures {
	posts := mockRepo.NewMockPostRepository(t)
	service := NewPostService(posts, validation.New(), newDiscardLogger())

	return postServiceFixtures{
		service: service,
		posts:   posts,
	}
}

func TestPostService_CreatePost_Success(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	authorID := uuid.New()

	stored := &entity.Post{
		ID:        uuid.New(),
		Title:     "Hello world",
		Body:      "This is my first post.",
		Published: true,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}

	fx.posts.EXPECT().
		Create(ctx, &entity.Post{Title: "Hello world", Body: "This is my first post.", Published: true, AuthorID: authorID}).
		Return(stored, nil).
		Once()

	post, err := fx.service.CreatePost(ctx, &usecase.PostInput{
		Title:     "  Hello world ",
		Body:      "This is my first post.\n",
		Published: true,
		AuthorID:  authorID,
	})

	require.NoError(t, err)
	assert.Equal(t, stored.Title, post.Title)
	assert.Equal(t, stored.Body, post.Body)
	assert.Equal(t, stored.Published, post.Published)
	assert.Equal(t, authorID, post.AuthorID)
}

func TestPostService_CreatePost_ShortTitleNeverReachesStore(t *testing.T) {
	fx := createTestPostService(t)

	_, err := fx.service.CreatePost(context.Background(), &usecase.PostInput{
		Title:    "Hey",
		Body:     "A body that is long enough.",
		AuthorID: uuid.New(),
	})

	require.Error(t, err)
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title must be at least 5 characters", verr.ByField()["title"])
	fx.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostService_ValidatePost(t *testing.T) {
	fx := createTestPostService(t)

	tests := []struct {
		name      string
		input     usecase.PostInput
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: usecase.PostInput{Title: "Valid title", Body: "Valid body text"},
		},
		{
			name:      "whitespace title",
			input:     usecase.PostInput{Title: "     ", Body: "Valid body text"},
			wantField: "title",
			wantMsg:   "Title must be at least 5 characters",
		},
		{
			name:      "long title",
			input:     usecase.PostInput{Title: strings.Repeat("t", 101), Body: "Valid body text"},
			wantField: "title",
			wantMsg:   "Title cannot exceed 100 characters",
		},
		{
			name:      "short body",
			input:     usecase.PostInput{Title: "Valid title", Body: "too short"},
			wantField: "body",
			wantMsg:   "Body must be at least 10 characters",
		},
		{
			name:      "long body",
			input:     usecase.PostInput{Title: "Valid title", Body: strings.Repeat("b", 50001)},
			wantField: "body",
			wantMsg:   "Body cannot exceed 50000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			err := fx.service.ValidatePost(&input)
			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			var verr *domainerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.ByField()[tt.wantField])
		})
	}
}

func TestPostService_CreatePost_RequiresAuthor(t *testing.T) {
	fx := createTestPostService(t)

	_, err := fx.service.CreatePost(context.Background(), &usecase.PostInput{Title: "Hello world", Body: "A long enough body"})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()
		id := uuid.New()
		updated := &entity.Post{ID: id, Title: "Edited title", Body: "Edited body text"}

		fx.posts.EXPECT().
			Update(ctx, &entity.Post{ID: id, Title: "Edited title", Body: "Edited body text"}).
			Return(updated, nil).
			Once()

		post, err := fx.service.UpdatePost(ctx, id, &usecase.PostInput{Title: "Edited title", Body: "Edited body text"})
		require.NoError(t, err)
		assert.Equal(t, updated, post)
	})

	t.Run("not found", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()

		fx.posts.EXPECT().Update(ctx, mock.Anything).Return(nil, repository.ErrPostNotFound).Once()

		_, err := fx.service.UpdatePost(ctx, uuid.New(), &usecase.PostInput{Title: "Edited title", Body: "Edited body text"})
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		fx := createTestPostService(t)

		_, err := fx.service.UpdatePost(context.Background(), uuid.New(), &usecase.PostInput{Title: "Edited title", Body: "short"})
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})
}

func TestPostService_DeletePost_UnknownIDIsNotAnError(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.posts.EXPECT().Delete(ctx, id).Return(false, nil).Once()

	deletedID, err := fx.service.DeletePost(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, deletedID)
}

func TestPostService_DeletePost_StoreError(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()

	fx.posts.EXPECT().Delete(ctx, mock.Anything).Return(false, domainerrors.NewStoreExecuteError(errors.New("timeout"), "failed to delete post"))

	_, err := fx.service.DeletePost(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrStore)
}

func TestPostService_GetPost(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	found := &entity.Post{ID: uuid.New(), Title: "Hello world"}

	fx.posts.EXPECT().FindByID(ctx, found.ID).Return(found, nil).Once()
	fx.posts.EXPECT().FindByID(ctx, mock.Anything).Return(nil, repository.ErrPostNotFound).Once()

	post, err := fx.service.GetPost(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, found, post)

	missing, err := fx.service.GetPost(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostService_ListPosts_ClampsPageSize(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	page := &entity.PostPage{}

	fx.posts.EXPECT().FetchPage(ctx, repository.PostListQuery{PageSize: maxPageSize}, entity.PageCursor("")).Return(page, nil).Once()
	fx.posts.EXPECT().FetchPage(ctx, repository.PostListQuery{PageSize: minPageSize}, entity.PageCursor("c1")).Return(page, nil).Once()

	_, err := fx.service.ListPosts(ctx, 1000, "")
	require.NoError(t, err)
	_, err = fx.service.ListPosts(ctx, 0, "c1")
	require.NoError(t, err)
}

func TestPostService_LoadMorePosts_ContinuesListing(t *testing.T) {
	fx := createTestPostService(t)
	ctx := deliverycontext.WithHandle(context.Background(), "h1")
	query := repository.PostListQuery{PageSize: 5}

	before := &entity.PostPage{NextCursor: "c5", HasMore: true}
	after := &entity.PostPage{HasMore: false}

	fx.posts.EXPECT().Listing(ctx, query).Return(before, true).Once()
	fx.posts.EXPECT().FetchPage(ctx, query, entity.PageCursor("c5")).Return(&entity.PostPage{}, nil).Once()
	fx.posts.EXPECT().Listing(ctx, query).Return(after, true).Once()

	page, err := fx.service.LoadMorePosts(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, after, page)
}

func TestPostService_LoadMorePosts_StopsAtEnd(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	query := repository.PostListQuery{PageSize: 5}
	done := &entity.PostPage{HasMore: false}

	fx.posts.EXPECT().Listing(ctx, query).Return(done, true).Once()

	page, err := fx.service.LoadMorePosts(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, done, page)
}

func TestPostService_LoadMorePosts_NoOpWhileInFlight(t *testing.T) {
	fx := createTestPostService(t)
	ctx := deliverycontext.WithHandle(context.Background(), "h1")
	query := repository.PostListQuery{PageSize: 5}

	entered := make(chan struct{})
	release := make(chan struct{})
	listing := &entity.PostPage{NextCursor: "c5", HasMore: true}

	fx.posts.EXPECT().Listing(ctx, query).Return(listing, true)
	fx.posts.EXPECT().
		FetchPage(ctx, query, entity.PageCursor("c5")).
		RunAndReturn(func(context.Context, repository.PostListQuery, entity.PageCursor) (*entity.PostPage, error) {
			close(entered)
			<-release

			return &entity.PostPage{}, nil
		}).
		Once()

	errs := make(chan error, 1)
	go func() {
		_, err := fx.service.LoadMorePosts(ctx, 5)
		errs <- err
	}()
	<-entered

	page, err := fx.service.LoadMorePosts(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, listing, page)

	close(release)
	require.NoError(t, <-errs)
}

func TestPostService_ListUserPosts(t *testing.T) {
	fx := createTestPostService(t)
	ctx := context.Background()
	authorID := uuid.New()
	page := &entity.PostPage{}

	fx.posts.EXPECT().FetchPage(ctx, repository.PostListQuery{AuthorID: authorID, PageSize: 10}, entity.PageCursor("")).Return(page, nil).Once()

	got, err := fx.service.ListUserPosts(ctx, authorID, 10, "")
	require.NoError(t, err)
	assert.Same(t, page, got)

	_, err = fx.service.ListUserPosts(ctx, uuid.Nil, 10, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

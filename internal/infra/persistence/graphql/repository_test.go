package graphql

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/infra/graphql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedTransport struct{ t *graphql.Transport }

func (f fixedTransport) For(context.Context) *graphql.Transport { return f.t }

type fixedCache struct{ c *graphql.Cache }

func (f fixedCache) For(context.Context) *graphql.Cache { return f.c }

type recordedCall struct {
	Operation string
	Variables map[string]any
}

var operationName = regexp.MustCompile(`^\s*(?:query|mutation)\s+(\w+)`)

// fakeStore answers GraphQL operations by name and records every call.
type fakeStore struct {
	mu      sync.Mutex
	calls   []recordedCall
	answers map[string][]string
}

func (s *fakeStore) answer(op string, bodies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[op] = append(s.answers[op], bodies...)
}

func (s *fakeStore) callsTo(op string) []recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []recordedCall
	for _, c := range s.calls {
		if c.Operation == op {
			out = append(out, c)
		}
	}

	return out
}

func (s *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}
	var op string
	if m := operationName.FindStringSubmatch(req.Query); m != nil {
		op = m[1]
	}

	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{Operation: op, Variables: req.Variables})
	queue := s.answers[op]
	if len(queue) == 0 {
		s.mu.Unlock()
		http.Error(w, "unexpected operation "+op, http.StatusInternalServerError)

		return
	}
	body := queue[0]
	s.answers[op] = queue[1:]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

type repoFixture struct {
	store    *fakeStore
	srv      *httptest.Server
	cache    *graphql.Cache
	posts    repository.PostRepository
	profiles repository.ProfileRepository
}

func createTestRepositories(t *testing.T) *repoFixture {
	t.Helper()

	store := &fakeStore{answers: make(map[string][]string)}
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	fx := &repoFixture{store: store, srv: srv}
	fx.cache, fx.posts, fx.profiles = fx.scope("user-token")

	return fx
}

// scope returns repositories for another browser context talking to the same store.
func (fx *repoFixture) scope(token string) (*graphql.Cache, repository.PostRepository, repository.ProfileRepository) {
	transport := fixedTransport{t: graphql.NewTransport(fx.srv.URL, "anon", token, fx.srv.Client(), newDiscardLogger())}
	cache := graphql.NewCache()

	return cache,
		NewPostRepository(transport, fixedCache{c: cache}, newDiscardLogger()),
		NewProfileRepository(transport, fixedCache{c: cache}, newDiscardLogger())
}

const (
	authorID = "7f0b5b7e-5d53-4c55-9d0f-2b8a1c9e4a11"
	postA    = "11111111-1111-4111-8111-111111111111"
	postB    = "22222222-2222-4222-8222-222222222222"
	postC    = "33333333-3333-4333-8333-333333333333"
)

func postJSON(id, title string) string {
	return `{"id":"` + id + `","title":"` + title + `","body":"a body of text","created_at":"2024-05-01T10:00:00+00:00",` +
		`"published":true,"user_id":"` + authorID + `","user":{"id":"` + authorID + `","username":"ada","display_name":"Ada","avatar_url":null}}`
}

func pageJSON(hasNext bool, cursor string, posts ...string) string {
	edges := ""
	for i, p := range posts {
		if i > 0 {
			edges += ","
		}
		edges += `{"node":` + p + `}`
	}
	next := "false"
	if hasNext {
		next = "true"
	}

	return `{"data":{"postsCollection":{"edges":[` + edges + `],"pageInfo":{"hasNextPage":` + next + `,"endCursor":"` + cursor + `"}}}}`
}

func postIDs(page *entity.PostPage) []string {
	ids := make([]string, 0, len(page.Posts))
	for _, p := range page.Posts {
		ids = append(ids, p.ID.String())
	}

	return ids
}

func TestPostRepository_FetchPageAccumulatesListing(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	query := repository.PostListQuery{PageSize: 2}

	fx.store.answer("GetPosts",
		pageJSON(true, "c2", postJSON(postA, "First"), postJSON(postB, "Second")),
		pageJSON(false, "c3", postJSON(postB, "Second edited"), postJSON(postC, "Third")),
	)

	first, err := fx.posts.FetchPage(ctx, query, "")
	require.NoError(t, err)
	assert.True(t, first.HasMore)
	assert.Equal(t, entity.PageCursor("c2"), first.NextCursor)
	require.NotNil(t, first.Posts[0].Author)
	assert.Equal(t, "ada", first.Posts[0].Author.Username)

	second, err := fx.posts.FetchPage(ctx, query, first.NextCursor)
	require.NoError(t, err)
	assert.False(t, second.HasMore)
	assert.Empty(t, second.NextCursor)

	listing, ok := fx.posts.Listing(ctx, query)
	require.True(t, ok)
	assert.Equal(t, []string{postA, postB, postC}, postIDs(listing))
	assert.Equal(t, "Second edited", listing.Posts[1].Title)
	assert.False(t, listing.HasMore)

	calls := fx.store.callsTo("GetPosts")
	require.Len(t, calls, 2)
	assert.NotContains(t, calls[0].Variables, "after")
	assert.Equal(t, "c2", calls[1].Variables["after"])
	assert.EqualValues(t, 2, calls[1].Variables["first"])
}

func TestPostRepository_FetchPageRestartsOnEmptyCursor(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	query := repository.PostListQuery{PageSize: 2}

	fx.store.answer("GetPosts",
		pageJSON(true, "c2", postJSON(postA, "First"), postJSON(postB, "Second")),
		pageJSON(false, "c1", postJSON(postC, "Third")),
	)

	_, err := fx.posts.FetchPage(ctx, query, "")
	require.NoError(t, err)
	_, err = fx.posts.FetchPage(ctx, query, "")
	require.NoError(t, err)

	listing, ok := fx.posts.Listing(ctx, query)
	require.True(t, ok)
	assert.Equal(t, []string{postC}, postIDs(listing))
}

func TestPostRepository_FetchPageUserListing(t *testing.T) {
	fx := createTestRepositories(t)
	author := uuid.MustParse(authorID)

	fx.store.answer("GetUserPosts", pageJSON(false, "", postJSON(postA, "Draft")))

	page, err := fx.posts.FetchPage(context.Background(), repository.PostListQuery{AuthorID: author, PageSize: 10}, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	calls := fx.store.callsTo("GetUserPosts")
	require.Len(t, calls, 1)
	assert.Equal(t, authorID, calls[0].Variables["userId"])
	assert.Empty(t, fx.store.callsTo("GetPosts"))
}

func TestPostRepository_FetchPageStoreError(t *testing.T) {
	fx := createTestRepositories(t)
	fx.store.answer("GetPosts", `{"data":null,"errors":[{"message":"boom"}]}`)

	_, err := fx.posts.FetchPage(context.Background(), repository.PostListQuery{PageSize: 5}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStore))

	_, ok := fx.posts.Listing(context.Background(), repository.PostListQuery{PageSize: 5})
	assert.False(t, ok)
}

func TestPostRepository_FindByIDRefetchesAndUpdatesCache(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	id := uuid.MustParse(postA)

	fx.store.answer("GetPostById",
		`{"data":{"postsCollection":{"edges":[{"node":`+postJSON(postA, "First")+`}]}}}`,
		`{"data":{"postsCollection":{"edges":[{"node":`+postJSON(postA, "Edited")+`}]}}}`,
	)

	post, err := fx.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "First", post.Title)

	again, err := fx.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Edited", again.Title)
	assert.Len(t, fx.store.callsTo("GetPostById"), 2)

	posts, _, _ := fx.cache.Stats()
	assert.Equal(t, 1, posts)
}

func TestPostRepository_FindByIDSeesDeleteFromOtherContext(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	id := uuid.MustParse(postA)
	_, authorPosts, _ := fx.scope("author-token")

	fx.store.answer("GetPostById",
		`{"data":{"postsCollection":{"edges":[{"node":`+postJSON(postA, "First")+`}]}}}`,
		`{"data":{"postsCollection":{"edges":[]}}}`,
	)
	fx.store.answer("DeletePost", `{"data":{"deleteFrompostsCollection":{"records":[{"id":"`+postA+`"}]}}}`)

	_, err := fx.posts.FindByID(ctx, id)
	require.NoError(t, err)

	deleted, err := authorPosts.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = fx.posts.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	posts, _, _ := fx.cache.Stats()
	assert.Zero(t, posts)
}

func TestPostRepository_FindByIDStoreErrorDoesNotServeCache(t *testing.T) {
	fx := createTestRepositories(t)
	id := uuid.MustParse(postA)
	fx.cache.WritePost(&entity.Post{ID: id, Title: "Stale", AuthorID: uuid.MustParse(authorID)})

	_, err := fx.posts.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStore))
}

func TestPostRepository_FetchPageToleratesMalformedAuthor(t *testing.T) {
	fx := createTestRepositories(t)
	bad := `{"id":"` + postA + `","title":"First","body":"a body of text","created_at":"2024-05-01T10:00:00+00:00",` +
		`"published":true,"user_id":"` + authorID + `","user":{"id":"not-a-uuid","username":"ada"}}`
	fx.store.answer("GetPosts", pageJSON(false, "c1", bad, postJSON(postB, "Second")))

	page, err := fx.posts.FetchPage(context.Background(), repository.PostListQuery{PageSize: 5}, "")
	require.NoError(t, err)
	require.Equal(t, []string{postA, postB}, postIDs(page))
	assert.Nil(t, page.Posts[0].Author)
	assert.Equal(t, uuid.MustParse(authorID), page.Posts[0].AuthorID)
}

func TestPostRepository_FindByIDNotFound(t *testing.T) {
	fx := createTestRepositories(t)
	fx.store.answer("GetPostById", `{"data":{"postsCollection":{"edges":[]}}}`)

	_, err := fx.posts.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestPostRepository_CreateUpdateDelete(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	id := uuid.MustParse(postA)
	author := uuid.MustParse(authorID)

	fx.store.answer("CreatePost", `{"data":{"insertIntopostsCollection":{"records":[`+postJSON(postA, "Hello world")+`]}}}`)
	created, err := fx.posts.Create(ctx, &entity.Post{Title: "Hello world", Body: "a body of text", Published: true, AuthorID: author})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, authorID, fx.store.callsTo("CreatePost")[0].Variables["user_id"])

	fx.store.answer("UpdatePost", `{"data":{"updatepostsCollection":{"records":[`+postJSON(postA, "Hello again")+`]}}}`)
	updated, err := fx.posts.Update(ctx, &entity.Post{ID: id, Title: "Hello again", Body: "a body of text", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)

	posts, _, _ := fx.cache.Stats()
	assert.Equal(t, 1, posts)

	fx.store.answer("DeletePost", `{"data":{"deleteFrompostsCollection":{"records":[{"id":"`+postA+`"}]}}}`)
	deleted, err := fx.posts.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	posts, _, _ = fx.cache.Stats()
	assert.Zero(t, posts)
}

func TestPostRepository_UpdateNoRecords(t *testing.T) {
	fx := createTestRepositories(t)
	fx.store.answer("UpdatePost", `{"data":{"updatepostsCollection":{"records":[]}}}`)

	_, err := fx.posts.Update(context.Background(), &entity.Post{ID: uuid.New(), Title: "Hello again", Body: "a body of text"})
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestPostRepository_DeleteMissingIsNotAnError(t *testing.T) {
	fx := createTestRepositories(t)
	fx.store.answer("DeletePost", `{"data":{"deleteFrompostsCollection":{"records":[]}}}`)

	deleted, err := fx.posts.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func profileJSON(bio string) string {
	return `{"id":"` + authorID + `","username":"ada","display_name":"Ada","avatar_url":null,"bio":` + bio +
		`,"website":null,"created_at":"2024-01-01T00:00:00+00:00"}`
}

func TestProfileRepository_FindByIDSeesEditFromOtherContext(t *testing.T) {
	fx := createTestRepositories(t)
	ctx := context.Background()
	id := uuid.MustParse(authorID)

	fx.store.answer("GetProfile",
		`{"data":{"profilesCollection":{"edges":[{"node":`+profileJSON(`"Hi"`)+`}]}}}`,
		`{"data":{"profilesCollection":{"edges":[{"node":`+profileJSON(`"Edited elsewhere"`)+`}]}}}`,
	)

	profile, err := fx.profiles.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hi", profile.Bio)

	profile, err = fx.profiles.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Edited elsewhere", profile.Bio)
	assert.Len(t, fx.store.callsTo("GetProfile"), 2)

	_, profiles, _ := fx.cache.Stats()
	assert.Equal(t, 1, profiles)
}

func TestProfileRepository_FindByIDNotFound(t *testing.T) {
	fx := createTestRepositories(t)
	fx.store.answer("GetProfile", `{"data":{"profilesCollection":{"edges":[]}}}`)

	_, err := fx.profiles.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProfileRepository_UpdateSendsOnlyChangedFields(t *testing.T) {
	fx := createTestRepositories(t)
	id := uuid.MustParse(authorID)
	empty := ""
	name := "ada"

	fx.store.answer("UpdateProfile", `{"data":{"updateprofilesCollection":{"records":[`+profileJSON("null")+`]}}}`)

	profile, err := fx.profiles.Update(context.Background(), id, &repository.ProfileChanges{Username: &name, Bio: &empty})
	require.NoError(t, err)
	assert.Empty(t, profile.Bio)

	calls := fx.store.callsTo("UpdateProfile")
	require.Len(t, calls, 1)
	set, ok := calls[0].Variables["set"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"username": "ada", "bio": nil}, set)

	_, profiles, _ := fx.cache.Stats()
	assert.Equal(t, 1, profiles)
}

func TestProfileRepository_UpdateNoRecords(t *testing.T) {
	fx := createTestRepositories(t)
	bio := "x"
	fx.store.answer("UpdateProfile", `{"data":{"updateprofilesCollection":{"records":[]}}}`)

	_, err := fx.profiles.Update(context.Background(), uuid.New(), &repository.ProfileChanges{Bio: &bio})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

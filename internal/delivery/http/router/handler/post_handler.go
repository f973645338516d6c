package handler

import (
	"log/slog"
	"net/http"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/view"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/service"
	"quill/internal/usecase"
	"quill/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const actionPreview = "preview"

// postForm is the submitted create/edit form.
type postForm struct {
	Title     string `form:"title"`
	Body      string `form:"body"`
	Published bool   `form:"published"`
	Action    string `form:"action"`
}

// PostHandler serves the post listing, post pages and the post editor.
type PostHandler struct {
	posts    usecase.PostUsecase
	sessions usecase.SessionUsecase
	qrcodes  service.QRCodeService
	pages    *Pages
	pageSize int
	siteURL  string
	logger   *slog.Logger
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(
	posts usecase.PostUsecase,
	sessions usecase.SessionUsecase,
	qrcodes service.QRCodeService,
	pages *Pages,
	cfg *config.Config,
	logger *slog.Logger,
) *PostHandler {
	return &PostHandler{
		posts:    posts,
		sessions: sessions,
		qrcodes:  qrcodes,
		pages:    pages,
		pageSize: cfg.Posts.PageSize,
		siteURL:  cfg.Supabase.SiteURL,
		logger:   logger,
	}
}

// Home lists the newest published posts, starting the listing over.
func (h *PostHandler) Home(c echo.Context) error {
	listing, err := h.posts.ListPosts(c.Request().Context(), h.pageSize, "")

	return h.renderHome(c, listing, err)
}

// LoadMore appends the next page to the home listing.
func (h *PostHandler) LoadMore(c echo.Context) error {
	listing, err := h.posts.LoadMorePosts(c.Request().Context(), h.pageSize)

	return h.renderHome(c, listing, err)
}

func (h *PostHandler) renderHome(c echo.Context, listing *entity.PostPage, err error) error {
	page := h.pages.New(c, "Home", view.HomeData{Posts: listing})
	if err != nil {
		if !errors.Is(err, domainerrors.ErrStore) {
			return err
		}
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Error("Failed to load posts", slog.Any("error", err))
		page.Notice = "There was an error loading posts. Please try again later."
	}

	return h.pages.Render(c, http.StatusOK, view.PageHome, page)
}

// Show renders one post. Drafts are only visible to their author.
func (h *PostHandler) Show(c echo.Context) error {
	post, err := h.visiblePost(c)
	if err != nil {
		return err
	}

	return h.pages.Render(c, http.StatusOK, view.PagePost, h.pages.New(c, post.Title, view.PostData{
		Post:    post,
		ShareQR: "/posts/" + post.ID.String() + "/qr.png",
	}))
}

// ShareQR renders a QR code linking to the post.
func (h *PostHandler) ShareQR(c echo.Context) error {
	post, err := h.visiblePost(c)
	if err != nil {
		return err
	}

	base := h.siteURL
	if base == "" {
		base = origin(c)
	}

	png, err := h.qrcodes.GenerateLinkQR(util.JoinURL(base, "/posts/"+post.ID.String()))
	if err != nil {
		return errors.Wrap(err, "generate share qr")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}

// CreatePage shows an empty editor.
func (h *PostHandler) CreatePage(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, view.PostForm{Published: true}, "")
}

// Create stores a new post for the signed-in user, or previews it.
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := requireSession(c)
	if err != nil {
		return err
	}

	form, input, err := bindPostForm(c)
	if err != nil {
		return err
	}
	input.AuthorID = userID

	if form.Action == actionPreview {
		return h.preview(c, form, input, "")
	}

	post, err := h.posts.CreatePost(c.Request().Context(), input)
	if err != nil {
		return h.formError(c, form, err, "")
	}

	return c.Redirect(http.StatusSeeOther, "/posts/"+post.ID.String())
}

// EditPage shows the editor for a post the user owns.
func (h *PostHandler) EditPage(c echo.Context) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}

	return h.renderForm(c, http.StatusOK, view.PostForm{
		Title:     post.Title,
		Body:      post.Body,
		Published: post.Published,
	}, post.ID.String())
}

// Edit saves or previews changes to a post the user owns.
func (h *PostHandler) Edit(c echo.Context) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}

	form, input, err := bindPostForm(c)
	if err != nil {
		return err
	}

	if form.Action == actionPreview {
		return h.preview(c, form, input, post.ID.String())
	}

	if _, err := h.posts.UpdatePost(c.Request().Context(), post.ID, input); err != nil {
		return h.formError(c, form, err, post.ID.String())
	}

	return c.Redirect(http.StatusSeeOther, "/posts/"+post.ID.String())
}

// Delete removes a post the user owns. Deleting a post that is already gone
// succeeds.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := h.sessions.ValidateUser(ctx, deliverycontext.GetHandle(c))
	if err != nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, err.Error())
	}
	deliverycontext.SetSession(c, session)

	post, err := h.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post != nil && !post.IsOwnedBy(session.UserID) {
		return errors.Wrap(domainerrors.ErrAuthorization, "delete post")
	}

	if _, err := h.posts.DeletePost(ctx, id); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// visiblePost loads the post of the path, hiding other users' drafts.
func (h *PostHandler) visiblePost(c echo.Context) (*entity.Post, error) {
	id, err := parsePostID(c)
	if err != nil {
		return nil, err
	}

	post, err := h.posts.GetPost(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "post not found")
	}

	if !post.Published {
		session := deliverycontext.GetSession(c)
		if session == nil || !post.IsOwnedBy(session.UserID) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "draft of another user")
		}
	}

	return post, nil
}

// ownedPost loads the post of the path and checks the signed-in user wrote it.
func (h *PostHandler) ownedPost(c echo.Context) (*entity.Post, error) {
	userID, err := requireSession(c)
	if err != nil {
		return nil, err
	}

	id, err := parsePostID(c)
	if err != nil {
		return nil, err
	}

	post, err := h.posts.GetPost(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "post not found")
	}
	if !post.IsOwnedBy(userID) {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("Edit of a post owned by another user",
			slog.String("post_id", post.ID.String()),
			slog.String("user_id", userID.String()),
		)

		return nil, errors.Wrap(domainerrors.ErrAuthorization, "edit post")
	}

	return post, nil
}

func bindPostForm(c echo.Context) (*postForm, *usecase.PostInput, error) {
	var form postForm
	if err := c.Bind(&form); err != nil {
		return nil, nil, errors.Wrap(domainerrors.ErrValidation, "bind post form")
	}

	return &form, &usecase.PostInput{
		Title:     form.Title,
		Body:      form.Body,
		Published: form.Published,
	}, nil
}

func (h *PostHandler) preview(c echo.Context, form *postForm, input *usecase.PostInput, postID string) error {
	err := h.posts.ValidatePost(input)
	data := view.PostForm{
		Title:     input.Title,
		Body:      input.Body,
		Published: form.Published,
		Errors:    validationErrors(err),
		Preview:   err == nil,
	}

	return h.renderForm(c, http.StatusOK, data, postID)
}

// formError re-renders the editor for validation errors and returns any other error.
func (h *PostHandler) formError(c echo.Context, form *postForm, err error, postID string) error {
	fields := validationErrors(err)
	if fields == nil {
		return err
	}

	return h.renderForm(c, http.StatusUnprocessableEntity, view.PostForm{
		Title:     form.Title,
		Body:      form.Body,
		Published: form.Published,
		Errors:    fields,
	}, postID)
}

func (h *PostHandler) renderForm(c echo.Context, code int, data view.PostForm, postID string) error {
	title := "Create Post"
	data.Heading = "Create a new post"
	data.Action = "/create-post"
	data.Submit = "Create Post"
	data.Cancel = "/"

	if postID != "" {
		title = "Edit Post"
		data.Heading = "Edit post"
		data.Action = "/posts/edit/" + postID
		data.Submit = "Update Post"
		data.Cancel = "/posts/" + postID
	}

	return h.pages.Render(c, code, view.PagePostForm, h.pages.New(c, title, data))
}

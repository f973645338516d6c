package handler

import (
	"log/slog"
	"net/http"

	"quill/config"
	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/view"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// profileFormInput is the submitted profile form.
type profileFormInput struct {
	Username    string `form:"username"`
	DisplayName string `form:"display_name"`
	Bio         string `form:"bio"`
	Website     string `form:"website"`
	AvatarURL   string `form:"avatar_url"`
}

// ProfileHandler serves the signed-in user's profile page.
type ProfileHandler struct {
	profiles usecase.ProfileUsecase
	posts    usecase.PostUsecase
	pages    *Pages
	pageSize int
	logger   *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(
	profiles usecase.ProfileUsecase,
	posts usecase.PostUsecase,
	pages *Pages,
	cfg *config.Config,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		posts:    posts,
		pages:    pages,
		pageSize: cfg.Posts.UserPageSize,
		logger:   logger,
	}
}

// Show renders the profile with the user's posts, drafts included.
func (h *ProfileHandler) Show(c echo.Context) error {
	profile, err := h.current(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.ListUserPosts(c.Request().Context(), profile.ID, h.pageSize, "")

	return h.render(c, http.StatusOK, profile, formOf(profile), nil, posts, err, c.QueryParam("saved") == "1")
}

// LoadMorePosts appends the next page of the user's posts.
func (h *ProfileHandler) LoadMorePosts(c echo.Context) error {
	profile, err := h.current(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.LoadMoreUserPosts(c.Request().Context(), profile.ID, h.pageSize)

	return h.render(c, http.StatusOK, profile, formOf(profile), nil, posts, err, false)
}

// Update saves the fields that differ from the stored profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	profile, err := h.current(c)
	if err != nil {
		return err
	}

	var input profileFormInput
	if err := c.Bind(&input); err != nil {
		return errors.Wrap(domainerrors.ErrValidation, "bind profile form")
	}
	form := view.ProfileForm(input)

	changes := changedFields(profile, &input)
	if *changes == (usecase.UpdateProfileInput{}) {
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	ctx := c.Request().Context()
	_, err = h.profiles.UpdateProfile(ctx, profile.ID, changes)
	if err == nil {
		return c.Redirect(http.StatusSeeOther, "/profile?saved=1")
	}

	posts, _ := h.posts.ListUserPosts(ctx, profile.ID, h.pageSize, "")

	if fields := validationErrors(err); fields != nil {
		return h.render(c, http.StatusUnprocessableEntity, profile, form, fields, posts, nil, false)
	}

	deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("Failed to update profile", slog.Any("error", err))

	var appErr domainerrors.AppError
	message := domainerrors.ErrInternalError.Message()
	if errors.As(err, &appErr) {
		message = appErr.Message()
	}

	return h.render(c, http.StatusOK, profile, form, map[string]string{"form": message}, posts, nil, false)
}

func (h *ProfileHandler) current(c echo.Context) (*entity.Profile, error) {
	session := deliverycontext.GetSession(c)
	if session == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no session")
	}

	profile, err := h.profiles.CurrentProfile(c.Request().Context(), session)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no profile")
	}

	return profile, nil
}

func (h *ProfileHandler) render(
	c echo.Context,
	code int,
	profile *entity.Profile,
	form view.ProfileForm,
	fields map[string]string,
	posts *entity.PostPage,
	postsErr error,
	saved bool,
) error {
	page := h.pages.New(c, "Profile", view.ProfileData{
		Profile: profile,
		Form:    form,
		Errors:  fields,
		Saved:   saved,
		Posts:   posts,
	})

	if postsErr != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Error("Failed to load user posts", slog.Any("error", postsErr))
		page.Notice = "There was an error loading your posts. Please try again later."
	}

	return h.pages.Render(c, code, view.PageProfile, page)
}

func formOf(p *entity.Profile) view.ProfileForm {
	return view.ProfileForm{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Website:     p.Website,
		AvatarURL:   p.AvatarURL,
	}
}

// changedFields keeps only the submitted values that differ from current.
func changedFields(current *entity.Profile, input *profileFormInput) *usecase.UpdateProfileInput {
	changed := func(next, prev string) *string {
		if next == prev {
			return nil
		}

		return &next
	}

	return &usecase.UpdateProfileInput{
		Username:    changed(input.Username, current.Username),
		DisplayName: changed(input.DisplayName, current.DisplayName),
		Bio:         changed(input.Bio, current.Bio),
		Website:     changed(input.Website, current.Website),
		AvatarURL:   changed(input.AvatarURL, current.AvatarURL),
	}
}

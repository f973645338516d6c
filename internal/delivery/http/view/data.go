package view

import (
	"quill/internal/domain/entity"
)

// Page is what every template receives. Data holds the page-specific part.
type Page struct {
	Title string
	// CSRF is the token every form posts back as csrf_token.
	CSRF string
	// User is the signed-in user's profile, nil for visitors.
	User *entity.Profile
	// Expired shows the re-authentication banner.
	Expired bool
	Notice  string
	Data    any
}

// HomeData lists published posts.
type HomeData struct {
	Posts *entity.PostPage
}

// Listing is what the "posts" partial renders.
type Listing struct {
	CSRF       string
	User       *entity.Profile
	Page       *entity.PostPage
	MoreAction string
}

// NewListing binds posts to the page that shows them.
func NewListing(page *Page, posts *entity.PostPage, moreAction string) Listing {
	if posts == nil {
		posts = &entity.PostPage{}
	}

	return Listing{CSRF: page.CSRF, User: page.User, Page: posts, MoreAction: moreAction}
}

// PostData shows one post.
type PostData struct {
	Post    *entity.Post
	ShareQR string
}

// PostForm backs the create and edit pages.
type PostForm struct {
	Action    string
	Heading   string
	Submit    string
	Cancel    string
	Title     string
	Body      string
	Published bool
	Errors    map[string]string
	// Preview renders the body instead of submitting it.
	Preview bool
}

// LoginData backs the sign-in page.
type LoginData struct {
	Email      string
	RedirectTo string
	Errors     map[string]string
	Sent       bool
	Providers  []string
}

// ProfileForm carries the submitted profile fields.
type ProfileForm struct {
	Username    string
	DisplayName string
	Bio         string
	Website     string
	AvatarURL   string
}

// ProfileData backs the profile page.
type ProfileData struct {
	Profile *entity.Profile
	Form    ProfileForm
	Errors  map[string]string
	Saved   bool
	Posts   *entity.PostPage
}

// ErrorData is shown by the error page.
type ErrorData struct {
	Code    int
	Message string
}

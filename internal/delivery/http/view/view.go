// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"quill/internal/domain/entity"
	"quill/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var files embed.FS

const excerptLength = 200

// Template names.
const (
	PageHome     = "home.html"
	PagePost     = "post.html"
	PagePostForm = "post_form.html"
	PageLogin    = "login.html"
	PageProfile  = "profile.html"
	PageError    = "error.html"
)

var pages = []string{PageHome, PagePost, PagePostForm, PageLogin, PageProfile, PageError}

// Renderer implements echo.Renderer over the embedded templates. Every page
// is parsed together with base.html and executed through its "base" template.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all pages.
func New() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("").Funcs(Funcs()).ParseFS(files, "templates/base.html", "templates/_posts.html", "templates/"+page)
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", page)
		}
		templates[page] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the page called name with data.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("unknown template %s", name)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, "base", data))
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"linebreaks":     Linebreaks,
		"excerpt":        Excerpt,
		"formatDate":     util.FormatDate,
		"formatDateTime": util.FormatDateTime,
		"avatar":         Avatar,
		"authorName":     AuthorName,
		"isOwner":        IsOwner,
		"listing":        NewListing,
	}
}

// Linebreaks escapes s and turns blank-line separated blocks into paragraphs
// and single newlines into <br>.
func Linebreaks(s string) template.HTML {
	s = template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))

	paragraphs := strings.Split(s, "\n\n")
	var result []string

	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			p = strings.ReplaceAll(p, "\n", "<br>")
			result = append(result, "<p>"+p+"</p>")
		}
	}

	return template.HTML(strings.Join(result, "\n")) //nolint:gosec // input escaped above
}

// Excerpt returns the first 200 characters of body, marking the cut with "...".
func Excerpt(body string) string {
	if utf8.RuneCountInString(body) <= excerptLength {
		return body
	}

	return string([]rune(body)[:excerptLength]) + "..."
}

// Avatar returns the profile's http(s) avatar or a generated initial.
func Avatar(p *entity.Profile) template.URL {
	var src, name string
	if p != nil {
		src, name = p.AvatarURL, p.Name()
	}
	if !strings.HasPrefix(src, "https://") && !strings.HasPrefix(src, "http://") {
		src = ""
	}

	return template.URL(util.AvatarURL(src, name)) //nolint:gosec // http(s) or generated data URL
}

// AuthorName is what a post shows as its byline.
func AuthorName(p *entity.Post) string {
	if p == nil || p.Author == nil || p.Author.Name() == "" {
		return "Anonymous"
	}

	return p.Author.Name()
}

// IsOwner reports whether the signed-in user authored post.
func IsOwner(user *entity.Profile, post *entity.Post) bool {
	return user != nil && post.IsOwnedBy(user.ID)
}

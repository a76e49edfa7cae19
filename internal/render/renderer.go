// Package render produces the server-rendered HTML pages. All values are
// escaped by html/template; post bodies go through RichText.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/philly/medium-blog/internal/platform/validator"
	"github.com/philly/medium-blog/internal/posts/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	pageList     = "list"
	pageDetail   = "detail"
	pageNotFound = "not_found"
	pageError    = "error"
)

// PublishedLayout formats post timestamps on the detail page.
const PublishedLayout = "Jan 2, 2006, 3:04 PM MST"

// Renderer renders whole pages.
type Renderer struct {
	site     string
	images   ImageURLs
	richText *RichText
	pages    map[string]*template.Template
}

// New parses the embedded templates. images resolves post and author images;
// it may be nil, which leaves images out.
func New(siteTitle string, images ImageURLs) (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageList, pageDetail, pageNotFound, pageError} {
		tmpl, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html",
			"templates/comments.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		site:     siteTitle,
		images:   images,
		richText: NewRichText(images),
		pages:    pages,
	}, nil
}

type layoutData struct {
	Site        string
	Title       string
	Description string
}

type postCard struct {
	Title       string
	Href        string
	Description string
	MainImage   string
	AuthorName  string
	AuthorImage string
}

type postView struct {
	Title       string
	Description string
	MainImage   string
	AuthorName  string
	AuthorImage string
	PublishedAt string
	Body        template.HTML
}

type commentView struct {
	Name string
	Text string
}

// List renders the home page with every post in the given order. A post
// whose slug cannot be routed is still listed, just without a link.
func (r *Renderer) List(w io.Writer, posts []domain.PostSummary) error {
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postCard{
			Title:       p.Title,
			Href:        postHref(p.Slug),
			Description: p.Description,
			MainImage:   r.imageURL(p.MainImage, 600),
			AuthorName:  p.Author.Name,
			AuthorImage: r.imageURL(p.Author.Image, 96),
		})
	}

	return r.execute(w, pageList, struct {
		layoutData
		Posts []postCard
	}{
		layoutData: layoutData{Site: r.site},
		Posts:      cards,
	})
}

func postHref(slug string) string {
	if validator.ValidateSlug(slug) != nil {
		return ""
	}
	return "/post/" + slug
}

// Detail renders a post with its approved comments and the comment form.
func (r *Renderer) Detail(w io.Writer, post *domain.Post, form CommentForm) error {
	view := postView{
		Title:       post.Title,
		Description: post.Description,
		MainImage:   r.imageURL(post.MainImage, 1600),
		AuthorName:  post.Author.Name,
		AuthorImage: r.imageURL(post.Author.Image, 96),
		Body:        r.richText.Render(post.Body),
	}
	if !post.CreatedAt.IsZero() {
		view.PublishedAt = post.CreatedAt.UTC().Format(PublishedLayout)
	}

	comments := make([]commentView, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, commentView{Name: c.Name, Text: c.Text})
	}

	return r.execute(w, pageDetail, struct {
		layoutData
		Post     postView
		Form     CommentForm
		Comments []commentView
	}{
		layoutData: layoutData{Site: r.site, Title: post.Title, Description: post.Description},
		Post:       view,
		Form:       form,
		Comments:   comments,
	})
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w io.Writer) error {
	return r.execute(w, pageNotFound, layoutData{Site: r.site, Title: "Not found"})
}

// Error renders the generic error page for status.
func (r *Renderer) Error(w io.Writer, status int) error {
	return r.execute(w, pageError, struct {
		layoutData
		Status int
	}{
		layoutData: layoutData{Site: r.site, Title: "Error"},
		Status:     status,
	})
}

func (r *Renderer) execute(w io.Writer, page string, data any) error {
	if err := r.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

func (r *Renderer) imageURL(ref domain.ImageRef, width int) string {
	if r.images == nil || ref == "" {
		return ""
	}
	return r.images.URLFor(string(ref)).Width(width).AutoFormat().String()
}

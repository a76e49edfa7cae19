package domain

import (
	"time"
)

// ImageRef is an opaque asset reference. It only becomes a URL at render time.
type ImageRef string

// Author is the denormalized author shown next to a post.
type Author struct {
	Name  string
	Image ImageRef
}

// PostSummary is what the list page shows for each post.
type PostSummary struct {
	ID          string
	Title       string
	Slug        string
	Description string
	MainImage   ImageRef
	Author      Author
}

// Post is a fully loaded post as shown on its detail page.
// Comments only ever holds approved comments of this post.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Description string
	MainImage   ImageRef
	Author      Author
	Body        []Block
	CreatedAt   time.Time
	Comments    []Comment
}

// Summary projects a post down to its list view.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		MainImage:   p.MainImage,
		Author:      p.Author,
	}
}

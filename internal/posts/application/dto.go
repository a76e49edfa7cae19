package application

import (
	"time"

	"github.com/philly/medium-blog/internal/posts/domain"
)

// Wire shapes of the three content queries. Validation tags define what a
// result must contain before it reaches the renderers.

// slugDTO is optional everywhere: drafts and unpublished posts may have none.
type slugDTO struct {
	Current string `json:"current"`
}

func (s *slugDTO) current() string {
	if s == nil {
		return ""
	}
	return s.Current
}

type referenceDTO struct {
	Ref string `json:"_ref"`
}

type imageDTO struct {
	Asset *referenceDTO `json:"asset"`
	Alt   string        `json:"alt"`
}

func (i *imageDTO) ref() domain.ImageRef {
	if i == nil || i.Asset == nil {
		return ""
	}
	return domain.ImageRef(i.Asset.Ref)
}

type authorDTO struct {
	Name  string    `json:"name"`
	Image *imageDTO `json:"image"`
}

func (a *authorDTO) toDomain() domain.Author {
	if a == nil {
		return domain.Author{}
	}
	return domain.Author{Name: a.Name, Image: a.Image.ref()}
}

type postSummaryDTO struct {
	ID          string     `json:"_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Slug        *slugDTO   `json:"slug"`
	Description string     `json:"description"`
	MainImage   *imageDTO  `json:"mainImage"`
	Author      *authorDTO `json:"author"`
}

func (d postSummaryDTO) toDomain() domain.PostSummary {
	return domain.PostSummary{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug.current(),
		Description: d.Description,
		MainImage:   d.MainImage.ref(),
		Author:      d.Author.toDomain(),
	}
}

type postPathDTO struct {
	ID   string   `json:"_id" validate:"required"`
	Slug *slugDTO `json:"slug"`
}

type spanDTO struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

type markDefDTO struct {
	Key  string `json:"_key" validate:"required"`
	Type string `json:"_type" validate:"required"`
	Href string `json:"href"`
}

type blockDTO struct {
	Key      string        `json:"_key"`
	Type     string        `json:"_type" validate:"required"`
	Style    string        `json:"style"`
	ListItem string        `json:"listItem"`
	Level    int           `json:"level"`
	Children []spanDTO     `json:"children" validate:"dive"`
	MarkDefs []markDefDTO  `json:"markDefs" validate:"dive"`
	Asset    *referenceDTO `json:"asset"`
	Alt      string        `json:"alt"`
}

func (b blockDTO) toDomain() domain.Block {
	block := domain.Block{
		Key:      b.Key,
		Type:     b.Type,
		Style:    b.Style,
		ListItem: b.ListItem,
		Level:    b.Level,
		Alt:      b.Alt,
	}
	if b.Asset != nil {
		block.Image = domain.ImageRef(b.Asset.Ref)
	}
	for _, s := range b.Children {
		block.Children = append(block.Children, domain.Span{Text: s.Text, Marks: s.Marks})
	}
	for _, m := range b.MarkDefs {
		block.MarkDefs = append(block.MarkDefs, domain.MarkDef{Key: m.Key, Type: m.Type, Href: m.Href})
	}
	return block
}

type commentDTO struct {
	ID        string       `json:"_id" validate:"required"`
	CreatedAt time.Time    `json:"_createdAt"`
	Name      string       `json:"name"`
	Comment   string       `json:"comment"`
	Approved  bool         `json:"approved"`
	Post      referenceDTO `json:"post"`
}

type postDTO struct {
	postSummaryDTO
	CreatedAt time.Time    `json:"_createdAt"`
	Body      []blockDTO   `json:"body" validate:"dive"`
	Comments  []commentDTO `json:"comments" validate:"dive"`
}

func (d postDTO) toDomain() *domain.Post {
	summary := d.postSummaryDTO.toDomain()

	post := &domain.Post{
		ID:          summary.ID,
		Title:       summary.Title,
		Slug:        summary.Slug,
		Description: summary.Description,
		MainImage:   summary.MainImage,
		Author:      summary.Author,
		CreatedAt:   d.CreatedAt,
		Body:        make([]domain.Block, 0, len(d.Body)),
	}
	for _, b := range d.Body {
		post.Body = append(post.Body, b.toDomain())
	}

	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, domain.Comment{
			ID:        c.ID,
			PostID:    c.Post.Ref,
			Name:      c.Name,
			Text:      c.Comment,
			Approved:  c.Approved,
			CreatedAt: c.CreatedAt,
		})
	}
	post.Comments = domain.VisibleComments(post.ID, comments)
	return post
}

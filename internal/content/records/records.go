// Package records holds the raw documents kept by self-hosted content stores
// and shapes them into the JSON the fixed content queries project.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/philly/medium-blog/internal/content"
)

type Author struct {
	ID    string
	Name  string
	Image string
}

// Post keeps Body as the portable-text JSON array, verbatim.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Description string
	MainImage   string
	AuthorID    string
	Body        json.RawMessage
	CreatedAt   time.Time
}

type Comment struct {
	ID        string
	PostID    string
	Name      string
	Email     string
	Comment   string
	Approved  bool
	CreatedAt time.Time
}

// ErrUnknownType is returned when a create names a document type the store
// has no schema for.
var ErrUnknownType = errors.New("unknown document type")

func imageDocument(ref string) any {
	if ref == "" {
		return nil
	}
	return map[string]any{
		"_type": "image",
		"asset": map[string]any{"_type": "reference", "_ref": ref},
	}
}

func authorDocument(a *Author) any {
	if a == nil {
		return nil
	}
	return map[string]any{"name": a.Name, "image": imageDocument(a.Image)}
}

// slugDocument is null for posts without a slug, as the hosted store
// projects a missing field.
func slugDocument(slug string) any {
	if slug == "" {
		return nil
	}
	return map[string]any{"_type": "slug", "current": slug}
}

// SummaryDocument is a post as projected by the list-post-summaries query.
func SummaryDocument(p Post, a *Author) content.Document {
	return content.Document{
		"_id":         p.ID,
		"title":       p.Title,
		"slug":        slugDocument(p.Slug),
		"author":      authorDocument(a),
		"mainImage":   imageDocument(p.MainImage),
		"description": p.Description,
	}
}

// PathDocument is a post as projected by the list-post-slugs query.
func PathDocument(p Post) content.Document {
	return content.Document{
		"_id":  p.ID,
		"slug": slugDocument(p.Slug),
	}
}

// DetailDocument is a post as projected by the post-by-slug query. comments
// must already be restricted to the approved comments of p.
func DetailDocument(p Post, a *Author, comments []Comment) content.Document {
	body := p.Body
	if len(body) == 0 {
		body = json.RawMessage("[]")
	}

	projected := make([]content.Document, 0, len(comments))
	for _, c := range comments {
		projected = append(projected, CommentDocument(c))
	}

	doc := SummaryDocument(p, a)
	doc["_createdAt"] = p.CreatedAt.UTC().Format(time.RFC3339)
	doc["body"] = body
	doc["comments"] = projected
	return doc
}

// CommentDocument is a comment as read back under a post. It never carries
// the email address.
func CommentDocument(c Comment) content.Document {
	return content.Document{
		"_id":        c.ID,
		"_createdAt": c.CreatedAt.UTC().Format(time.RFC3339),
		"name":       c.Name,
		"comment":    c.Comment,
		"approved":   c.Approved,
		"post":       map[string]any{"_type": "reference", "_ref": c.PostID},
	}
}

// StoredCommentDocument is the full stored comment, as returned to the writer
// that created it.
func StoredCommentDocument(c Comment) content.Document {
	doc := content.Document{
		"_type":      content.CommentType,
		"_id":        c.ID,
		"_createdAt": c.CreatedAt.UTC().Format(time.RFC3339),
		"post":       map[string]any{"_type": "reference", "_ref": c.PostID},
		"name":       c.Name,
		"email":      c.Email,
		"comment":    c.Comment,
	}
	if c.Approved {
		doc["approved"] = true
	}
	return doc
}

// ApprovedFor keeps the approved comments of postID, in order.
func ApprovedFor(postID string, comments []Comment) []Comment {
	out := make([]Comment, 0)
	for _, c := range comments {
		if c.Approved && c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// CommentFromDocument reads a create request into a Comment. Only the
// document type and the post reference are checked; text fields may be
// missing and become empty strings. The result is never approved.
func CommentFromDocument(doc content.Document) (Comment, error) {
	if doc.Type() != content.CommentType {
		return Comment{}, fmt.Errorf("%w: %q", ErrUnknownType, doc.Type())
	}

	ref, ok := doc["post"].(map[string]any)
	if !ok {
		return Comment{}, errors.New("comment.post must be a reference")
	}
	postID, _ := ref["_ref"].(string)
	if postID == "" {
		return Comment{}, errors.New("comment.post._ref is required")
	}

	str := func(key string) string {
		v, _ := doc[key].(string)
		return v
	}

	return Comment{
		PostID:  postID,
		Name:    str("name"),
		Email:   str("email"),
		Comment: str("comment"),
	}, nil
}

package domain

import (
	"strings"

	"github.com/philly/medium-blog/internal/content"
)

// Submission is what a reader sends to comment on a post. PostID is the
// post's store id, not its slug.
type Submission struct {
	PostID  string
	Name    string
	Email   string
	Comment string
}

// MissingFields lists the fields a reader left blank. The browser form marks
// them required; the server only uses this for logging and does not reject.
func (s Submission) MissingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"_id", s.PostID},
		{"name", s.Name},
		{"email", s.Email},
		{"comment", s.Comment},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Document builds the pending comment record. approved is left unset: only
// a moderator in the content store turns it on.
func (s Submission) Document() content.Document {
	return content.Document{
		"_type": content.CommentType,
		"post": map[string]any{
			"_type": "reference",
			"_ref":  s.PostID,
		},
		"name":    s.Name,
		"email":   s.Email,
		"comment": s.Comment,
	}
}

// Receipt is what the store reported back for a created comment.
type Receipt struct {
	CommentID string
	PostID    string
}

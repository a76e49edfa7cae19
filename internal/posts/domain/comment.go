package domain

import "time"

// Comment is a reader comment as shown under a post. Email addresses never
// reach this type.
type Comment struct {
	ID        string
	PostID    string
	Name      string
	Text      string
	Approved  bool
	CreatedAt time.Time
}

// VisibleTo reports whether c may be listed under the post with postID.
func (c Comment) VisibleTo(postID string) bool {
	return c.Approved && c.PostID == postID
}

// VisibleComments keeps the comments that may be listed under postID, in
// their original order.
func VisibleComments(postID string, comments []Comment) []Comment {
	visible := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.VisibleTo(postID) {
			visible = append(visible, c)
		}
	}
	return visible
}

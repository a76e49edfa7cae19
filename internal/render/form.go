package render

import (
	"github.com/philly/medium-blog/internal/comments/domain"
)

// FailedSubmissionMessage is shown above the form after a failed submit.
const FailedSubmissionMessage = "Your comment could not be submitted. Please try again."

// CommentForm is the comment form under a post in a given state. In the
// failed state the reader's values are kept so they can resend them.
type CommentForm struct {
	Action  string
	PostID  string
	State   domain.FormState
	Name    string
	Email   string
	Comment string
	Error   string
}

// NewCommentForm returns the idle form for a post.
func NewCommentForm(postID, slug string) CommentForm {
	return CommentForm{
		Action: "/post/" + slug + "/comment",
		PostID: postID,
		State:  domain.FormIdle,
	}
}

// Submitted reports whether the thank-you note replaces the form.
func (f CommentForm) Submitted() bool {
	return !f.State.ShowsForm()
}

// Failed reports whether the last submit failed.
func (f CommentForm) Failed() bool {
	return f.State == domain.FormFailed
}

package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/philly/medium-blog/internal/comments/application"
	"github.com/philly/medium-blog/internal/comments/domain"
	"github.com/philly/medium-blog/internal/platform/apperror"
)

// maxCommentBody caps the size of a comment request body.
const maxCommentBody = 64 << 10

// Messages of the comment API. Clients match on them.
const (
	MessageCommentSubmitted = "Comment Submitted"
	MessageCommentFailed    = "Comment Couldn't Submit"
)

// ErrInvalidCommentPayload is returned for bodies that are not a JSON object.
var ErrInvalidCommentPayload = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeInvalidPayload,
	"request body must be a JSON object",
	http.StatusBadRequest,
)

// CreateCommentRequest is the comment API payload. _id is the post's id.
type CreateCommentRequest struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

// CommentResponse is returned for both outcomes of a submission. Err is only
// set on failure.
type CommentResponse struct {
	Message string `json:"message"`
	Err     string `json:"err,omitempty"`
}

// CommentsHandler serves the comment submission API.
type CommentsHandler struct {
	*BaseHandler
	service *application.CommentsService
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(base *BaseHandler, service *application.CommentsService) *CommentsHandler {
	return &CommentsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateComment handles POST /api/createComment. Missing fields are not
// rejected; the record is created with whatever the reader sent.
func (h *CommentsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCommentRequest(http.MaxBytesReader(w, r.Body, maxCommentBody))
	if err != nil {
		h.HandleError(w, r, ErrInvalidCommentPayload.WithDetails(err.Error()))
		return
	}

	_, err = h.service.Submit(r.Context(), domain.Submission{
		PostID:  req.ID,
		Name:    req.Name,
		Email:   req.Email,
		Comment: req.Comment,
	})
	if err != nil {
		h.WriteJSONResponse(w, r, CommentResponse{Message: MessageCommentFailed, Err: err.Error()}, http.StatusInternalServerError)
		return
	}

	h.WriteJSONResponse(w, r, CommentResponse{Message: MessageCommentSubmitted}, http.StatusOK)
}

// decodeCommentRequest accepts the payload as a JSON object or as a JSON
// string holding that object, which is what browser clients sending
// JSON.stringify output as text/plain produce.
func decodeCommentRequest(body io.Reader) (CreateCommentRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return CreateCommentRequest{}, err
	}
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return CreateCommentRequest{}, err
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	if len(raw) == 0 || raw[0] != '{' {
		return CreateCommentRequest{}, errors.New("expected a JSON object")
	}

	var req CreateCommentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return CreateCommentRequest{}, err
	}
	return req, nil
}

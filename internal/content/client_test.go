package content_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/platform/apperror"
	"github.com/philly/medium-blog/internal/platform/logger"
)

type stubStore struct {
	result    string
	queryErr  error
	createErr error
	lastQuery content.Query
	lastParam content.Params
	created   []content.Document
}

func (s *stubStore) Query(_ context.Context, q content.Query, params content.Params) (json.RawMessage, error) {
	s.lastQuery = q
	s.lastParam = params
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return json.RawMessage(s.result), nil
}

func (s *stubStore) Create(_ context.Context, doc content.Document) (content.Document, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, doc)
	stored := content.Document{"_id": "generated"}
	for k, v := range doc {
		stored[k] = v
	}
	return stored, nil
}

type summary struct {
	ID    string `json:"_id" validate:"required"`
	Title string `json:"title" validate:"required"`
	Slug  struct {
		Current string `json:"current" validate:"required"`
	} `json:"slug"`
}

func newClient(store content.Store) *content.Client {
	return content.NewClient(store, content.ImageConfig{ProjectID: "proj", Dataset: "production"}, logger.Nop())
}

func TestFetchDecodesResult(t *testing.T) {
	store := &stubStore{result: `[{"_id":"p1","title":"One","slug":{"current":"one"}},{"_id":"p2","title":"Two","slug":{"current":"two"}}]`}
	client := newClient(store)

	var posts []summary
	err := client.Fetch(context.Background(), content.ListPostSummaries, nil, &posts)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "one", posts[0].Slug.Current)
	assert.Equal(t, "two", posts[1].Slug.Current)
	assert.Equal(t, content.ListPostSummaries.Name, store.lastQuery.Name)
}

func TestFetchPassesParams(t *testing.T) {
	store := &stubStore{result: `{"_id":"p1","title":"One","slug":{"current":"one"}}`}
	client := newClient(store)

	var post summary
	require.NoError(t, client.Fetch(context.Background(), content.PostBySlug, content.Params{"slug": "one"}, &post))
	assert.Equal(t, "one", store.lastParam["slug"])
}

func TestFetchNullResult(t *testing.T) {
	client := newClient(&stubStore{result: "null"})

	var post summary
	err := client.Fetch(context.Background(), content.PostBySlug, content.Params{"slug": "missing"}, &post)

	assert.ErrorIs(t, err, content.ErrNoResult)
}

func TestFetchStoreFailureIsQueryError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	client := newClient(&stubStore{queryErr: cause})

	var posts []summary
	err := client.Fetch(context.Background(), content.ListPostSummaries, nil, &posts)

	assert.ErrorIs(t, err, content.ErrQuery)
	assert.ErrorIs(t, err, cause)
}

func TestFetchSchemaMismatch(t *testing.T) {
	tests := []struct {
		name   string
		result string
		detail string
	}{
		{
			name:   "missing required field",
			result: `[{"_id":"p1","title":"One","slug":{"current":""}}]`,
			detail: `[0].slug.current: failed "required"`,
		},
		{
			name:   "wrong JSON type",
			result: `[{"_id":"p1","title":42,"slug":{"current":"one"}}]`,
			detail: "title",
		},
		{
			name:   "null element",
			result: `[null]`,
			detail: "unexpected null element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(&stubStore{result: tt.result})

			var posts []*summary
			err := client.Fetch(context.Background(), content.ListPostSummaries, nil, &posts)

			require.ErrorIs(t, err, content.ErrSchemaMismatch)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			details, ok := appErr.Details.([]string)
			require.True(t, ok, "details should list offending fields")
			require.NotEmpty(t, details)
			assert.Contains(t, details[0], tt.detail)
		})
	}
}

func TestCreate(t *testing.T) {
	store := &stubStore{}
	client := newClient(store)

	stored, err := client.Create(context.Background(), content.Document{"_type": "comment", "name": "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "generated", stored.ID())
	assert.Len(t, store.created, 1)
}

func TestCreateRequiresType(t *testing.T) {
	store := &stubStore{}
	client := newClient(store)

	_, err := client.Create(context.Background(), content.Document{"name": "Alice"})

	assert.ErrorIs(t, err, content.ErrCreate)
	assert.Empty(t, store.created)
}

func TestCreateStoreFailure(t *testing.T) {
	cause := errors.New("401 unauthorized")
	client := newClient(&stubStore{createErr: cause})

	_, err := client.Create(context.Background(), content.Document{"_type": "comment"})

	assert.ErrorIs(t, err, content.ErrCreate)
	assert.ErrorIs(t, err, cause)
}

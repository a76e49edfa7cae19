package memstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/medium-blog/internal/adapters/memstore"
	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/content/records"
	"github.com/philly/medium-blog/internal/platform/logger"
	"github.com/philly/medium-blog/internal/platform/seeder"
)

func seeded(t *testing.T) *memstore.Store {
	t.Helper()
	store := memstore.New()
	require.NoError(t, seeder.NewOrchestrator(logger.Nop(), store, seeder.Demo{}).RunAll(context.Background()))
	return store
}

func TestQueryListSummariesKeepsInsertionOrder(t *testing.T) {
	store := seeded(t)

	raw, err := store.Query(context.Background(), content.ListPostSummaries, nil)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "post-welcome", rows[0]["_id"])
	assert.Equal(t, "post-compilers", rows[1]["_id"])
	assert.Equal(t, "Ada Byron", rows[0]["author"].(map[string]any)["name"])
	assert.Equal(t, 1, store.QueryCount(content.ListPostSummaries.Name))
}

func TestQueryPostBySlugProjectsApprovedCommentsOnly(t *testing.T) {
	store := seeded(t)

	raw, err := store.Query(context.Background(), content.PostBySlug, content.Params{"slug": "welcome-to-the-blog"})
	require.NoError(t, err)

	var post map[string]any
	require.NoError(t, json.Unmarshal(raw, &post))
	comments := post["comments"].([]any)
	require.Len(t, comments, 1)
	first := comments[0].(map[string]any)
	assert.Equal(t, "comment-1", first["_id"])
	assert.NotContains(t, first, "email")
}

func TestQueryPostBySlugMissingIsNull(t *testing.T) {
	store := seeded(t)

	raw, err := store.Query(context.Background(), content.PostBySlug, content.Params{"slug": "nope"})
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(raw))
}

func TestQueryUnknownName(t *testing.T) {
	_, err := memstore.New().Query(context.Background(), content.Query{Name: "everything"}, nil)
	assert.Error(t, err)
}

func TestCreateComment(t *testing.T) {
	store := seeded(t)
	before := len(store.Comments())

	stored, err := store.Create(context.Background(), content.Document{
		"_type":   "comment",
		"post":    map[string]any{"_type": "reference", "_ref": "post-compilers"},
		"name":    "Alice",
		"email":   "a@x.com",
		"comment": "Great post",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID())
	assert.NotContains(t, stored, "approved")

	all := store.Comments()
	require.Len(t, all, before+1)
	assert.False(t, all[len(all)-1].Approved)
}

func TestCreateRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  content.Document
	}{
		{"unknown type", content.Document{"_type": "post"}},
		{"missing reference", content.Document{"_type": "comment", "name": "x"}},
		{"dangling reference", content.Document{"_type": "comment", "post": map[string]any{"_ref": "ghost"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seeded(t)
			_, err := store.Create(context.Background(), tt.doc)
			assert.Error(t, err)
		})
	}

	_, err := seeded(t).Create(context.Background(), content.Document{"_type": "post"})
	assert.ErrorIs(t, err, records.ErrUnknownType)
}

func TestFailQueries(t *testing.T) {
	store := seeded(t)
	outage := errors.New("503 service unavailable")
	store.FailQueries(outage)

	_, err := store.Query(context.Background(), content.ListPostSlugs, nil)
	assert.ErrorIs(t, err, outage)

	_, err = store.Create(context.Background(), content.Document{"_type": "comment"})
	assert.ErrorIs(t, err, outage)

	store.FailQueries(nil)
	_, err = store.Query(context.Background(), content.ListPostSlugs, nil)
	assert.NoError(t, err)
}

func TestApprove(t *testing.T) {
	store := seeded(t)

	assert.True(t, store.Approve("comment-2"))
	assert.False(t, store.Approve("missing"))

	raw, err := store.Query(context.Background(), content.PostBySlug, content.Params{"slug": "welcome-to-the-blog"})
	require.NoError(t, err)
	var post map[string]any
	require.NoError(t, json.Unmarshal(raw, &post))
	assert.Len(t, post["comments"], 2)
}

func TestFailCreatesLeavesReadsWorking(t *testing.T) {
	store := seeded(t)
	store.FailCreates(errors.New("read-only token"))

	_, err := store.Query(context.Background(), content.ListPostSlugs, nil)
	require.NoError(t, err)

	_, err = store.Create(context.Background(), content.Document{
		"_type": "comment",
		"post":  map[string]any{"_ref": "post-welcome"},
	})
	assert.Error(t, err)
}

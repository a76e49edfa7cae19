// Package memstore is an in-process content store. It answers the fixed
// content queries from records held in memory and backs tests and the
// "memory" store mode.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/content/records"
)

// Store keeps posts in insertion order, which is the order queries return.
type Store struct {
	mu       sync.RWMutex
	authors  map[string]records.Author
	posts    []records.Post
	comments []records.Comment
	queries  map[string]int
	failWith error
	failSave error
	now      func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		authors: make(map[string]records.Author),
		queries: make(map[string]int),
		now:     time.Now,
	}
}

// FailQueries makes every following Query and Create return err. Pass nil to
// recover. Used to simulate store outages.
func (s *Store) FailQueries(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// FailCreates makes only Create fail, leaving reads working.
func (s *Store) FailCreates(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = err
}

// UpsertAuthor implements seeder.Target.
func (s *Store) UpsertAuthor(_ context.Context, a records.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors[a.ID] = a
	return nil
}

// UpsertPost implements seeder.Target.
func (s *Store) UpsertPost(_ context.Context, p records.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			return nil
		}
	}
	s.posts = append(s.posts, p)
	return nil
}

// UpsertComment implements seeder.Target.
func (s *Store) UpsertComment(_ context.Context, c records.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == c.ID {
			s.comments[i] = c
			return nil
		}
	}
	s.comments = append(s.comments, c)
	return nil
}

// Approve flips a comment to approved, the way a moderator would in the
// hosted studio. It reports whether the comment exists.
func (s *Store) Approve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments[i].Approved = true
			return true
		}
	}
	return false
}

// Comments returns a copy of every stored comment, approved or not.
func (s *Store) Comments() []records.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]records.Comment(nil), s.comments...)
}

// QueryCount reports how often the named query ran.
func (s *Store) QueryCount(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries[name]
}

// Query implements content.Store.
func (s *Store) Query(_ context.Context, q content.Query, params content.Params) (json.RawMessage, error) {
	s.mu.Lock()
	s.queries[q.Name]++
	failWith := s.failWith
	s.mu.Unlock()

	if failWith != nil {
		return nil, failWith
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result any
	switch q.Name {
	case content.ListPostSummaries.Name:
		docs := make([]content.Document, 0, len(s.posts))
		for _, p := range s.posts {
			docs = append(docs, records.SummaryDocument(p, s.author(p.AuthorID)))
		}
		result = docs

	case content.ListPostSlugs.Name:
		docs := make([]content.Document, 0, len(s.posts))
		for _, p := range s.posts {
			docs = append(docs, records.PathDocument(p))
		}
		result = docs

	case content.PostBySlug.Name:
		slug, _ := params["slug"].(string)
		for _, p := range s.posts {
			if p.Slug == slug {
				result = records.DetailDocument(p, s.author(p.AuthorID), records.ApprovedFor(p.ID, s.comments))
				break
			}
		}

	default:
		return nil, fmt.Errorf("memstore: unsupported query %q", q.Name)
	}

	return json.Marshal(result)
}

// Create implements content.Store. Only comments are accepted and their post
// reference must resolve, like a strong reference in the hosted store.
func (s *Store) Create(_ context.Context, doc content.Document) (content.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	if s.failSave != nil {
		return nil, s.failSave
	}

	c, err := records.CommentFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("memstore: %w", err)
	}
	if !s.hasPost(c.PostID) {
		return nil, fmt.Errorf("memstore: reference to missing document %q", c.PostID)
	}

	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	s.comments = append(s.comments, c)

	return records.StoredCommentDocument(c), nil
}

// Ping reports the simulated outage, if any.
func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

func (s *Store) author(id string) *records.Author {
	a, ok := s.authors[id]
	if !ok {
		return nil
	}
	return &a
}

func (s *Store) hasPost(id string) bool {
	for _, p := range s.posts {
		if p.ID == id {
			return true
		}
	}
	return false
}

var _ content.Store = (*Store)(nil)

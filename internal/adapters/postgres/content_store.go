package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/philly/medium-blog/internal/content"
	"github.com/philly/medium-blog/internal/content/records"
	"github.com/philly/medium-blog/internal/platform/postgres"
)

const foreignKeyViolation = "23503"

// ContentStore implements content.Store on PostgreSQL. It answers the named
// queries with the same JSON a hosted store would return.
type ContentStore struct {
	postgres.BaseRepository
}

// NewContentStore creates a new PostgreSQL content store
func NewContentStore(db *pgxpool.Pool) *ContentStore {
	return &ContentStore{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx returns a store that runs inside tx
func (s *ContentStore) WithTx(tx pgx.Tx) *ContentStore {
	return &ContentStore{
		BaseRepository: s.BaseRepository.WithTx(tx),
	}
}

// Query implements content.Store
func (s *ContentStore) Query(ctx context.Context, q content.Query, params content.Params) (json.RawMessage, error) {
	var (
		result any
		err    error
	)

	switch q.Name {
	case content.ListPostSummaries.Name:
		result, err = s.listSummaries(ctx)
	case content.ListPostSlugs.Name:
		result, err = s.listSlugs(ctx)
	case content.PostBySlug.Name:
		slug, _ := params["slug"].(string)
		result, err = s.postBySlug(ctx, slug)
	default:
		return nil, fmt.Errorf("ContentStore.Query: unsupported query %q", q.Name)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(result)
}

func (s *ContentStore) postColumns() sq.SelectBuilder {
	return s.SB.
		Select(
			"p.id", "p.title", "p.slug", "p.description", "p.main_image",
			"p.body", "p.created_at", "a.id", "a.name", "a.image",
		).
		From("posts p").
		LeftJoin("authors a ON a.id = p.author_id")
}

func scanPost(row pgx.Row) (records.Post, *records.Author, error) {
	var (
		p                           records.Post
		body                        []byte
		authorID, authorName, image *string
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.MainImage,
		&body, &p.CreatedAt, &authorID, &authorName, &image,
	); err != nil {
		return records.Post{}, nil, err
	}
	p.Body = body

	if authorID == nil {
		return p, nil, nil
	}
	p.AuthorID = *authorID
	a := &records.Author{ID: *authorID}
	if authorName != nil {
		a.Name = *authorName
	}
	if image != nil {
		a.Image = *image
	}
	return p, a, nil
}

func (s *ContentStore) listSummaries(ctx context.Context) ([]content.Document, error) {
	query, args, err := s.postColumns().OrderBy("p.seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContentStore.listSummaries: build query: %w", err)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ContentStore.listSummaries: %w", err)
	}
	defer rows.Close()

	docs := make([]content.Document, 0)
	for rows.Next() {
		p, a, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("ContentStore.listSummaries: scan: %w", err)
		}
		docs = append(docs, records.SummaryDocument(p, a))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ContentStore.listSummaries: rows: %w", err)
	}
	return docs, nil
}

func (s *ContentStore) listSlugs(ctx context.Context) ([]content.Document, error) {
	query, args, err := s.SB.Select("id", "slug").From("posts").OrderBy("seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContentStore.listSlugs: build query: %w", err)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ContentStore.listSlugs: %w", err)
	}
	defer rows.Close()

	docs := make([]content.Document, 0)
	for rows.Next() {
		var p records.Post
		if err := rows.Scan(&p.ID, &p.Slug); err != nil {
			return nil, fmt.Errorf("ContentStore.listSlugs: scan: %w", err)
		}
		docs = append(docs, records.PathDocument(p))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ContentStore.listSlugs: rows: %w", err)
	}
	return docs, nil
}

// postBySlug returns nil, which marshals to null, when no post matches.
func (s *ContentStore) postBySlug(ctx context.Context, slug string) (content.Document, error) {
	if slug == "" {
		return nil, nil
	}

	query, args, err := s.postColumns().Where(sq.Eq{"p.slug": slug}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContentStore.postBySlug: build query: %w", err)
	}

	p, a, err := scanPost(s.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ContentStore.postBySlug: %w", err)
	}

	comments, err := s.approvedComments(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return records.DetailDocument(p, a, comments), nil
}

func (s *ContentStore) approvedComments(ctx context.Context, postID string) ([]records.Comment, error) {
	query, args, err := s.SB.
		Select("id", "post_id", "name", "comment", "approved", "created_at").
		From("comments").
		Where(sq.Eq{"post_id": postID, "approved": true}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContentStore.approvedComments: build query: %w", err)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ContentStore.approvedComments: %w", err)
	}
	defer rows.Close()

	comments := make([]records.Comment, 0)
	for rows.Next() {
		var c records.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Comment, &c.Approved, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ContentStore.approvedComments: scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ContentStore.approvedComments: rows: %w", err)
	}
	return comments, nil
}

// Create implements content.Store. Only comments are accepted; a reference to
// a missing post is rejected by the foreign key.
func (s *ContentStore) Create(ctx context.Context, doc content.Document) (content.Document, error) {
	c, err := records.CommentFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("ContentStore.Create: %w", err)
	}
	c.ID = uuid.NewString()

	query, args, err := s.SB.
		Insert("comments").
		Columns("id", "post_id", "name", "email", "comment").
		Values(c.ID, c.PostID, c.Name, c.Email, c.Comment).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContentStore.Create: build query: %w", err)
	}

	if err := s.DB.QueryRow(ctx, query, args...).Scan(&c.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("ContentStore.Create: reference to missing document %q", c.PostID)
		}
		return nil, fmt.Errorf("ContentStore.Create: %w", err)
	}

	return records.StoredCommentDocument(c), nil
}

// Ping implements content.Pinger
func (s *ContentStore) Ping(ctx context.Context) error {
	var one int
	return s.DB.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// UpsertAuthor implements seeder.Target
func (s *ContentStore) UpsertAuthor(ctx context.Context, a records.Author) error {
	query, args, err := s.SB.
		Insert("authors").
		Columns("id", "name", "image").
		Values(a.ID, a.Name, a.Image).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, image = EXCLUDED.image").
		ToSql()
	if err != nil {
		return fmt.Errorf("ContentStore.UpsertAuthor: build query: %w", err)
	}

	if _, err := s.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ContentStore.UpsertAuthor: %w", err)
	}
	return nil
}

// UpsertPost implements seeder.Target
func (s *ContentStore) UpsertPost(ctx context.Context, p records.Post) error {
	body := p.Body
	if len(body) == 0 {
		body = json.RawMessage("[]")
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var authorID *string
	if p.AuthorID != "" {
		authorID = &p.AuthorID
	}

	query, args, err := s.SB.
		Insert("posts").
		Columns("id", "title", "slug", "description", "main_image", "author_id", "body", "created_at").
		Values(p.ID, p.Title, p.Slug, p.Description, p.MainImage, authorID, string(body), createdAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			main_image = EXCLUDED.main_image,
			author_id = EXCLUDED.author_id,
			body = EXCLUDED.body,
			created_at = EXCLUDED.created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContentStore.UpsertPost: build query: %w", err)
	}

	if _, err := s.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ContentStore.UpsertPost: %w", err)
	}
	return nil
}

// UpsertComment implements seeder.Target
func (s *ContentStore) UpsertComment(ctx context.Context, c records.Comment) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := s.SB.
		Insert("comments").
		Columns("id", "post_id", "name", "email", "comment", "approved", "created_at").
		Values(c.ID, c.PostID, c.Name, c.Email, c.Comment, c.Approved, createdAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			comment = EXCLUDED.comment,
			approved = EXCLUDED.approved`).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContentStore.UpsertComment: build query: %w", err)
	}

	if _, err := s.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ContentStore.UpsertComment: %w", err)
	}
	return nil
}

var (
	_ content.Store  = (*ContentStore)(nil)
	_ content.Pinger = (*ContentStore)(nil)
)

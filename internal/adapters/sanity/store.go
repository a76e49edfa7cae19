// Package sanity talks to the hosted content API: GROQ reads go to the query
// endpoint, comment creates go to the mutate endpoint.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/philly/medium-blog/internal/content"
)

const (
	DefaultAPIVersion = "v2021-10-21"

	apiHost = "api.sanity.io"
	cdnHost = "apicdn.sanity.io"
)

// ErrMissingToken is returned by Create when no write token is configured.
var ErrMissingToken = errors.New("sanity: write token not configured")

// Config selects the project and dataset. Token is only needed for creates;
// reads of a public dataset work without it.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	HTTPClient *http.Client

	// BaseURL overrides the computed API origin. Tests point it at httptest.
	BaseURL string
}

// Store implements content.Store over HTTP.
type Store struct {
	cfg  Config
	http *http.Client
}

// New creates a store. UseCDN only affects reads; writes always go to the
// live API host.
func New(cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("sanity: project id is required")
	}
	if cfg.Dataset == "" {
		return nil, errors.New("sanity: dataset is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if !strings.HasPrefix(cfg.APIVersion, "v") {
		cfg.APIVersion = "v" + cfg.APIVersion
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{cfg: cfg, http: client}, nil
}

func (s *Store) origin(read bool) string {
	if s.cfg.BaseURL != "" {
		return strings.TrimRight(s.cfg.BaseURL, "/")
	}
	host := apiHost
	// Authenticated reads bypass the CDN, as the hosted client does.
	if read && s.cfg.UseCDN && s.cfg.Token == "" {
		host = cdnHost
	}
	return "https://" + s.cfg.ProjectID + "." + host
}

// Query implements content.Store. Each param is sent JSON-encoded as $name.
func (s *Store) Query(ctx context.Context, q content.Query, params content.Params) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", q.Text)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/%s/data/query/%s?%s",
		s.origin(true), s.cfg.APIVersion, url.PathEscape(s.cfg.Dataset), values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return nil, errors.New("sanity: response has no result")
	}
	return json.RawMessage(result.Raw), nil
}

// Create implements content.Store with a single create mutation and asks the
// API to return the stored document.
func (s *Store) Create(ctx context.Context, doc content.Document) (content.Document, error) {
	if s.cfg.Token == "" {
		return nil, ErrMissingToken
	}

	payload, err := json.Marshal(map[string]any{
		"mutations": []any{map[string]any{"create": doc}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/data/mutate/%s?returnDocuments=true",
		s.origin(false), s.cfg.APIVersion, url.PathEscape(s.cfg.Dataset))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}

	stored := gjson.GetBytes(body, "results.0.document")
	if !stored.IsObject() {
		// Older API versions only echo the id.
		id := gjson.GetBytes(body, "results.0.id").String()
		if id == "" {
			return nil, errors.New("sanity: mutation returned no document")
		}
		out := content.Document{"_id": id}
		for k, v := range doc {
			out[k] = v
		}
		return out, nil
	}

	var out content.Document
	if err := json.Unmarshal([]byte(stored.Raw), &out); err != nil {
		return nil, fmt.Errorf("decode stored document: %w", err)
	}
	return out, nil
}

// Ping checks the API answers a trivial query.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Query(ctx, content.Query{Name: "ping", Text: "1"}, nil)
	return err
}

func (s *Store) do(req *http.Request) ([]byte, error) {
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

// APIError is a non-2xx answer from the content API.
type APIError struct {
	Status      int
	Type        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sanity: http %d", e.Status)
	}
	return fmt.Sprintf("sanity: http %d: %s", e.Status, e.Description)
}

func decodeError(status int, body []byte) error {
	parsed := gjson.ParseBytes(body)
	desc := parsed.Get("error.description").String()
	if desc == "" {
		desc = parsed.Get("message").String()
	}
	if desc == "" && !parsed.IsObject() {
		desc = strings.TrimSpace(string(body))
	}
	return &APIError{
		Status:      status,
		Type:        parsed.Get("error.type").String(),
		Description: desc,
	}
}

var (
	_ content.Store  = (*Store)(nil)
	_ content.Pinger = (*Store)(nil)
)

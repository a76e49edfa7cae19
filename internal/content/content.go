// Package content is the front-end's only gateway to the external content
// store. Pages read through Fetch, the comment flow writes through Create, and
// templates resolve image references through URLFor.
package content

import (
	"context"
	"encoding/json"
)

// Query is one of the fixed read queries the front-end issues. Name is stable
// and lets non-GROQ stores answer the same query; Text is the GROQ source.
type Query struct {
	Name string
	Text string
}

// Params are the $-parameters bound into a query.
type Params map[string]any

// Document is a tagged store document. It always carries "_type".
type Document map[string]any

// Type returns the document's _type discriminator.
func (d Document) Type() string {
	t, _ := d["_type"].(string)
	return t
}

// ID returns the document's _id, empty when the store has not assigned one.
func (d Document) ID() string {
	id, _ := d["_id"].(string)
	return id
}

// Store is the driven port implemented by the content store adapters.
// Query returns the query's JSON result (the value of "result" for hosted
// stores); a missing single document is the JSON literal null.
type Store interface {
	Query(ctx context.Context, q Query, params Params) (json.RawMessage, error)
	Create(ctx context.Context, doc Document) (Document, error)
}

// Pinger is implemented by stores that can check connectivity more cheaply
// than running a query.
type Pinger interface {
	Ping(ctx context.Context) error
}

package content

import (
	"errors"
	"net/http"

	"github.com/philly/medium-blog/internal/platform/apperror"
)

var (
	// ErrQuery covers network failures, malformed queries and store outages.
	ErrQuery = apperror.New(
		apperror.CodeBadGateway,
		apperror.BusinessCodeQueryFailed,
		"content query failed",
		http.StatusBadGateway,
	)

	// ErrCreate covers network failures, schema rejection by the store and
	// missing or refused write credentials.
	ErrCreate = apperror.New(
		apperror.CodeBadGateway,
		apperror.BusinessCodeCreateFailed,
		"content create failed",
		http.StatusBadGateway,
	)

	// ErrSchemaMismatch is returned when a query result does not have the
	// shape its caller asked for. Details lists the offending fields.
	ErrSchemaMismatch = apperror.New(
		apperror.CodeBadGateway,
		apperror.BusinessCodeSchemaMismatch,
		"content schema mismatch",
		http.StatusBadGateway,
	)
)

// ErrNoResult is returned by Fetch when the query result is null.
var ErrNoResult = errors.New("content: query returned no result")

package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/philly/medium-blog/internal/platform/apperror"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		code         apperror.ErrorCode
		businessCode apperror.BusinessCode
		message      string
		httpStatus   int
	}{
		{
			name:         "not found",
			code:         apperror.CodeNotFound,
			businessCode: apperror.BusinessCodePostNotFound,
			message:      "post not found",
			httpStatus:   http.StatusNotFound,
		},
		{
			name:         "upstream query failure",
			code:         apperror.CodeBadGateway,
			businessCode: apperror.BusinessCodeQueryFailed,
			message:      "content query failed",
			httpStatus:   http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.New(tt.code, tt.businessCode, tt.message, tt.httpStatus)

			if err.Code != tt.code {
				t.Errorf("expected code %v, got %v", tt.code, err.Code)
			}
			if err.BusinessCode != tt.businessCode {
				t.Errorf("expected business code %v, got %v", tt.businessCode, err.BusinessCode)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %v, got %v", tt.message, err.Error())
			}
			if err.HTTPStatus != tt.httpStatus {
				t.Errorf("expected HTTP status %v, got %v", tt.httpStatus, err.HTTPStatus)
			}
			if err.Inner != nil || err.Details != nil {
				t.Errorf("expected no inner error or details, got %v / %v", err.Inner, err.Details)
			}
		})
	}
}

func TestWrapIncludesCause(t *testing.T) {
	inner := errors.New("connection refused")
	err := apperror.Wrap(inner, apperror.CodeBadGateway, apperror.BusinessCodeCreateFailed, "content create failed", http.StatusBadGateway)

	if !errors.Is(err, inner) {
		t.Errorf("expected errors.Is to find the inner error")
	}
	if err.Error() != "content create failed: connection refused" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestWithDetailsCopies(t *testing.T) {
	sentinel := apperror.New(apperror.CodeBadGateway, apperror.BusinessCodeSchemaMismatch, "schema mismatch", http.StatusBadGateway)

	detailed := sentinel.WithDetails([]string{"title"})

	if sentinel.Details != nil {
		t.Errorf("sentinel must not be mutated, got details %v", sentinel.Details)
	}
	if detailed == sentinel {
		t.Errorf("WithDetails should return a new instance")
	}
	if !errors.Is(detailed, sentinel) {
		t.Errorf("copy should still match the sentinel")
	}
}

func TestWrappingCopies(t *testing.T) {
	sentinel := apperror.New(apperror.CodeBadGateway, apperror.BusinessCodeQueryFailed, "content query failed", http.StatusBadGateway)
	cause := errors.New("timeout")

	err := sentinel.Wrapping(cause)

	if sentinel.Inner != nil {
		t.Errorf("sentinel must not be mutated")
	}
	if !errors.Is(err, sentinel) || !errors.Is(err, cause) {
		t.Errorf("wrapped error should match both sentinel and cause")
	}
}

func TestIs(t *testing.T) {
	notFound := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "post not found", http.StatusNotFound)
	sameCodes := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "different message", http.StatusNotFound)
	otherBiz := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeGeneral, "gone", http.StatusNotFound)
	otherCode := apperror.New(apperror.CodeBadGateway, apperror.BusinessCodePostNotFound, "odd", http.StatusBadGateway)

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "same codes match", err: notFound, target: sameCodes, want: true},
		{name: "different business code", err: notFound, target: otherBiz, want: false},
		{name: "different error code", err: notFound, target: otherCode, want: false},
		{name: "plain error target", err: notFound, target: errors.New("post not found"), want: false},
		{name: "wrapped by fmt", err: fmt.Errorf("render: %w", notFound), target: sameCodes, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	notFound := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "post not found", http.StatusNotFound)

	if got := apperror.StatusOf(fmt.Errorf("page: %w", notFound)); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
	if got := apperror.StatusOf(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for plain errors, got %d", got)
	}
}

func TestFormat(t *testing.T) {
	err := apperror.Wrap(
		errors.New("http 401"),
		apperror.CodeBadGateway,
		apperror.BusinessCodeCreateFailed,
		"content create failed",
		http.StatusBadGateway,
	).WithDetails(map[string]string{"type": "comment"})

	verbose := fmt.Sprintf("%+v", err)
	for _, want := range []string{
		"Code: BAD_GATEWAY",
		"BusinessCode: CREATE_FAILED",
		"HTTPStatus: 502",
		"Caused by: http 401",
		"Details: map[type:comment]",
	} {
		if !strings.Contains(verbose, want) {
			t.Errorf("expected %q in %q", want, verbose)
		}
	}

	if got := fmt.Sprintf("%s", err); got != "content create failed: http 401" {
		t.Errorf("unexpected %%s output %q", got)
	}
}

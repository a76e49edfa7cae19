package validator

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// MaxSlugLength bounds slugs accepted from the URL.
const MaxSlugLength = 200

// Slug validation errors
var (
	ErrSlugUnsafe  = errors.New("slug is not a single safe path segment")
	ErrSlugEmpty   = errors.New("slug cannot be empty")
	ErrSlugTooLong = errors.New("slug is too long")
)

var (
	slugReplaceRegex  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRegex = regexp.MustCompile(`-+`)
)

// ValidateSlug rejects slugs that cannot name a single path segment. Store
// slugs are otherwise free-form, so case, underscores, dots and repeated
// hyphens are all accepted; the exact-match lookup decides the rest.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrSlugEmpty
	}
	if len(slug) > MaxSlugLength {
		return ErrSlugTooLong
	}
	if slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return ErrSlugUnsafe
	}
	for _, r := range slug {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return ErrSlugUnsafe
		}
	}
	return nil
}

// GenerateSlug creates a URL-friendly slug from a title.
func GenerateSlug(text string) string {
	slug := strings.ToLower(text)
	slug = slugReplaceRegex.ReplaceAllString(slug, "-")
	slug = slugCollapseRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

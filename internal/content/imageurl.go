package content

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// DefaultImageBaseURL is the hosted asset CDN.
const DefaultImageBaseURL = "https://cdn.sanity.io"

// ImageConfig locates the asset CDN for a project and dataset.
type ImageConfig struct {
	BaseURL   string
	ProjectID string
	Dataset   string
}

// ErrInvalidImageRef is returned for references that are not image asset ids.
var ErrInvalidImageRef = errors.New("content: invalid image reference")

// image-<assetId>-<width>x<height>-<format>
var imageRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// Fit modes understood by the image CDN.
const (
	FitClip  = "clip"
	FitCrop  = "crop"
	FitFill  = "fill"
	FitMax   = "max"
	FitMin   = "min"
	FitScale = "scale"
)

// ImageURL builds a CDN URL for an image reference. Setters return the
// receiver so calls chain; nothing touches the network.
type ImageURL struct {
	cfg     ImageConfig
	ref     string
	width   int
	height  int
	fit     string
	quality int
	format  string
	auto    bool
}

// Width requests a resized width in pixels.
func (u *ImageURL) Width(px int) *ImageURL {
	u.width = px
	return u
}

// Height requests a resized height in pixels.
func (u *ImageURL) Height(px int) *ImageURL {
	u.height = px
	return u
}

// Size sets width and height together.
func (u *ImageURL) Size(w, h int) *ImageURL {
	return u.Width(w).Height(h)
}

// Fit selects how the image fills the requested box (see Fit* constants).
func (u *ImageURL) Fit(mode string) *ImageURL {
	u.fit = mode
	return u
}

// Quality sets the compression quality, 0-100.
func (u *ImageURL) Quality(q int) *ImageURL {
	u.quality = q
	return u
}

// Format forces an output format such as "webp" or "png".
func (u *ImageURL) Format(f string) *ImageURL {
	u.format = f
	return u
}

// AutoFormat lets the CDN negotiate the best format with the browser.
func (u *ImageURL) AutoFormat() *ImageURL {
	u.auto = true
	return u
}

// URL resolves the builder to an absolute URL.
func (u *ImageURL) URL() (string, error) {
	m := imageRefPattern.FindStringSubmatch(u.ref)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageRef, u.ref)
	}
	if u.cfg.ProjectID == "" || u.cfg.Dataset == "" {
		return "", errors.New("content: image project or dataset not configured")
	}

	base := u.cfg.BaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}

	assetID, w, h, ext := m[1], m[2], m[3], m[4]
	path := fmt.Sprintf("%s/images/%s/%s/%s-%sx%s.%s",
		base, url.PathEscape(u.cfg.ProjectID), url.PathEscape(u.cfg.Dataset), assetID, w, h, ext)

	q := url.Values{}
	if u.width > 0 {
		q.Set("w", strconv.Itoa(u.width))
	}
	if u.height > 0 {
		q.Set("h", strconv.Itoa(u.height))
	}
	if u.fit != "" {
		q.Set("fit", u.fit)
	}
	if u.quality > 0 && u.quality <= 100 {
		q.Set("q", strconv.Itoa(u.quality))
	}
	if u.format != "" {
		q.Set("fm", u.format)
	}
	if u.auto {
		q.Set("auto", "format")
	}
	if len(q) == 0 {
		return path, nil
	}
	return path + "?" + q.Encode(), nil
}

// String is URL without the error; invalid references render as "".
func (u *ImageURL) String() string {
	s, err := u.URL()
	if err != nil {
		return ""
	}
	return s
}

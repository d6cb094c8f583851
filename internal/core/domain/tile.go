package domain

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Format is the encoding of a fetched map image.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatSVG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// MIMEType returns the media type used in accept parameters and headers.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	case FormatSVG:
		return "svg"
	default:
		return "bin"
	}
}

// ParseFormat accepts png, jpeg/jpg and svg in any case.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, true
	case "jpeg", "jpg":
		return FormatJPEG, true
	case "svg":
		return FormatSVG, true
	default:
		return FormatUnknown, false
	}
}

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// DetectFormat identifies a response body, preferring the Content-Type
// header and falling back to the leading bytes.
func DetectFormat(contentType string, data []byte) Format {
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mediaType) {
	case "image/png":
		return FormatPNG
	case "image/jpeg", "image/jpg":
		return FormatJPEG
	case "image/svg+xml":
		return FormatSVG
	}

	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	if bytes.HasPrefix(head, []byte("<svg")) || (bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))) {
		return FormatSVG
	}
	return FormatUnknown
}

// TileRequest describes a rectangular map render centred on a hex.
type TileRequest struct {
	Milieu  string
	Style   string
	Options uint32 // display option bitmask
	Center  Hex
	Scale   float64 // pixels per parsec
	Width   int     // pixels
	Height  int     // pixels
	Format  Format
}

// Validate checks that the request can be rendered.
func (r TileRequest) Validate() error {
	switch {
	case r.Scale <= 0:
		return zerr.With(zerr.Wrap(ErrInvalidTileRequest, "scale must be positive"), "scale", r.Scale)
	case r.Width <= 0 || r.Height <= 0:
		err := zerr.With(zerr.Wrap(ErrInvalidTileRequest, "size must be positive"), "width", r.Width)
		return zerr.With(err, "height", r.Height)
	case r.Format == FormatUnknown:
		return zerr.Wrap(ErrInvalidTileRequest, "format must be set")
	}
	return nil
}

// TileOrigin returns the tile coordinates of the request: the map-space
// centre scaled to pixels, shifted so the tile is centred on it, in units
// of whole tiles.
func (r TileRequest) TileOrigin() (x, y float64) {
	c := HexToMap(r.Center)
	w, h := float64(r.Width), float64(r.Height)
	x = (c.X*r.Scale - w/2) / w
	y = (c.Y*r.Scale - h/2) / h
	return x, y
}

// Query returns the canonical query parameters of the request. Equal
// requests always encode to the same string.
func (r TileRequest) Query() url.Values {
	x, y := r.TileOrigin()
	q := url.Values{}
	q.Set("x", formatFloat(x))
	q.Set("y", formatFloat(y))
	q.Set("w", strconv.Itoa(r.Width))
	q.Set("h", strconv.Itoa(r.Height))
	q.Set("scale", formatFloat(r.Scale))
	q.Set("options", strconv.FormatUint(uint64(r.Options), 10))
	q.Set("accept", r.Format.MIMEType())
	if r.Style != "" {
		q.Set("style", r.Style)
	}
	if r.Milieu != "" {
		q.Set("milieu", r.Milieu)
	}
	return q
}

// URL joins the request onto the tile endpoint of baseURL.
func (r TileRequest) URL(baseURL string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	return endpointURL(baseURL, "/api/tile", r.Query())
}

// PosterRequest describes a render of a whole named sector, or one
// subsector of it.
type PosterRequest struct {
	Milieu    string
	Style     string
	Options   uint32
	Sector    string
	Subsector string // "A".."P", optional
	Scale     float64
	Format    Format
}

// Validate checks that the request names a sector and a usable scale.
func (r PosterRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Sector) == "":
		return zerr.Wrap(ErrInvalidTileRequest, "sector must be set")
	case r.Scale <= 0:
		return zerr.With(zerr.Wrap(ErrInvalidTileRequest, "scale must be positive"), "scale", r.Scale)
	case r.Format == FormatUnknown:
		return zerr.Wrap(ErrInvalidTileRequest, "format must be set")
	}
	if r.Subsector != "" {
		if len(r.Subsector) != 1 || r.Subsector[0] < 'A' || r.Subsector[0] > 'P' {
			return zerr.With(zerr.Wrap(ErrInvalidTileRequest, "subsector must be A-P"), "subsector", r.Subsector)
		}
	}
	return nil
}

// Query returns the canonical query parameters of the request.
func (r PosterRequest) Query() url.Values {
	q := url.Values{}
	q.Set("sector", r.Sector)
	q.Set("scale", formatFloat(r.Scale))
	q.Set("options", strconv.FormatUint(uint64(r.Options), 10))
	q.Set("accept", r.Format.MIMEType())
	if r.Subsector != "" {
		q.Set("subsector", r.Subsector)
	}
	if r.Style != "" {
		q.Set("style", r.Style)
	}
	if r.Milieu != "" {
		q.Set("milieu", r.Milieu)
	}
	return q
}

// URL joins the request onto the poster endpoint of baseURL.
func (r PosterRequest) URL(baseURL string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	return endpointURL(baseURL, "/api/poster", r.Query())
}

func endpointURL(baseURL, path string, q url.Values) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", zerr.With(zerr.Wrap(ErrInvalidTileRequest, "invalid base url"), "base_url", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CachedResource is the body of a successful map fetch.
type CachedResource struct {
	Key       string    `json:"key"`
	Format    Format    `json:"format"`
	Data      []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at,omitzero"`
}

// Package transform parses resize/quality directives and re-encodes image
// bytes on demand.
package transform

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	// webp assets decode through the registered x/image decoder; jpeg, png,
	// gif, tiff and bmp come with imaging.
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 80

// OutputMime is the single fixed output format. Every transcoded response
// is re-encoded to it regardless of the source format.
const OutputMime = "image/jpeg"

// Params is a validated transform triple. A zero Width or Height means the
// dimension was not requested.
type Params struct {
	Width   int
	Height  int
	Quality int
}

// ParseParams reads width, height and quality from query values. A
// parameter counts as present only if it parses to a strictly positive
// integer; anything else is treated as absent. The second return is false
// when no transform was requested at all. Quality clamps to [1,100] and
// defaults to 80 when any dimension is present. A valid quality alone,
// with no dimensions, still counts as a requested transform.
func ParseParams(q url.Values) (Params, bool) {
	p := Params{
		Width:   positive(q.Get("width")),
		Height:  positive(q.Get("height")),
		Quality: positive(q.Get("quality")),
	}
	if p.Width == 0 && p.Height == 0 && p.Quality == 0 {
		return Params{}, false
	}
	if p.Quality == 0 {
		p.Quality = DefaultQuality
	}
	if p.Quality > 100 {
		p.Quality = 100
	}
	return p, true
}

func positive(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// IsImage reports whether a MIME type is eligible for transcoding.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// Transcode decodes src, applies a cover-fit resize bounded by the source
// resolution, and re-encodes at p.Quality. Requested dimensions larger
// than the source clamp to the source dimension so output is never
// upscaled. With no dimensions present the image is re-encoded without a
// geometric resize. Decode and encode failures are returned, never
// swallowed.
func Transcode(src []byte, p Params) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decoding source image: %w", err)
	}

	bounds := img.Bounds()
	w, h := p.Width, p.Height
	if w > bounds.Dx() {
		w = bounds.Dx()
	}
	if h > bounds.Dy() {
		h = bounds.Dy()
	}
	switch {
	case w > 0 && h > 0:
		// cover fit: fill the box, crop centered overflow
		img = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	case w > 0:
		img = imaging.Resize(img, w, 0, imaging.Lanczos)
	case h > 0:
		img = imaging.Resize(img, 0, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.Quality))
	if err != nil {
		return nil, fmt.Errorf("encoding output image: %w", err)
	}
	return buf.Bytes(), nil
}

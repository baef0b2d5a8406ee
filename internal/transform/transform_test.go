package transform_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"testing"

	"asset-proxy-d/internal/transform"

	"github.com/stretchr/testify/require"
)

func TestParseParamsAbsent(t *testing.T) {
	for _, raw := range []string{
		"",
		"width=0",
		"width=-5",
		"width=abc",
		"quality=0",
		"quality=-1",
		"width=0&height=0&quality=0",
		"other=1",
	} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, ok := transform.ParseParams(q)
		require.False(t, ok, "query %q should not request a transform", raw)
	}
}

func TestParseParamsDefaults(t *testing.T) {
	q, _ := url.ParseQuery("width=200")
	p, ok := transform.ParseParams(q)
	require.True(t, ok)
	require.Equal(t, transform.Params{Width: 200, Quality: 80}, p)

	q, _ = url.ParseQuery("height=40&quality=abc")
	p, ok = transform.ParseParams(q)
	require.True(t, ok)
	require.Equal(t, transform.Params{Height: 40, Quality: 80}, p)
}

func TestParseParamsQualityClamps(t *testing.T) {
	q, _ := url.ParseQuery("width=10&quality=150")
	p, ok := transform.ParseParams(q)
	require.True(t, ok)
	require.Equal(t, 100, p.Quality)

	q, _ = url.ParseQuery("width=10&quality=1")
	p, _ = transform.ParseParams(q)
	require.Equal(t, 1, p.Quality)
}

func TestParseParamsQualityAlone(t *testing.T) {
	// A quality with no dimensions still requests a transform.
	q, _ := url.ParseQuery("quality=40")
	p, ok := transform.ParseParams(q)
	require.True(t, ok)
	require.Equal(t, transform.Params{Quality: 40}, p)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func outputSize(t *testing.T, b []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestTranscodeNeverUpscales(t *testing.T) {
	src := pngBytes(t, 100, 50)
	out, err := transform.Transcode(src, transform.Params{Width: 200, Quality: 80})
	require.NoError(t, err)
	w, h := outputSize(t, out)
	require.Equal(t, 100, w)
	require.Equal(t, 50, h)
}

func TestTranscodeCoverFit(t *testing.T) {
	src := pngBytes(t, 200, 100)
	out, err := transform.Transcode(src, transform.Params{Width: 50, Height: 50, Quality: 80})
	require.NoError(t, err)
	w, h := outputSize(t, out)
	require.Equal(t, 50, w)
	require.Equal(t, 50, h)
}

func TestTranscodeSingleDimensionKeepsAspect(t *testing.T) {
	src := pngBytes(t, 200, 100)
	out, err := transform.Transcode(src, transform.Params{Width: 50, Quality: 80})
	require.NoError(t, err)
	w, h := outputSize(t, out)
	require.Equal(t, 50, w)
	require.Equal(t, 25, h)
}

func TestTranscodeQualityOnly(t *testing.T) {
	src := pngBytes(t, 60, 40)
	out, err := transform.Transcode(src, transform.Params{Quality: 40})
	require.NoError(t, err)
	w, h := outputSize(t, out)
	require.Equal(t, 60, w)
	require.Equal(t, 40, h)
}

func TestTranscodeCorruptSource(t *testing.T) {
	_, err := transform.Transcode([]byte("not an image"), transform.Params{Width: 10, Quality: 80})
	require.Error(t, err)
}

func TestIsImage(t *testing.T) {
	require.True(t, transform.IsImage("image/png"))
	require.True(t, transform.IsImage("image/webp"))
	require.False(t, transform.IsImage("application/pdf"))
	require.False(t, transform.IsImage(""))
}

package main

import (
	"path"
	"strings"

	"asset-proxy-d/internal/catalog"
)

// mimeExt maps stored MIME types to canonical filename extensions.
// Unlisted types fall back to the subtype segment of the MIME string.
var mimeExt = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"image/avif":      "avif",
	"image/svg+xml":   "svg",
	"application/pdf": "pdf",
	"video/mp4":       "mp4",
	"audio/mpeg":      "mp3",
	"text/plain":      "txt",
}

func mimeExtension(mimeType string) string {
	if ext, ok := mimeExt[mimeType]; ok {
		return ext
	}
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok || sub == "" {
		return "bin"
	}
	return sub
}

// slugify lowercases name and collapses every run of bytes outside
// [a-z0-9] into a single dash. Deterministic so the canonical name is
// stable across requests.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// canonicalName derives the cosmetic name segment for an asset, or ""
// when the record carries nothing to derive it from. Extension comes from
// the MIME type, not from the stored filename.
func canonicalName(a *catalog.Asset) string {
	base := strings.TrimSuffix(a.Filename, path.Ext(a.Filename))
	slug := slugify(base)
	if slug == "" {
		return ""
	}
	return slug + "." + mimeExtension(a.MimeType)
}

func canonicalPath(prefix, tok, name string) string {
	return "/" + prefix + "/" + tok + "/" + name
}

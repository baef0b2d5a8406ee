package main

import (
	"fmt"
	"net/http"
	"strconv"

	"asset-proxy-d/internal/catalog"
	"asset-proxy-d/internal/token"
	"asset-proxy-d/internal/transform"

	"github.com/zeebo/xxh3"
)

func (c Context) Asset() (string, func(w http.ResponseWriter, r *http.Request)) {
	return "/" + c.prefix + "/{token}/{name...}", withError(func(w http.ResponseWriter, r *http.Request) (err error) {
		tok := r.PathValue("token")
		id, err := token.Decode(tok)
		if err != nil {
			return
		}

		asset, err := c.catalog.Lookup(r.Context(), id)
		if err != nil {
			return
		}
		if asset.StoragePath == "" {
			err = fmt.Errorf("%w: no storage path for %s", catalog.ErrNotFound, id)
			return
		}

		// stale cosmetic names redirect to the current canonical path,
		// transform parameters and all
		if name := canonicalName(asset); name != "" && name != r.PathValue("name") {
			target := canonicalPath(c.prefix, tok, name)
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		if c.store == nil {
			err = errStoreUnavailable
			return
		}
		body, err := c.store.Fetch(r.Context(), c.store.PublicURL(asset.StoragePath))
		if err != nil {
			return
		}

		contentType := asset.MimeType
		if p, ok := transform.ParseParams(r.URL.Query()); ok && transform.IsImage(asset.MimeType) {
			body, err = transform.Transcode(body, p)
			if err != nil {
				err = fmt.Errorf("transcoding %s: %w", id, err)
				return
			}
			contentType = transform.OutputMime
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", fmt.Sprintf(`"%016x"`, xxh3.Hash(body)))
		_, err = w.Write(body)
		return
	})
}

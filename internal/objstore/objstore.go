// Package objstore fetches asset bytes from the object store over HTTP.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrFetchFailed = errors.New("object fetch failed")

// Client resolves a storage path to a public URL and fetches its bytes.
// Kept narrow so the orchestrator can be tested with in-memory fakes.
type Client interface {
	PublicURL(storagePath string) string
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTP serves storage paths rooted at a public base URL.
type HTTP struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTP) PublicURL(storagePath string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(storagePath, "/")
}

// Fetch returns the body for url, or ErrFetchFailed on transport errors
// and non-2xx statuses. Single attempt, no retries.
func (s HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d for %s", ErrFetchFailed, resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return body, nil
}

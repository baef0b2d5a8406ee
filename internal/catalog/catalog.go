// Package catalog looks up asset metadata by identifier.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Asset is the metadata snapshot the proxy reads per request. The record
// lifecycle is owned by adjacent systems; the proxy never writes.
type Asset struct {
	ID          uuid.UUID
	StoragePath string
	MimeType    string
	Filename    string
}

var ErrNotFound = errors.New("asset not found")

// Catalog resolves an identifier to its asset record. Implementations
// return ErrNotFound when no record exists.
type Catalog interface {
	Lookup(ctx context.Context, id uuid.UUID) (*Asset, error)
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Open opens the sqlite catalog at path, creating the schema on first use.
func Open(ctx context.Context, path string) (driver *sql.DB, qry *Queries, err error) {
	driver, err = sql.Open("sqlite", fmt.Sprintf(
		"file:%s?"+
			"_journal_mode=WAL&"+
			"_synchronous=NORMAL&"+
			"_busy_timeout=10000",
		path,
	))
	if err != nil {
		return
	}
	err = driver.PingContext(ctx)
	if err != nil {
		return
	}
	qry = New(driver)

	tx, err := driver.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, schema)
	if err == nil {
		err = tx.Commit()
		return
	}

	// if already setup
	if strings.Contains(err.Error(), "already exists") {
		err = nil
		return
	}

	// if some other error
	return
}

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const lookupAsset = `select storage_path, mime_type, filename
from asset
where id = ?`

// Lookup implements Catalog. Identifiers are stored in dashed hex form.
func (q *Queries) Lookup(ctx context.Context, id uuid.UUID) (*Asset, error) {
	row := q.db.QueryRowContext(ctx, lookupAsset, id.String())
	a := Asset{ID: id}
	err := row.Scan(&a.StoragePath, &a.MimeType, &a.Filename)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

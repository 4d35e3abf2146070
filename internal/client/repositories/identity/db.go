package identity

import (
	"context"
	"database/sql"
)

// InitDatabase opens the local sqlite database and ensures the identity
// table exists. The caller owns the returned handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS identity (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

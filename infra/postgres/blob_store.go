package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS item_blobs (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// BlobStore keeps the item collections as rows of a single key/value table.
type BlobStore struct {
	db *sqlx.DB
}

func NewBlobStore(host, database, user, password, port, sslMode string) (*BlobStore, error) {
	db, err := sqlx.Connect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	))
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	// Two blobs per operation; a small pool is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	store := NewBlobStoreFromDB(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func NewBlobStoreFromDB(db *sqlx.DB) *BlobStore {
	return &BlobStore{db: db}
}

func (s *BlobStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating item_blobs table: %w", err)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM item_blobs WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return value, true, nil
}

func (s *BlobStore) Set(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO item_blobs (key, value, updated_at)
		VALUES (:key, :value, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`

	params := map[string]interface{}{
		"key":   key,
		"value": blob,
	}

	if _, err := s.db.NamedExecContext(ctx, query, params); err != nil {
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *BlobStore) Close() error {
	return s.db.Close()
}

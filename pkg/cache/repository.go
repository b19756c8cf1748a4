package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Repository is the persistence port of the store: a flat, size-bounded
// key-value surface with enumerable keys for the legacy sweep.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context, key string) (string, bool, error) {
	query := "SELECT payload FROM cache_entry WHERE entry_key = $1"

	var payload string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		err := fmt.Errorf("could not read cache entry %s: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return payload, true, nil
}

func (r *RepositoryImpl) Set(ctx context.Context, key string, value string) error {
	query := `INSERT INTO cache_entry (entry_key, payload, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (entry_key)
	          DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, key, value, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not write cache entry %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Remove(ctx context.Context, key string) error {
	query := "DELETE FROM cache_entry WHERE entry_key = $1"
	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		err := fmt.Errorf("could not remove cache entry %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := "SELECT entry_key FROM cache_entry WHERE entry_key LIKE $1 ORDER BY entry_key"

	rows, err := r.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		err := fmt.Errorf("could not enumerate cache keys: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0, 4)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

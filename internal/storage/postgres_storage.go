package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// PostgresStorage keeps processed-post records in Postgres. Used when
// DATABASE_URL is set; the pool handles connection lifecycle per operation.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, connStr string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	s := &PostgresStorage{pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*PostgresStorage)(nil)

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS processed_posts (
		id SERIAL PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		post_id TEXT NOT NULL UNIQUE,
		post_title TEXT,
		post_author TEXT,
		reply_permalink TEXT,
		status TEXT NOT NULL DEFAULT 'beautified'
	)`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Lookup(ctx context.Context, postID string) (string, bool, error) {
	var permalink string
	err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(reply_permalink, '') FROM processed_posts WHERE post_id = $1",
		postID).Scan(&permalink)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %s: %w", postID, err)
	}
	return permalink, true, nil
}

// Upsert replaces any prior record for the same post id. created_at is set
// on first insert only.
func (s *PostgresStorage) Upsert(ctx context.Context, rec domain.ProcessedPost) error {
	status := rec.Status
	if status == "" {
		status = domain.StatusBeautified
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO processed_posts (post_id, post_title, post_author, reply_permalink, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (post_id) DO UPDATE SET
		 post_title = EXCLUDED.post_title,
		 post_author = EXCLUDED.post_author,
		 reply_permalink = EXCLUDED.reply_permalink,
		 status = EXCLUDED.status`,
		rec.PostID, rec.Title, rec.Author, rec.ReplyPermalink, status)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.PostID, err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}

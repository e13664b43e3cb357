package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neelspatel02/BeautifyBot/internal/core/domain"
	"github.com/neelspatel02/BeautifyBot/internal/core/ports"
)

// SQLiteStorage is the default store: a single local database file, created
// on first use. database/sql pools the underlying connection so each
// operation acquires and releases it cleanly.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// A single writer avoids SQLITE_BUSY; processing is serial anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*SQLiteStorage)(nil)

func (s *SQLiteStorage) initSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS processed_posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		post_id TEXT NOT NULL UNIQUE,
		post_title TEXT,
		post_author TEXT,
		reply_permalink TEXT,
		status TEXT NOT NULL DEFAULT 'beautified'
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Lookup(ctx context.Context, postID string) (string, bool, error) {
	var permalink string
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(reply_permalink, '') FROM processed_posts WHERE post_id = ?",
		postID).Scan(&permalink)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %s: %w", postID, err)
	}
	return permalink, true, nil
}

// Upsert replaces any prior record for the same post id. created_at is set
// on first insert only.
func (s *SQLiteStorage) Upsert(ctx context.Context, rec domain.ProcessedPost) error {
	status := rec.Status
	if status == "" {
		status = domain.StatusBeautified
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_posts (post_id, post_title, post_author, reply_permalink, status)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (post_id) DO UPDATE SET
		 post_title = excluded.post_title,
		 post_author = excluded.post_author,
		 reply_permalink = excluded.reply_permalink,
		 status = excluded.status`,
		rec.PostID, rec.Title, rec.Author, rec.ReplyPermalink, status)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.PostID, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Package sqlite stores contact submissions in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/contact/storage/sqlite/migrations"
	"github.com/builld/web/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store is a contact.Sink backed by SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ contact.Sink = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the store at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts one submission.
func (s *Store) Record(ctx context.Context, record contact.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("record id is required")
	}
	sub := record.Submission
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, email, phone_number, business_stage, challenge, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		sub.Email,
		sub.PhoneNumber,
		sub.BusinessStage,
		sub.Challenge,
		toMillis(record.ReceivedAt),
	)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

// ListRecent returns up to limit submissions, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]contact.Record, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, email, phone_number, business_stage, challenge, received_at
		 FROM contact_submissions
		 ORDER BY received_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var records []contact.Record
	for rows.Next() {
		var (
			record     contact.Record
			receivedAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.Submission.Email,
			&record.Submission.PhoneNumber,
			&record.Submission.BusinessStage,
			&record.Submission.Challenge,
			&receivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		record.ReceivedAt = fromMillis(receivedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact submissions: %w", err)
	}
	return records, nil
}

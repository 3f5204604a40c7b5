// Package sqlite stores the inquiry log in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dekoratoriai/storefront/internal/notify/inquirylog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS inquiry_logs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    inquiry_id  TEXT    NOT NULL,
    status      TEXT    NOT NULL,
    step        TEXT    NOT NULL DEFAULT '',
    email       TEXT    NOT NULL DEFAULT '',
    payload     TEXT,
    error       TEXT    NOT NULL DEFAULT '',
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',
    updated_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inquiry_logs_inquiry_id ON inquiry_logs(inquiry_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_inquiry_logs_trace_id ON inquiry_logs(trace_id);
`

var ErrNotFound = errors.New("sqlite: inquiry not found")

type Repository struct {
	db *sql.DB
}

// Open opens or creates the database at path in WAL mode.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, entry *inquirylog.Entry) error {
	const q = `
		INSERT INTO inquiry_logs
			(inquiry_id, status, step, email, payload, error, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.InquiryID,
		string(entry.Status),
		entry.Step,
		entry.Email,
		nullableString(entry.Payload),
		entry.Error,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save inquiry log for %q: %w", entry.InquiryID, err)
	}
	return nil
}

// History returns every entry of an inquiry, oldest first.
func (r *Repository) History(ctx context.Context, inquiryID string) ([]inquirylog.Entry, error) {
	const q = `
		SELECT inquiry_id, status, step, email, COALESCE(payload, ''), error,
		       trace_id, span_id, updated_at
		FROM   inquiry_logs
		WHERE  inquiry_id = ?
		ORDER  BY updated_at, id`

	rows, err := r.db.QueryContext(ctx, q, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history of %q: %w", inquiryID, err)
	}
	defer rows.Close()

	var entries []inquirylog.Entry
	for rows.Next() {
		var (
			e         inquirylog.Entry
			updatedAt string
		)
		if err := rows.Scan(&e.InquiryID, &e.Status, &e.Step, &e.Email, &e.Payload, &e.Error,
			&e.TraceID, &e.SpanID, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan inquiry log: %w", err)
		}
		if e.UpdatedAt, err = parseRFC3339(updatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: history of %q: %w", inquiryID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, inquiryID)
	}
	return entries, nil
}

// Latest returns the current state of an inquiry.
func (r *Repository) Latest(ctx context.Context, inquiryID string) (*inquirylog.Entry, error) {
	entries, err := r.History(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	return &entries[len(entries)-1], nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

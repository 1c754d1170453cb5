// Package audit keeps a local journal of the changes operators make
// through the dashboard. The backend owns the receipts themselves; this
// journal answers "who touched what, and when" without a backend query.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	applog "github.com/Denizcan35/barin/internal/log"
)

// Actions recorded in the journal.
const (
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Entry is one recorded operator action.
type Entry struct {
	ID        int64
	Action    string
	ReceiptID int64
	Actor     string
	Detail    string
	CreatedAt time.Time
}

type Store struct {
	db  *sql.DB
	log *applog.Logger
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, log: applog.Default(applog.ComponentAudit)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records an action. ReceiptID may be zero for actions that do
// not target a single receipt, such as exports.
func (s *Store) Append(ctx context.Context, action string, receiptID int64, actor, detail string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_entries (action, receipt_id, actor, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		action, receiptID, actor, detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	id, _ := res.LastInsertId()
	s.log.InfoContext(ctx, "Audit entry recorded",
		"id", id,
		applog.FieldAction, action,
		applog.FieldReceiptID, receiptID,
		"actor", actor)

	return nil
}

// ListRecent returns the newest entries first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, receipt_id, actor, detail, created_at
		 FROM audit_entries
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.ReceiptID, &e.Actor, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// ListByReceipt returns the history of a single receipt, newest first.
func (s *Store) ListByReceipt(ctx context.Context, receiptID int64, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, receipt_id, actor, detail, created_at
		 FROM audit_entries
		 WHERE receipt_id = ?
		 ORDER BY id DESC
		 LIMIT ?`, receiptID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries by receipt: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.ReceiptID, &e.Actor, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

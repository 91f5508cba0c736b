package report

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a durable SQLite log of reported outcomes.
// Uses WAL mode so readers can follow along while the action writes.
type Journal struct {
	db *sql.DB
}

// OpenJournal creates or opens the outcome journal at path.
// Pragmas and schema application are idempotent.
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite allows a single writer; keep one connection to avoid
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append records one outcome entry.
func (j *Journal) Append(e Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO outcomes
			(run_token, class, legacy_class, correlation_key, status, message, raw_output)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunToken, e.Class, e.LegacyClass, e.Key, e.Status, e.Message, e.RawOutput,
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// Row is a journal entry read back with its storage metadata.
type Row struct {
	Entry
	CreatedAt time.Time
}

// ByKey returns all entries recorded for one correlation key, oldest first.
// Repeated runs with identical parameters land under the same key, which is
// what lets consumers treat re-reports as idempotent.
func (j *Journal) ByKey(key string) ([]Row, error) {
	rows, err := j.db.Query(`
		SELECT run_token, class, legacy_class, correlation_key, status,
		       message, raw_output, created_at
		FROM outcomes
		WHERE correlation_key = ?
		ORDER BY id`, key)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Row, error) {
	rows, err := j.db.Query(`
		SELECT run_token, class, legacy_class, correlation_key, status,
		       message, raw_output, created_at
		FROM outcomes
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var r Row
		var created string
		if err := rows.Scan(
			&r.RunToken, &r.Class, &r.LegacyClass, &r.Key, &r.Status,
			&r.Message, &r.RawOutput, &created,
		); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		ts, err := time.Parse("2006-01-02T15:04:05.999Z", created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		r.CreatedAt = ts
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}

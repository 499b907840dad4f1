package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the store at path and initializes the schema
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("db: create data dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: init schema: %w", err)
	}

	return &DB{conn}, nil
}

// DefaultPath returns the path of the database file in the user's data directory
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "dispatch", "dispatch.db"), nil
}

// Execute runs a parameterized mutating statement. Each call commits on its own.
func (db *DB) Execute(query string, args ...any) (sql.Result, error) {
	return db.execute("execute", query, args...)
}

// FetchAll runs a parameterized read and returns every row as a slice of column values
func (db *DB) FetchAll(query string, args ...any) ([][]any, error) {
	return db.fetchAll("fetch", query, args...)
}

// execute backs Execute and every single-statement write, wrapping errors with op
func (db *DB) execute(op, query string, args ...any) (sql.Result, error) {
	result, err := db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("db: %s: %w", op, err)
	}
	return result, nil
}

func (db *DB) fetchAll(op, query string, args ...any) ([][]any, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("db: %s: %w", op, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("db: %s: columns: %w", op, err)
	}

	var result [][]any
	for rows.Next() {
		row := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("db: %s: scan: %w", op, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: %s: %w", op, err)
	}
	return result, nil
}

// fetchIDs returns the first column of every row as an id
func (db *DB) fetchIDs(op, query string, args ...any) ([]int64, error) {
	rows, err := db.fetchAll(op, query, args...)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id, ok := row[0].(int64)
		if !ok {
			return nil, fmt.Errorf("db: %s: unexpected id type %T", op, row[0])
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("db: get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.execute(fmt.Sprintf("set setting %q", key), `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

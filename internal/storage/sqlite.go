// Package storage provides SQLite-based persistence for finished brush selections.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-brush/internal/brush"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for selection history.
type Store struct {
	db *sql.DB
}

// Selection is one finished brush selection.
type Selection struct {
	ID          int64
	SelectionID string // uuid, generated on save when empty
	Session     string // who made it: "local", an SSH user, or a websocket client
	Series      string
	Bounds      brush.Bounds
	Start       brush.Point
	End         brush.Point
	CreatedAt   time.Time
}

// SelectionFromState captures the settled selection of a brush state.
func SelectionFromState(session, series string, s brush.State) Selection {
	return Selection{
		Session: session,
		Series:  series,
		Bounds:  s.Bounds,
		Start:   s.Start,
		End:     s.End,
	}
}

// Stats contains aggregated statistics for one series.
type Stats struct {
	Series      string
	Count       int
	AvgWidth    float64
	AvgHeight   float64
	LastBrushed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			selection_id TEXT NOT NULL UNIQUE,
			session TEXT NOT NULL,
			series TEXT NOT NULL,
			bounds_x0 REAL NOT NULL,
			bounds_x1 REAL NOT NULL,
			bounds_y0 REAL NOT NULL,
			bounds_y1 REAL NOT NULL,
			x0 REAL NOT NULL,
			x1 REAL NOT NULL,
			y0 REAL NOT NULL,
			y1 REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_selections_series ON selections(series);
		CREATE INDEX IF NOT EXISTS idx_selections_session ON selections(session);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSelection records a finished selection and returns its row ID.
func (s *Store) SaveSelection(sel Selection) (int64, error) {
	if sel.SelectionID == "" {
		sel.SelectionID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO selections
		 (selection_id, session, series, bounds_x0, bounds_x1, bounds_y0, bounds_y1, x0, x1, y0, y1)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sel.SelectionID, sel.Session, sel.Series,
		sel.Bounds.X0, sel.Bounds.X1, sel.Bounds.Y0, sel.Bounds.Y1,
		sel.Start.X, sel.End.X, sel.Start.Y, sel.End.Y,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save selection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectColumns = `id, selection_id, session, series,
	bounds_x0, bounds_x1, bounds_y0, bounds_y1, x0, x1, y0, y1, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSelection(r rowScanner) (Selection, error) {
	var sel Selection
	var createdAt any
	err := r.Scan(
		&sel.ID, &sel.SelectionID, &sel.Session, &sel.Series,
		&sel.Bounds.X0, &sel.Bounds.X1, &sel.Bounds.Y0, &sel.Bounds.Y1,
		&sel.Start.X, &sel.End.X, &sel.Start.Y, &sel.End.Y,
		&createdAt,
	)
	if err != nil {
		return sel, err
	}
	sel.CreatedAt = parseTime(createdAt)
	return sel, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) querySelections(query string, args ...any) ([]Selection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query selections: %w", err)
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, sel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// RecentSelections returns the newest selections, optionally for one series.
// An empty series matches all of them.
func (s *Store) RecentSelections(series string, limit int) ([]Selection, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySelections(
		`SELECT `+selectColumns+`
		 FROM selections
		 WHERE ? = '' OR series = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		series, series, limit,
	)
}

// SelectionsForSession returns the newest selections made by one session.
func (s *Store) SelectionsForSession(session string, limit int) ([]Selection, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySelections(
		`SELECT `+selectColumns+`
		 FROM selections
		 WHERE session = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		session, limit,
	)
}

// SelectionByID looks a selection up by its uuid. Returns nil if not found.
func (s *Store) SelectionByID(selectionID string) (*Selection, error) {
	sel, err := scanSelection(s.db.QueryRow(
		`SELECT `+selectColumns+` FROM selections WHERE selection_id = ?`,
		selectionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query selection: %w", err)
	}
	return &sel, nil
}

// ClearSelections deletes the selections of one series, or all of them
// when series is empty. Returns the number of rows removed.
func (s *Store) ClearSelections(series string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM selections WHERE ? = '' OR series = ?", series, series)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear selections: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// GetStats returns aggregated statistics for a series.
func (s *Store) GetStats(series string) (*Stats, error) {
	stats := &Stats{Series: series}

	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(x1 - x0), 0), COALESCE(AVG(y1 - y0), 0), MAX(created_at)
		 FROM selections WHERE series = ?`,
		series,
	).Scan(&stats.Count, &stats.AvgWidth, &stats.AvgHeight, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastBrushed = parseTime(last)

	return stats, nil
}

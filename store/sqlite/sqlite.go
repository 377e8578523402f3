/*
Package sqlite provides a SQLite-backed implementation of engine.Store.

PURPOSE:
  Persists leave categories and day assignments. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  categories:  Category definitions with their rule sets
  assignments: One row per assigned day

INVARIANT ENFORCEMENT:
  idx_assignments_unique_date is a UNIQUE index on assignments(date). The
  at-most-one-assignment-per-day invariant is re-checked by the caller
  immediately before every write; this index is the database-level backstop
  for the check-then-write race.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-planner/engine"
)

// Store implements engine.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at dbPath. Use ":memory:" for an in-memory
// database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Leave categories and their rule sets
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		window_start TEXT NOT NULL,
		window_end TEXT NOT NULL,
		days_of_week TEXT,            -- JSON array of 0=Sun..6=Sat, NULL = all days
		weekly_max INTEGER,           -- NULL = unlimited
		weeks_per_month_max INTEGER,  -- NULL = unlimited
		total_max INTEGER,            -- NULL = unlimited
		position INTEGER NOT NULL,    -- stable display order
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_categories_position
		ON categories(position);

	-- Day assignments (one category per day, system-wide)
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		category_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: a calendar day carries at most ONE assignment of ANY
	-- category. Cross-category exclusivity is enforced here as the backstop
	-- for the caller's check-then-write sequence.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_unique_date
		ON assignments(date);

	CREATE INDEX IF NOT EXISTS idx_assignments_category
		ON assignments(category_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (s *Store) ListCategories(ctx context.Context) ([]engine.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, window_start, window_end,
		       days_of_week, weekly_max, weeks_per_month_max, total_max
		FROM categories
		ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []engine.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id engine.CategoryID) (engine.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color, window_start, window_end,
		       days_of_week, weekly_max, weeks_per_month_max, total_max
		FROM categories WHERE id = ?`, string(id))

	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return engine.Category{}, engine.ErrCategoryNotFound
	}
	return cat, err
}

// SaveCategory inserts or replaces wholesale by id, keeping the display
// position of an existing row and appending new rows at the end.
func (s *Store) SaveCategory(ctx context.Context, cat engine.Category) error {
	daysJSON, err := marshalDays(cat.DaysOfWeek)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories
			(id, name, color, window_start, window_end, days_of_week,
			 weekly_max, weeks_per_month_max, total_max, position,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(position) FROM categories), 0) + 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			window_start = excluded.window_start,
			window_end = excluded.window_end,
			days_of_week = excluded.days_of_week,
			weekly_max = excluded.weekly_max,
			weeks_per_month_max = excluded.weeks_per_month_max,
			total_max = excluded.total_max,
			updated_at = excluded.updated_at`,
		string(cat.ID), cat.Name, cat.Color,
		string(cat.Window.Start), string(cat.Window.End), daysJSON,
		limitValue(cat.Weekly), limitValue(cat.WeeksPerMonth), limitValue(cat.Total),
		now, now)
	return err
}

func (s *Store) DeleteCategory(ctx context.Context, id engine.CategoryID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrCategoryNotFound
	}

	// Cascade: a deleted category takes its assignments with it.
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE category_id = ?`, string(id)); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (s *Store) ListAssignments(ctx context.Context) ([]engine.Assignment, error) {
	return s.queryAssignments(ctx, `
		SELECT id, date, category_id, created_at, updated_at
		FROM assignments ORDER BY date ASC`)
}

func (s *Store) ListAssignmentsByCategory(ctx context.Context, id engine.CategoryID) ([]engine.Assignment, error) {
	return s.queryAssignments(ctx, `
		SELECT id, date, category_id, created_at, updated_at
		FROM assignments WHERE category_id = ? ORDER BY date ASC`, string(id))
}

func (s *Store) queryAssignments(ctx context.Context, query string, args ...any) ([]engine.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assigns []engine.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, a)
	}
	return assigns, rows.Err()
}

func (s *Store) GetAssignment(ctx context.Context, id engine.AssignmentID) (engine.Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, category_id, created_at, updated_at
		FROM assignments WHERE id = ?`, string(id))

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return engine.Assignment{}, engine.ErrAssignmentNotFound
	}
	return a, err
}

func (s *Store) FindAssignmentByDate(ctx context.Context, date engine.Date) (*engine.Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, category_id, created_at, updated_at
		FROM assignments WHERE date = ?`, string(date))

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) InsertAssignment(ctx context.Context, a engine.Assignment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (id, date, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(a.ID), string(a.Date), string(a.CategoryID),
		a.CreatedAt.UTC().Format(time.RFC3339), a.UpdatedAt.UTC().Format(time.RFC3339))
	if isUniqueConstraintError(err) {
		return engine.ErrDateOccupied
	}
	return err
}

func (s *Store) RemoveAssignment(ctx context.Context, id engine.AssignmentID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) RemoveAssignmentsByCategory(ctx context.Context, id engine.CategoryID) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE category_id = ?`, string(id))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// =============================================================================
// SNAPSHOT / RESTORE - Whole-state capture for undo
// =============================================================================

func (s *Store) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	assigns, err := s.ListAssignments(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return engine.Snapshot{Categories: cats, Assignments: assigns}, nil
}

// Restore replaces the full state atomically.
func (s *Store) Restore(ctx context.Context, snap engine.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, cat := range snap.Categories {
		daysJSON, err := marshalDays(cat.DaysOfWeek)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories
				(id, name, color, window_start, window_end, days_of_week,
				 weekly_max, weeks_per_month_max, total_max, position,
				 created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(cat.ID), cat.Name, cat.Color,
			string(cat.Window.Start), string(cat.Window.End), daysJSON,
			limitValue(cat.Weekly), limitValue(cat.WeeksPerMonth), limitValue(cat.Total),
			i+1, now, now); err != nil {
			return err
		}
	}

	for _, a := range snap.Assignments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO assignments (id, date, category_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			string(a.ID), string(a.Date), string(a.CategoryID),
			a.CreatedAt.UTC().Format(time.RFC3339), a.UpdatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// ROW MAPPING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (engine.Category, error) {
	var (
		cat           engine.Category
		id            string
		windowStart   string
		windowEnd     string
		daysJSON      sql.NullString
		weeklyMax     sql.NullInt64
		weeksMonthMax sql.NullInt64
		totalMax      sql.NullInt64
	)
	if err := row.Scan(&id, &cat.Name, &cat.Color, &windowStart, &windowEnd,
		&daysJSON, &weeklyMax, &weeksMonthMax, &totalMax); err != nil {
		return engine.Category{}, err
	}

	cat.ID = engine.CategoryID(id)
	cat.Window = engine.DateRange{Start: engine.Date(windowStart), End: engine.Date(windowEnd)}
	cat.Weekly = limitFrom(weeklyMax)
	cat.WeeksPerMonth = limitFrom(weeksMonthMax)
	cat.Total = limitFrom(totalMax)

	if daysJSON.Valid && daysJSON.String != "" {
		var days []int
		if err := json.Unmarshal([]byte(daysJSON.String), &days); err != nil {
			return engine.Category{}, fmt.Errorf("corrupt days_of_week for category %s: %w", id, err)
		}
		for _, d := range days {
			cat.DaysOfWeek = append(cat.DaysOfWeek, time.Weekday(d))
		}
	}
	return cat, nil
}

func scanAssignment(row rowScanner) (engine.Assignment, error) {
	var (
		a         engine.Assignment
		id        string
		date      string
		catID     string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&id, &date, &catID, &createdAt, &updatedAt); err != nil {
		return engine.Assignment{}, err
	}
	a.ID = engine.AssignmentID(id)
	a.Date = engine.Date(date)
	a.CategoryID = engine.CategoryID(catID)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return a, nil
}

func marshalDays(days []time.Weekday) (any, error) {
	if len(days) == 0 {
		return nil, nil
	}
	ints := make([]int, len(days))
	for i, d := range days {
		ints[i] = int(d)
	}
	b, err := json.Marshal(ints)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func limitValue(l engine.Limit) any {
	if !l.IsLimited() {
		return nil
	}
	return l.Max()
}

func limitFrom(v sql.NullInt64) engine.Limit {
	if !v.Valid {
		return engine.Unlimited()
	}
	return engine.Limited(int(v.Int64))
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

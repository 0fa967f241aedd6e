// Package store handles SQLite persistence of query history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/handodds/internal/hypergeo"
	"github.com/verte-zerg/handodds/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// createdAtLayout is fixed width and always written in UTC, so the text
// order of created_at matches time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for query history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			deck_size INTEGER NOT NULL,
			hand_size INTEGER NOT NULL,
			lands INTEGER NOT NULL,
			targets TEXT NOT NULL,
			combined_num TEXT NOT NULL,
			combined_den TEXT NOT NULL,
			combined REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertQuery stores a query and its combined probability.
func (s *Store) InsertQuery(ctx context.Context, rec model.QueryRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (created_at, deck_size, hand_size, lands, targets, combined_num, combined_den, combined)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(createdAtLayout),
		rec.DeckSize,
		rec.HandSize,
		rec.Lands,
		encodeTargets(rec.Targets),
		rec.Combined.Num().String(),
		rec.Combined.Den().String(),
		rec.Combined.Probability(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListQueries returns up to limit queries, newest first. limit <= 0 returns all.
func (s *Store) ListQueries(ctx context.Context, limit int) ([]model.QueryRecord, error) {
	query := `SELECT id, created_at, deck_size, hand_size, lands, targets, combined_num, combined_den, combined
		FROM queries
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.QueryRecord
	for rows.Next() {
		var rec model.QueryRecord
		var createdAt, targets, num, den string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.DeckSize, &rec.HandSize, &rec.Lands, &targets, &num, &den, &rec.CombinedFloat); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		if rec.Targets, err = decodeTargets(targets); err != nil {
			return nil, fmt.Errorf("query %d: %w", rec.ID, err)
		}
		if rec.Combined, err = decodeFraction(num, den); err != nil {
			return nil, fmt.Errorf("query %d: %w", rec.ID, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClearQueries deletes every stored query and returns how many were removed.
func (s *Store) ClearQueries(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM queries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func encodeTargets(targets []int) string {
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ",")
}

func decodeTargets(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad targets %q: %w", s, err)
		}
		out[i] = n
	}
	return out, nil
}

func decodeFraction(num, den string) (hypergeo.Fraction, error) {
	n, ok := new(big.Int).SetString(num, 10)
	if !ok || n.Sign() < 0 {
		return hypergeo.Fraction{}, fmt.Errorf("bad numerator %q", num)
	}
	d, ok := new(big.Int).SetString(den, 10)
	if !ok || d.Sign() <= 0 {
		return hypergeo.Fraction{}, fmt.Errorf("bad denominator %q", den)
	}
	return hypergeo.NewFraction(n, d), nil
}

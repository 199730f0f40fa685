package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/polykit/internal/poly"
)

// SavedPolynomial is a named polynomial as stored in the workspace.
type SavedPolynomial struct {
	Name       string          `json:"name"`
	Hash       string          `json:"hash"`
	Polynomial poly.Polynomial `json:"polynomial"`
	Seq        int64           `json:"seq"`
}

// HistoryRecord is one entry of the operation log.
type HistoryRecord struct {
	Seq    int64  `json:"seq"`
	ID     string `json:"id"`
	Op     string `json:"op"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// GetPolynomial returns the named polynomial or ErrNotFound.
func (s *Store) GetPolynomial(ctx context.Context, name string) (SavedPolynomial, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, hash, coefficients, seq
		FROM polynomials
		WHERE name = ?
	`, NormalizeName(name))

	saved, err := scanPolynomial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedPolynomial{}, ErrNotFound
	}
	if err != nil {
		return SavedPolynomial{}, fmt.Errorf("read polynomial %q: %w", name, err)
	}
	return saved, nil
}

// ListPolynomials returns all saved polynomials ordered by name.
func (s *Store) ListPolynomials(ctx context.Context) ([]SavedPolynomial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, hash, coefficients, seq
		FROM polynomials
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list polynomials: %w", err)
	}
	defer rows.Close()

	var out []SavedPolynomial
	for rows.Next() {
		saved, err := scanPolynomial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan polynomial: %w", err)
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

// ListHistory returns the most recent limit entries in seq order.
// A limit of zero or less returns the whole log.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]HistoryRecord, error) {
	query := `
		SELECT seq, id, op, input, output FROM (
			SELECT seq, id, op, input, output FROM history
			ORDER BY seq DESC
			LIMIT ?
		) ORDER BY seq ASC
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.Seq, &r.ID, &r.Op, &r.Input, &r.Output); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPolynomial(row scanner) (SavedPolynomial, error) {
	var (
		saved  SavedPolynomial
		coeffs string
	)
	if err := row.Scan(&saved.Name, &saved.Hash, &coeffs, &saved.Seq); err != nil {
		return SavedPolynomial{}, err
	}
	var values []float64
	if err := json.Unmarshal([]byte(coeffs), &values); err != nil {
		return SavedPolynomial{}, fmt.Errorf("decode coefficients: %w", err)
	}
	saved.Polynomial = poly.New(values...)
	return saved, nil
}

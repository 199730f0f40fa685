package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/polykit/internal/poly"
)

// ErrInvalidName is returned when a polynomial name is empty after
// normalization.
var ErrInvalidName = errors.New("invalid polynomial name")

// SavePolynomial stores p under name, replacing any previous polynomial of
// that name. It returns the content hash of p.
func (s *Store) SavePolynomial(ctx context.Context, name string, p poly.Polynomial) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", ErrInvalidName
	}

	coeffs, err := json.Marshal(p.Coefficients())
	if err != nil {
		return "", fmt.Errorf("marshal coefficients: %w", err)
	}
	hash := Hash(p)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO polynomials (name, hash, coefficients, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM polynomials))
		ON CONFLICT(name) DO UPDATE SET
			hash = excluded.hash,
			coefficients = excluded.coefficients,
			seq = excluded.seq
	`, name, hash, string(coeffs))
	if err != nil {
		return "", fmt.Errorf("write polynomial %q: %w", name, err)
	}
	return hash, nil
}

// DeletePolynomial removes the named polynomial. Deleting a missing name
// returns ErrNotFound.
func (s *Store) DeletePolynomial(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM polynomials WHERE name = ?`, NormalizeName(name))
	if err != nil {
		return fmt.Errorf("delete polynomial %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete polynomial %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendHistory records one evaluated operation. Input and output are stored
// as given; callers pass rendered polynomials or JSON.
func (s *Store) AppendHistory(ctx context.Context, op, input, output string) (HistoryRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("generate history id: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, op, input, output) VALUES (?, ?, ?, ?)
	`, id.String(), op, input, output)
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("write history: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("write history: %w", err)
	}

	return HistoryRecord{
		Seq:    seq,
		ID:     id.String(),
		Op:     op,
		Input:  input,
		Output: output,
	}, nil
}

package harness

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/polykit/internal/poly"
)

const defaultTolerance = 1e-9

// checkExpect compares a step outcome with its expect clause and returns one
// message per mismatch. A nil clause only requires the step to succeed.
func checkExpect(e *Expect, out outcome, err error) []string {
	if e == nil {
		if err != nil {
			return []string{fmt.Sprintf("unexpected error: %v", err)}
		}
		return nil
	}

	if e.Error != "" {
		if err == nil {
			return []string{fmt.Sprintf("expected error %s, got success", e.Error)}
		}
		if got := errorCode(err); got != e.Error {
			return []string{fmt.Sprintf("expected error %s, got %s", e.Error, got)}
		}
	} else if err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", err)}
	}

	tol := e.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}

	var msgs []string
	if e.Value != nil {
		switch {
		case out.value == nil:
			msgs = append(msgs, fmt.Sprintf("expected value %g, got none", *e.Value))
		case !within(*out.value, *e.Value, tol):
			msgs = append(msgs, fmt.Sprintf("value = %g, want %g", *out.value, *e.Value))
		}
	}

	if e.Poly != nil {
		switch {
		case out.poly == nil:
			msgs = append(msgs, fmt.Sprintf("expected polynomial %s, got none", e.Poly))
		case !polyWithin(*out.poly, e.Poly.Polynomial, tol):
			msgs = append(msgs, fmt.Sprintf("polynomial = %s, want %s", out.poly, e.Poly))
		}
	}

	if e.Rest != nil {
		var got poly.Polynomial
		if out.rest != nil {
			got = *out.rest
		}
		if !polyWithin(got, e.Rest.Polynomial, tol) {
			msgs = append(msgs, fmt.Sprintf("rest = %s, want %s", got, e.Rest))
		}
	}

	if e.Roots != nil && !rootsWithin(out.roots, e.Roots, tol) {
		msgs = append(msgs, fmt.Sprintf("roots = %s, want %s", formatRoots(out.roots), formatRoots(e.Roots)))
	}
	return msgs
}

func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

// polyWithin compares order and each coefficient within tol.
func polyWithin(got, want poly.Polynomial, tol float64) bool {
	a, b := got.Coefficients(), want.Coefficients()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !within(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// rootsWithin compares root multisets after sorting.
func rootsWithin(got, want []float64, tol float64) bool {
	if len(got) != len(want) {
		return false
	}
	a := append([]float64(nil), got...)
	b := append([]float64(nil), want...)
	sort.Float64s(a)
	sort.Float64s(b)
	for i := range a {
		if !within(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

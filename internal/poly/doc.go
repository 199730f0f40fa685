// Package poly provides single-variable polynomials over float64 in canonical
// dense form, together with their arithmetic, calculus and real root finding.
//
// This package is the foundational layer: every other internal package
// imports poly; poly imports nothing internal.
//
// Canonical form, enforced by every constructor and operation:
//   - Terms are ordered strictly by descending exponent
//   - Every exponent from Order down to 0 is present exactly once
//   - The leading coefficient is non-zero, except for the zero polynomial,
//     which is the single term {0, 0}
//
// Polynomial is an immutable value type. The zero value is the zero
// polynomial and all values are safe to share between goroutines.
package poly

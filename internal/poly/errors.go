package poly

import (
	"errors"
	"fmt"
)

// Code categorizes polynomial errors.
type Code string

const (
	// CodeDivideByZero indicates division by the zero polynomial or a zero scalar.
	CodeDivideByZero Code = "DIVIDE_BY_ZERO"

	// CodeNotDivisible indicates a dividend of lower degree than its divisor.
	CodeNotDivisible Code = "NOT_DIVISIBLE"

	// CodeNegativeDiscriminant indicates a quadratic without real roots.
	CodeNegativeDiscriminant Code = "NEGATIVE_DISCRIMINANT"

	// CodeNoZeroInInterval indicates the bracket scan found nothing to refine.
	CodeNoZeroInInterval Code = "NO_ZERO_IN_INTERVAL"

	// CodeWrongShape indicates a closed-form solver got the wrong degree.
	CodeWrongShape Code = "WRONG_SHAPE"

	// CodeNegativeExponent indicates a term that cannot live in a polynomial.
	CodeNegativeExponent Code = "NEGATIVE_EXPONENT"

	// CodeParse indicates malformed polynomial text.
	CodeParse Code = "PARSE"
)

// Sentinels for errors.Is. Matching is by Code only.
var (
	ErrDivideByZero         = &Error{Code: CodeDivideByZero}
	ErrNotDivisible         = &Error{Code: CodeNotDivisible}
	ErrNegativeDiscriminant = &Error{Code: CodeNegativeDiscriminant}
	ErrNoZeroInInterval     = &Error{Code: CodeNoZeroInInterval}
	ErrWrongShape           = &Error{Code: CodeWrongShape}
	ErrNegativeExponent     = &Error{Code: CodeNegativeExponent}
	ErrParse                = &Error{Code: CodeParse}
)

// Error is returned by every failing operation in this package.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the operation that failed (e.g. "Div", "SolveQuadratic").
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsArithmeticError returns true for division by zero, non-divisible
// operands, negative discriminants and failed bracket scans.
// Uses errors.As to handle wrapped errors.
func IsArithmeticError(err error) bool {
	switch CodeOf(err) {
	case CodeDivideByZero, CodeNotDivisible, CodeNegativeDiscriminant, CodeNoZeroInInterval:
		return true
	}
	return false
}

// IsArgumentError returns true for malformed inputs: wrong solver shape,
// negative exponents and unparsable text.
func IsArgumentError(err error) bool {
	switch CodeOf(err) {
	case CodeWrongShape, CodeNegativeExponent, CodeParse:
		return true
	}
	return false
}

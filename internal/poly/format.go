package poly

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// String renders p in descending powers, e.g. "-12x^3 + 9x^2 + 6x - 3".
// Zero terms are omitted and unit coefficients are elided for x and x^n.
func (p Polynomial) String() string {
	var b strings.Builder
	for _, t := range p.Terms() {
		if t.Coefficient == 0 {
			continue
		}
		mag := math.Abs(t.Coefficient)
		switch {
		case b.Len() == 0 && t.Coefficient < 0:
			b.WriteString("-")
		case b.Len() > 0 && t.Coefficient < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		if mag != 1 || t.Exponent == 0 {
			b.WriteString(strconv.FormatFloat(mag, 'g', -1, 64))
		}
		switch {
		case t.Exponent == 1:
			b.WriteString("x")
		case t.Exponent > 1:
			b.WriteString("x^")
			b.WriteString(strconv.Itoa(t.Exponent))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// Parse reads a polynomial from text. Two forms are accepted:
//
//	"1, 6, 11, 6" or "[1 6 11 6]"   coefficients, highest degree first
//	"x^3 + 6x^2 + 11*x + 6"         an expression in x
//
// Every string produced by String parses back to an equal polynomial.
func Parse(s string) (Polynomial, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Polynomial{}, newError(CodeParse, "Parse", "empty input")
	}
	if !strings.ContainsAny(s, "xX") {
		if p, err := parseCoefficients(s); err == nil {
			return p, nil
		}
	}
	return parseExpression(s)
}

func parseCoefficients(s string) (Polynomial, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) < 2 {
		// A lone number is also a valid constant expression.
		if len(fields) == 1 {
			v, err := strconv.ParseFloat(fields[0], 64)
			if err == nil {
				return New(v), nil
			}
		}
		return Polynomial{}, newError(CodeParse, "Parse", "not a coefficient list: %q", s)
	}
	coeffs := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Polynomial{}, newError(CodeParse, "Parse", "coefficient %d: %q is not a number", i, f)
		}
		coeffs[i] = v
	}
	return New(coeffs...), nil
}

// exprScanner walks an expression such as "-2.5x^2 + x - 3".
type exprScanner struct {
	src string
	pos int
}

func (sc *exprScanner) skipSpace() {
	for sc.pos < len(sc.src) && (sc.src[sc.pos] == ' ' || sc.src[sc.pos] == '\t') {
		sc.pos++
	}
}

func (sc *exprScanner) peek() byte {
	if sc.pos >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos]
}

// number consumes a float literal, exponent notation included.
func (sc *exprScanner) number() (float64, bool) {
	start := sc.pos
	for sc.pos < len(sc.src) && (isDigit(sc.src[sc.pos]) || sc.src[sc.pos] == '.') {
		sc.pos++
	}
	if sc.pos == start {
		return 0, false
	}
	if c := sc.peek(); c == 'e' || c == 'E' {
		save := sc.pos
		sc.pos++
		if c := sc.peek(); c == '+' || c == '-' {
			sc.pos++
		}
		if !isDigit(sc.peek()) {
			sc.pos = save
		}
		for sc.pos < len(sc.src) && isDigit(sc.src[sc.pos]) {
			sc.pos++
		}
	}
	v, err := strconv.ParseFloat(sc.src[start:sc.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseExpression(s string) (Polynomial, error) {
	sc := &exprScanner{src: s}
	var terms []Term
	for {
		sc.skipSpace()
		if sc.peek() == 0 {
			break
		}

		sign := 1.0
		switch sc.peek() {
		case '+':
			sc.pos++
		case '-':
			sign = -1
			sc.pos++
		default:
			if len(terms) > 0 {
				return Polynomial{}, newError(CodeParse, "Parse", "expected + or - at offset %d in %q", sc.pos, s)
			}
		}
		sc.skipSpace()

		coef, hasCoef := sc.number()
		if !hasCoef {
			coef = 1
		}
		sc.skipSpace()
		if sc.peek() == '*' {
			if !hasCoef {
				return Polynomial{}, newError(CodeParse, "Parse", "dangling * at offset %d in %q", sc.pos, s)
			}
			sc.pos++
			sc.skipSpace()
		}

		exp := 0
		if c := sc.peek(); c == 'x' || c == 'X' {
			sc.pos++
			exp = 1
			sc.skipSpace()
			if sc.peek() == '^' {
				sc.pos++
				sc.skipSpace()
				start := sc.pos
				for isDigit(sc.peek()) {
					sc.pos++
				}
				n, err := strconv.Atoi(s[start:sc.pos])
				if err != nil {
					return Polynomial{}, newError(CodeParse, "Parse", "bad exponent at offset %d in %q", start, s)
				}
				exp = n
			}
		} else if !hasCoef {
			return Polynomial{}, newError(CodeParse, "Parse", "expected a term at offset %d in %q", sc.pos, s)
		}

		terms = append(terms, Term{Coefficient: sign * coef, Exponent: exp})
	}
	if len(terms) == 0 {
		return Polynomial{}, newError(CodeParse, "Parse", "no terms in %q", s)
	}
	return FromTerms(terms...)
}

type polynomialJSON struct {
	Order        int       `json:"order"`
	Coefficients []float64 `json:"coefficients"`
	Rest         []float64 `json:"rest,omitempty"`
}

// MarshalJSON encodes p as {"order", "coefficients", "rest"}.
func (p Polynomial) MarshalJSON() ([]byte, error) {
	return json.Marshal(polynomialJSON{
		Order:        p.Order(),
		Coefficients: p.Coefficients(),
		Rest:         p.rest,
	})
}

// UnmarshalJSON decodes the MarshalJSON form. Order is recomputed from the
// coefficients rather than trusted.
func (p *Polynomial) UnmarshalJSON(data []byte) error {
	var raw polynomialJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = New(raw.Coefficients...)
	if len(raw.Rest) > 0 {
		p.rest = canonical(raw.Rest)
	}
	return nil
}

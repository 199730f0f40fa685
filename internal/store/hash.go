package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/polykit/internal/poly"
)

// DomainPolynomial prefixes polynomial content hashes.
// The version suffix allows the encoding to change later.
const DomainPolynomial = "polykit/polynomial/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content hash of p. Equal coefficient lists hash equally;
// -0 and 0 are not distinguished and the remainder is ignored.
func Hash(p poly.Polynomial) string {
	return hashWithDomain(DomainPolynomial, canonicalCoefficients(p))
}

// canonicalCoefficients encodes coefficients as shortest round-trip decimals
// joined by commas, highest degree first.
func canonicalCoefficients(p poly.Polynomial) []byte {
	var buf []byte
	for i, c := range p.Coefficients() {
		if i > 0 {
			buf = append(buf, ',')
		}
		if c == 0 {
			c = 0
		}
		buf = strconv.AppendFloat(buf, c, 'g', -1, 64)
	}
	return buf
}

// NormalizeName trims and NFC-normalizes a polynomial name, so visually
// identical names written with different Unicode compositions collide.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

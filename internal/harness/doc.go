// Package harness runs YAML scenarios of polynomial operations and checks
// their outcomes.
//
// A scenario is a list of steps. Each step names an op, its operands and an
// optional expect clause:
//
//	name: cubic_roots
//	description: Roots of a cubic with three integer zeros
//	steps:
//	  - op: roots
//	    poly: [1, 6, 11, 6]
//	    expect:
//	      roots: [-3, -2, -1]
//
// Polynomials are written as coefficient lists (highest degree first) or as
// expressions such as "x^2 - 4". Rational operations read poly as the
// numerator and other as the denominator.
//
// Every step is recorded in the result trace, rendered as text, so traces can
// be compared against golden files with RunWithGolden.
package harness

// Package curve analyzes the graph of a rational function: zeros, poles,
// y-intercept, symmetry, extrema and inflection points.
//
// Analysis is best effort. Root searches that fail are reported as warnings
// on the Report instead of aborting the analysis.
package curve

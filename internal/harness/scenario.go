package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/polykit/internal/poly"
)

// Scenario is a scripted sequence of polynomial operations with expected
// outcomes, loaded from YAML.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Steps run in order. A failing step does not stop later steps.
	Steps []Step `yaml:"steps"`
}

// Step is one operation.
//
// Poly is the primary operand. Other is the second operand for binary
// operations and the denominator for rational operations.
type Step struct {
	Op     string     `yaml:"op"`
	Poly   *PolyInput `yaml:"poly"`
	Other  *PolyInput `yaml:"other,omitempty"`
	At     float64    `yaml:"at,omitempty"`
	Imag   float64    `yaml:"imag,omitempty"`
	Factor float64    `yaml:"factor,omitempty"`
	Expect *Expect    `yaml:"expect,omitempty"`
}

// Expect lists the checked outcomes of a step. Unset fields are not checked.
type Expect struct {
	// Value is the expected scalar result of evaluate and linear.
	Value *float64 `yaml:"value,omitempty"`

	// Poly is the expected polynomial result, or the numerator for
	// rational_diff and simplify.
	Poly *PolyInput `yaml:"poly,omitempty"`

	// Rest is the expected division remainder, or the denominator for
	// rational_diff and simplify.
	Rest *PolyInput `yaml:"rest,omitempty"`

	// Roots are compared as sorted multisets. For analyze they are the zeros.
	Roots []float64 `yaml:"roots,omitempty"`

	// Error is the expected error code, e.g. NOT_DIVISIBLE.
	Error string `yaml:"error,omitempty"`

	// Tolerance bounds numeric comparisons. Zero means 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Operations understood by the harness.
const (
	OpEvaluate      = "evaluate"
	OpAdd           = "add"
	OpSubtract      = "subtract"
	OpMultiply      = "multiply"
	OpDivide        = "divide"
	OpScale         = "scale"
	OpDifferentiate = "differentiate"
	OpIntegrate     = "integrate"
	OpRoots         = "roots"
	OpQuadratic     = "quadratic"
	OpLinear        = "linear"
	OpRationalDiff  = "rational_diff"
	OpSimplify      = "simplify"
	OpAnalyze       = "analyze"
)

var binaryOps = map[string]bool{
	OpAdd:      true,
	OpSubtract: true,
	OpMultiply: true,
	OpDivide:   true,
}

var knownOps = map[string]bool{
	OpEvaluate:      true,
	OpAdd:           true,
	OpSubtract:      true,
	OpMultiply:      true,
	OpDivide:        true,
	OpScale:         true,
	OpDifferentiate: true,
	OpIntegrate:     true,
	OpRoots:         true,
	OpQuadratic:     true,
	OpLinear:        true,
	OpRationalDiff:  true,
	OpSimplify:      true,
	OpAnalyze:       true,
}

// PolyInput is a polynomial written in YAML either as a coefficient
// sequence, highest degree first, or as an expression string.
//
//	poly: [1, 6, 11, 6]
//	poly: "x^3 + 6x^2 + 11x + 6"
type PolyInput struct {
	poly.Polynomial
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *PolyInput) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var coeffs []float64
		if err := node.Decode(&coeffs); err != nil {
			return fmt.Errorf("line %d: coefficients: %w", node.Line, err)
		}
		if len(coeffs) == 0 {
			return fmt.Errorf("line %d: empty coefficient list", node.Line)
		}
		in.Polynomial = poly.New(coeffs...)
		return nil
	case yaml.ScalarNode:
		p, err := poly.Parse(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		in.Polynomial = p
		return nil
	default:
		return fmt.Errorf("line %d: polynomial must be a list or a string", node.Line)
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML held in memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if !knownOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Poly == nil {
			return fmt.Errorf("steps[%d]: poly is required", i)
		}
		if binaryOps[step.Op] && step.Other == nil {
			return fmt.Errorf("steps[%d]: other is required for %s", i, step.Op)
		}
		if step.Expect != nil && step.Expect.Tolerance < 0 {
			return fmt.Errorf("steps[%d].expect: tolerance must be non-negative", i)
		}
	}
	return nil
}

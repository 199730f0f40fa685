package harness

// StepRecord is the trace entry for one executed step. Results are rendered
// as text so golden files stay stable and readable.
type StepRecord struct {
	Step   int    `json:"step"`
	Op     string `json:"op"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Rest   string `json:"rest,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause matched.
	Pass bool `json:"pass"`

	// Trace holds one record per step, in order.
	Trace []StepRecord `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []StepRecord{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends a record to the trace.
func (r *Result) AddStep(rec StepRecord) {
	r.Trace = append(r.Trace, rec)
}

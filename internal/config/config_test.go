package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polykit/internal/poly"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polykit.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestDefaultMatchesRootDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, poly.DefaultRootConfig(), cfg.RootConfig())
	assert.Equal(t, 1e-9, cfg.CancelTolerance)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.cue")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesFields(t *testing.T) {
	cfg, err := Parse([]byte(`
scan_from: -100
scan_to:   100
scan_step: 0.25
max_iterations: 50
log_level: "debug"
`), "custom.cue")
	require.NoError(t, err)

	assert.Equal(t, -100.0, cfg.ScanFrom)
	assert.Equal(t, 100.0, cfg.ScanTo)
	assert.Equal(t, 0.25, cfg.ScanStep)
	assert.Equal(t, 50, cfg.MaxIterations)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1e-20, cfg.Tolerance, "untouched fields keep defaults")
}

func TestParseRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", `scan_stpe: 0.5`},
		{"non-positive step", `scan_step: 0`},
		{"bad log level", `log_level: "loud"`},
		{"fractional iterations", `max_iterations: 2.5`},
		{"syntax", `scan_from: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			require.Error(t, err)
			var cfgErr *Error
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, "scan_step: 0.2\ndatabase: \"file.db\"\n")

	t.Setenv("POLYKIT_DB", "env.db")
	t.Setenv("POLYKIT_MAX_ITERATIONS", "77")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.ScanStep, "from file")
	assert.Equal(t, "env.db", cfg.Database, "env wins over file")
	assert.Equal(t, 77, cfg.MaxIterations)
	assert.Equal(t, -40.0, cfg.ScanFrom, "default")
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("POLYKIT_DEFLATION_TOLERANCE", "1e-9")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1e-9, cfg.DeflationTolerance)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	t.Setenv("POLYKIT_MAX_ITERATIONS", "lots")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoadValidatesEnvOverrides(t *testing.T) {
	t.Setenv("POLYKIT_SCAN_STEP", "-1")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan step")
}

func TestValidate(t *testing.T) {
	assert.Error(t, Default().WithScanStep(0).Validate())
	assert.Error(t, Default().WithScanRange(5, 5).Validate())
	assert.Error(t, Default().WithMaxIterations(0).Validate())
	assert.Error(t, Default().WithCancelTolerance(-1).Validate())
	assert.Error(t, Default().WithDatabase("").Validate())
	assert.Error(t, Default().WithLogLevel("trace").Validate())
	assert.NoError(t, Default().WithTolerance(1e-12).WithDeflationTolerance(1e-10).Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	a := Default()
	b := a.Clone().WithDatabase("other.db")
	assert.Equal(t, "polykit.db", a.Database)
	assert.Equal(t, "other.db", b.Database)
}

func TestUnknownFieldNamed(t *testing.T) {
	_, err := Parse([]byte(`scan_stpe: 0.5`), "typo.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan_stpe")
}

func TestErrorWithoutPosition(t *testing.T) {
	assert.Equal(t, "bad value", (&Error{Message: "bad value"}).Error())
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"coefficients", []string{"eval", "1,6,11,6", "--at", "2"}, "60\n"},
		{"expression", []string{"eval", "x^2 - 4", "--at", "-3"}, "5\n"},
		{"complex", []string{"eval", "x^2 + 1", "--at", "0", "--imag", "1"}, "(0+0i)\n"},
		{"default point", []string{"eval", "[2 3]"}, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tempDB(t), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalCommand_ParseError(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "eval", "x^^2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [PARSE]")
}

func TestRootsCommand_Text(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "roots", "1,6,11,6")
	require.NoError(t, err)
	assert.Equal(t, "x = -3\nx = -2\nx = -1\n", out)
}

func TestRootsCommand_JSON(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "--format", "json", "roots", "x^4 - 5x^2 + 4")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   RootsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.ElementsMatch(t, []float64{-2, -1, 1, 2}, resp.Data.Roots)
	assert.Equal(t, 4, resp.Data.Polynomial.Order())
}

func TestRootsCommand_NoRealRoots(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "roots", "5")
	require.NoError(t, err)
	assert.Equal(t, "no real roots\n", out)
}

func TestRootsCommand_PartialFailure(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "--format", "json", "roots", "x^3 + 1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string      `json:"code"`
			Details RootsResult `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "NEGATIVE_DISCRIMINANT", resp.Error.Code)
	require.Len(t, resp.Error.Details.Roots, 1)
	assert.InDelta(t, -1, resp.Error.Details.Roots[0], 1e-12)
}

func TestBinaryCommands(t *testing.T) {
	tests := []struct {
		op   string
		a, b string
		want string
	}{
		{"add", "1,2,3", "x^2 - 1", "2x^2 + 2x + 2\n"},
		{"sub", "x^2 - 4", "x + 2", "x^2 - x - 6\n"},
		{"mul", "x - 2", "x + 2", "x^2 - 4\n"},
		{"div", "x^2 - 4", "x - 2", "x + 2\n"},
		{"div", "x^3 + 1", "x^2 + x", "x - 1\nrest: x + 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.op+" "+tt.a, func(t *testing.T) {
			out, _, err := execute(t, tempDB(t), tt.op, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDivCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		wantCode string
	}{
		{"not divisible", "x + 2", "x^2 + 1", "NOT_DIVISIBLE"},
		{"divide by zero", "x + 2", "0", "DIVIDE_BY_ZERO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tempDB(t), "div", tt.a, tt.b)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestCalculusCommands(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "diff", "1,6,11,6")
	require.NoError(t, err)
	assert.Equal(t, "3x^2 + 12x + 11\n", out)

	out, _, err = execute(t, tempDB(t), "integrate", "3x^2 + 2x + 1")
	require.NoError(t, err)
	assert.Equal(t, "x^3 + x^2 + x\n", out)
}

func TestBinaryCommand_ArgCount(t *testing.T) {
	_, _, err := execute(t, tempDB(t), "add", "1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}

package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReference(t *testing.T) {
	db := tempDB(t)

	out, _, err := execute(t, db, "save", "cubic", "x^3 + 6x^2 + 11x + 6")
	require.NoError(t, err)
	assert.Contains(t, out, "@cubic = x^3 + 6x^2 + 11x + 6")

	out, _, err = execute(t, db, "roots", "@cubic")
	require.NoError(t, err)
	assert.Equal(t, "x = -3\nx = -2\nx = -1\n", out)

	out, _, err = execute(t, db, "div", "@cubic", "x + 1")
	require.NoError(t, err)
	assert.Equal(t, "x^2 + 5x + 6\n", out)
}

func TestShowAndList(t *testing.T) {
	db := tempDB(t)

	_, _, err := execute(t, db, "save", "b", "1,0,-4")
	require.NoError(t, err)
	_, _, err = execute(t, db, "save", "a", "2,1")
	require.NoError(t, err)

	out, _, err := execute(t, db, "show", "@b")
	require.NoError(t, err)
	assert.Contains(t, out, "@b = x^2 - 4")

	out, _, err = execute(t, db, "--format", "json", "list")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Polynomials []struct {
				Name string `json:"name"`
				Hash string `json:"hash"`
			} `json:"polynomials"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Polynomials, 2)
	assert.Equal(t, "a", resp.Data.Polynomials[0].Name)
	assert.Equal(t, "b", resp.Data.Polynomials[1].Name)
	assert.Len(t, resp.Data.Polynomials[0].Hash, 64)
}

func TestListEmpty(t *testing.T) {
	out, _, err := execute(t, tempDB(t), "list")
	require.NoError(t, err)
	assert.Equal(t, "workspace is empty\n", out)
}

func TestUnknownReference(t *testing.T) {
	db := tempDB(t)

	out, _, err := execute(t, db, "eval", "@missing", "--at", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E_NOT_FOUND]")

	out, _, err = execute(t, db, "diff", "@missing")
	require.Error(t, err)
	assert.Contains(t, out, "polynomial @missing")

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "a reference must not create a workspace")
}

func TestDelete(t *testing.T) {
	db := tempDB(t)

	_, _, err := execute(t, db, "save", "p", "1,1")
	require.NoError(t, err)

	out, _, err := execute(t, db, "delete", "p")
	require.NoError(t, err)
	assert.Equal(t, "deleted @p\n", out)

	out, _, err = execute(t, db, "show", "p")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E_NOT_FOUND")
}

func TestHistory(t *testing.T) {
	db := tempDB(t)

	_, _, err := execute(t, db, "save", "q", "1,-10,9")
	require.NoError(t, err)
	_, _, err = execute(t, db, "roots", "@q")
	require.NoError(t, err)
	_, _, err = execute(t, db, "eval", "@q", "--at", "0")
	require.NoError(t, err)

	out, _, err := execute(t, db, "--format", "json", "history")
	require.NoError(t, err)

	var resp struct {
		Data HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Entries, 3)
	assert.Equal(t, "save", resp.Data.Entries[0].Op)
	assert.Equal(t, "roots", resp.Data.Entries[1].Op)
	assert.Equal(t, "x = 1\nx = 9", resp.Data.Entries[1].Output)
	assert.Equal(t, "eval", resp.Data.Entries[2].Op)
	assert.Equal(t, "9", resp.Data.Entries[2].Output)

	out, _, err = execute(t, db, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "eval")
	assert.NotContains(t, out, "roots")
}

func TestNoWorkspaceCreatedByAlgebra(t *testing.T) {
	db := tempDB(t)

	_, _, err := execute(t, db, "roots", "1,-3,2")
	require.NoError(t, err)

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "algebra commands must not create a workspace")
}

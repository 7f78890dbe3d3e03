package checkpoint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cx-luo/molstack/internal/checkpoint"
)

type sample struct {
	Values []int
	Label  string
}

func TestCheckpoint_SaveLoadRoundTrip(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	in := sample{Values: []int{1, 2, 3}, Label: "scenario5"}

	require.NoError(t, checkpoint.Save(prefix, 3, &in))

	var out sample
	skip, ok, err := checkpoint.Load(prefix, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, skip)
	assert.Equal(t, in, out)
}

// TestCheckpoint_Load_MissingFilesReturnsNotOK pins §4.9: a fresh prefix
// with no sibling files starts a run fresh rather than erroring.
func TestCheckpoint_Load_MissingFilesReturnsNotOK(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "absent")
	var out sample
	skip, ok, err := checkpoint.Load(prefix, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, skip)
}

func TestCheckpoint_Load_PartialFilesReturnsNotOK(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "partial")
	require.NoError(t, checkpoint.Save(prefix, 1, &sample{Label: "x"}))

	skipPath, _ := checkpoint.Paths(prefix)
	require.NoError(t, os.Remove(skipPath))

	var out sample
	_, ok, err := checkpoint.Load(prefix, &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckpoint_Save_OverwritesPreviousCheckpoint(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "run")
	require.NoError(t, checkpoint.Save(prefix, 1, &sample{Label: "first"}))
	require.NoError(t, checkpoint.Save(prefix, 2, &sample{Label: "second"}))

	var out sample
	skip, ok, err := checkpoint.Load(prefix, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, skip)
	assert.Equal(t, "second", out.Label)
}

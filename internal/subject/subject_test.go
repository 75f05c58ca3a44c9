package subject

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\r\nb\nc\n")
	assert.Equal(t, []string{"a", "b", "c", ""}, lines)

	assert.Equal(t, []string{""}, splitLines(""))
}

func TestRunMergesOutputAndReportsStatus(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found in PATH")
	}

	r := New(sh)
	lines, status, err := r.Run("", nil, "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err)

	assert.Equal(t, 3, status)
	assert.Contains(t, lines, "out")
	assert.Contains(t, lines, "err")
}

func TestRunStartFailureIsAnError(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "does-not-exist"))
	_, _, err := r.Run("", nil, "--verbose")
	require.Error(t, err)

	var subjErr *Error
	require.True(t, errors.As(err, &subjErr))
	assert.Equal(t, "run", subjErr.Op)
	assert.NotNil(t, subjErr.Unwrap())
	assert.Contains(t, subjErr.Error(), "--verbose")
}

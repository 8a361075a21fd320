package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gradebot/autograder/supervisor"
	"github.com/gradebot/autograder/types"
)

func newTestExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell semantics differ on windows")
	}
	dir := t.TempDir()
	log := zap.NewNop().Sugar()
	return NewExecutor(supervisor.New(log), dir, log), dir
}

func TestExecutorExitCodeOnlyMode(t *testing.T) {
	exec, _ := newTestExecutor(t)

	// Neither expected output nor stdin declared: exit code alone is
	// authoritative.
	require.NoError(t, exec.Run(context.Background(), types.TestCase{Name: "passes", Run: "true"}))

	err := exec.Run(context.Background(), types.TestCase{Name: "fails", Run: "false"})
	require.Error(t, err)
	assert.True(t, supervisor.IsExit(err))
}

func TestExecutorComparesOutput(t *testing.T) {
	exec, _ := newTestExecutor(t)

	require.NoError(t, exec.Run(context.Background(), types.TestCase{
		Name:   "included",
		Run:    "echo Hello world!",
		Output: "world",
	}))

	err := exec.Run(context.Background(), types.TestCase{
		Name:       "exact mismatch",
		Run:        "echo Goodbye world!",
		Output:     "Hello world!",
		Comparison: types.ComparisonExact,
	})
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestExecutorFeedsInput(t *testing.T) {
	exec, _ := newTestExecutor(t)

	require.NoError(t, exec.Run(context.Background(), types.TestCase{
		Name:   "echoes stdin",
		Run:    "cat",
		Input:  "41 + 1",
		Output: "41 + 1",
	}))
}

func TestExecutorSetupRunsBeforeRun(t *testing.T) {
	exec, dir := newTestExecutor(t)

	// Setup leaves an artifact in the shared working directory that the
	// run phase consumes.
	require.NoError(t, exec.Run(context.Background(), types.TestCase{
		Name:   "setup artifact",
		Setup:  "echo compiled > artifact.txt",
		Run:    "cat artifact.txt",
		Output: "compiled",
	}))

	_, statErr := os.Stat(filepath.Join(dir, "artifact.txt"))
	assert.NoError(t, statErr)
}

func TestExecutorSetupFailureAbortsRun(t *testing.T) {
	exec, dir := newTestExecutor(t)

	err := exec.Run(context.Background(), types.TestCase{
		Name:  "broken setup",
		Setup: "exit 1",
		Run:   "touch ran.marker",
	})
	require.Error(t, err)
	assert.True(t, supervisor.IsExit(err))

	// The run phase was never attempted.
	_, statErr := os.Stat(filepath.Join(dir, "ran.marker"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecutorSetupConsumesBudget(t *testing.T) {
	exec, _ := newTestExecutor(t)

	// 0.01 minutes = 600ms total. Setup eats ~400ms, leaving too little
	// for a 30s run: the run phase must time out, bounding setup+run by
	// the declared timeout.
	err := exec.Run(context.Background(), types.TestCase{
		Name:    "budget shared across phases",
		Setup:   "sleep 0.4",
		Run:     "sleep 30",
		Timeout: 0.01,
	})
	require.Error(t, err)
	assert.True(t, supervisor.IsTimeout(err))
}

func TestExecutorSetupTimeoutIsTestFailure(t *testing.T) {
	exec, _ := newTestExecutor(t)

	err := exec.Run(context.Background(), types.TestCase{
		Name:    "setup hangs",
		Setup:   "sleep 30",
		Run:     "true",
		Timeout: 0.005,
	})
	require.Error(t, err)
	assert.True(t, supervisor.IsTimeout(err))
}

func TestExecutorRunExitErrorRetainsStdout(t *testing.T) {
	exec, _ := newTestExecutor(t)

	err := exec.Run(context.Background(), types.TestCase{
		Name: "failing with output",
		Run:  "echo AssertionError: expected 42; exit 1",
	})
	require.Error(t, err)

	stdout, ok := supervisor.CapturedStdout(err)
	require.True(t, ok)
	assert.Contains(t, stdout, "AssertionError: expected 42")
}

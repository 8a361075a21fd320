package autograder

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, suiteContent string) *Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell semantics differ on windows")
	}

	suitePath := filepath.Join(t.TempDir(), "autograding.json")
	require.NoError(t, os.WriteFile(suitePath, []byte(suiteContent), 0644))

	return &Config{
		SuitePath:  suitePath,
		WorkDir:    t.TempDir(),
		ResultsDir: t.TempDir(),
		Log:        zap.NewNop().Sugar(),
	}
}

func TestAutograderEndToEnd(t *testing.T) {
	cfg := testConfig(t, `{
		"tests": [
			{"name": "A", "run": "true", "points": 2},
			{"name": "B", "run": "false", "points": 2}
		]
	}`)

	grader, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)

	err = grader.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsGradingFailureError(err))

	report := grader.Report()
	require.NotNil(t, report)
	assert.Equal(t, 2.0, report.Points)
	assert.Equal(t, 4.0, report.AvailablePoints)
	assert.Equal(t, 1, report.TestsPassed)
	assert.Equal(t, 1, report.TestsFailed)

	// The report artifact landed in the results directory.
	reportPath := filepath.Join(cfg.ResultsDir, "grading-"+report.RunID, "report.json")
	_, statErr := os.Stat(reportPath)
	assert.NoError(t, statErr)
}

func TestAutograderAllPassing(t *testing.T) {
	cfg := testConfig(t, `{
		"tests": [
			{"name": "A", "run": "true"},
			{"name": "B", "run": "echo Hello world!", "output": "world"}
		]
	}`)

	grader, err := New(context.Background(), cfg, "test")
	require.NoError(t, err)

	require.NoError(t, grader.Run(context.Background()))
	assert.True(t, grader.Report().FullPass())
}

func TestAutograderMissingWorkDir(t *testing.T) {
	cfg := testConfig(t, `{"tests": [{"name": "A", "run": "true"}]}`)
	cfg.WorkDir = filepath.Join(cfg.WorkDir, "does-not-exist")

	_, err := New(context.Background(), cfg, "test")
	require.Error(t, err)
}

func TestAutograderMalformedSuiteIsFatal(t *testing.T) {
	cfg := testConfig(t, `{"tests": [`)

	_, err := New(context.Background(), cfg, "test")
	require.Error(t, err)
}

func TestAutograderRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, "test")
	require.Error(t, err)
}

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradebot/autograder/types"
)

func writeSuiteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewRegistryJSON(t *testing.T) {
	path := writeSuiteFile(t, "autograding.json", `{
		"tests": [
			{
				"name": "addition",
				"setup": "pip install -r requirements.txt",
				"run": "python -m pytest test_add.py",
				"timeout": 7,
				"points": 10
			},
			{
				"name": "hello",
				"run": "python hello.py",
				"output": "Hello world!",
				"comparison": "exact"
			}
		],
		"all_or_nothing": true
	}`)

	reg, err := NewRegistry(Config{SuiteFile: path})
	require.NoError(t, err)

	suite := reg.Suite()
	require.Len(t, suite.Tests, 2)
	assert.True(t, suite.AllOrNothing)

	first := suite.Tests[0]
	assert.Equal(t, "addition", first.Name)
	assert.Equal(t, 7.0, first.Timeout)
	require.NotNil(t, first.Points)
	assert.Equal(t, 10.0, *first.Points)

	second := suite.Tests[1]
	assert.Equal(t, types.ComparisonExact, second.Comparison)
	assert.Nil(t, second.Points)

	assert.Equal(t, "autograding", reg.SuiteName())
}

func TestNewRegistryYAML(t *testing.T) {
	path := writeSuiteFile(t, "suite.yaml", `
tests:
  - name: greet
    run: echo hi
    output: hi
reward:
  title: Gold star
`)

	reg, err := NewRegistry(Config{SuiteFile: path})
	require.NoError(t, err)

	suite := reg.Suite()
	require.Len(t, suite.Tests, 1)
	require.NotNil(t, suite.Reward)
	assert.Equal(t, "Gold star", suite.Reward.Title)
}

func TestNewRegistryRejectsUnknownJSONFields(t *testing.T) {
	path := writeSuiteFile(t, "bad.json", `{
		"tests": [{"name": "a", "run": "true", "retries": 3}]
	}`)

	_, err := NewRegistry(Config{SuiteFile: path})
	require.Error(t, err)
}

func TestNewRegistryRejectsMalformedJSON(t *testing.T) {
	path := writeSuiteFile(t, "broken.json", `{"tests": [`)

	_, err := NewRegistry(Config{SuiteFile: path})
	require.Error(t, err)
}

func TestNewRegistryMissingFile(t *testing.T) {
	_, err := NewRegistry(Config{SuiteFile: filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
}

func TestNewRegistryRequiresSuiteFile(t *testing.T) {
	_, err := NewRegistry(Config{})
	require.Error(t, err)
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no tests",
			content: `{"tests": []}`,
		},
		{
			name:    "missing run command",
			content: `{"tests": [{"name": "a"}]}`,
		},
		{
			name:    "negative points",
			content: `{"tests": [{"name": "a", "run": "true", "points": -1}]}`,
		},
		{
			name:    "negative timeout",
			content: `{"tests": [{"name": "a", "run": "true", "timeout": -5}]}`,
		},
		{
			name:    "unknown comparison mode",
			content: `{"tests": [{"name": "a", "run": "true", "output": "x", "comparison": "fuzzy"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuiteFile(t, "suite.json", tt.content)
			_, err := NewRegistry(Config{SuiteFile: path})
			require.Error(t, err)
		})
	}
}

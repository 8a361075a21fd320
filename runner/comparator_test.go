package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradebot/autograder/types"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		mode     types.ComparisonMode
		expected string
		actual   string
		wantPass bool
	}{
		{
			name:     "exact match",
			mode:     types.ComparisonExact,
			expected: "Hello world!",
			actual:   "Hello world!",
			wantPass: true,
		},
		{
			name:     "exact mismatch",
			mode:     types.ComparisonExact,
			expected: "Hello world!",
			actual:   "Goodbye world!",
			wantPass: false,
		},
		{
			name:     "exact with surrounding whitespace",
			mode:     types.ComparisonExact,
			expected: "  Hello world!\n",
			actual:   "Hello world!",
			wantPass: true,
		},
		{
			name:     "exact with CRLF line endings",
			mode:     types.ComparisonExact,
			expected: "line one\nline two",
			actual:   "line one\r\nline two\r\n",
			wantPass: true,
		},
		{
			name:     "regex match anywhere",
			mode:     types.ComparisonRegex,
			expected: `\w world!`,
			actual:   "Hi world!",
			wantPass: true,
		},
		{
			name:     "regex no match",
			mode:     types.ComparisonRegex,
			expected: `^\d+$`,
			actual:   "not a number",
			wantPass: false,
		},
		{
			name:     "included substring",
			mode:     types.ComparisonIncluded,
			expected: "world",
			actual:   "Hello world!",
			wantPass: true,
		},
		{
			name:     "included missing substring",
			mode:     types.ComparisonIncluded,
			expected: "mars",
			actual:   "Hello world!",
			wantPass: false,
		},
		{
			name:     "included empty expected always passes",
			mode:     types.ComparisonIncluded,
			expected: "",
			actual:   "anything at all",
			wantPass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.mode, tt.expected, tt.actual)
			if tt.wantPass {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// The pattern string is deliberately not normalized; only the actual text
// is. A pattern anchored to the trimmed actual must still match.
func TestCompareRegexPatternNotNormalized(t *testing.T) {
	require.NoError(t, Compare(types.ComparisonRegex, `^Hi world!$`, "  Hi world!\n"))
}

func TestCompareRegexInvalidPattern(t *testing.T) {
	err := Compare(types.ComparisonRegex, `[unclosed`, "whatever")
	require.Error(t, err)
	assert.False(t, IsMismatch(err))
}

func TestCompareUnknownMode(t *testing.T) {
	err := Compare(types.ComparisonMode("fuzzy"), "a", "a")
	require.Error(t, err)
}

func TestCompareMismatchCarriesBothSides(t *testing.T) {
	err := Compare(types.ComparisonExact, "expected text", "actual text")
	require.Error(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "expected text", mismatch.Expected)
	assert.Equal(t, "actual text", mismatch.Actual)
	assert.Equal(t, types.ComparisonExact, mismatch.Mode)
}

// Compare is a pure function: identical arguments yield identical results.
func TestCompareIdempotent(t *testing.T) {
	first := Compare(types.ComparisonIncluded, "world", "Hello world!")
	second := Compare(types.ComparisonIncluded, "world", "Hello world!")
	assert.Equal(t, first == nil, second == nil)

	firstFail := Compare(types.ComparisonExact, "a", "b")
	secondFail := Compare(types.ComparisonExact, "a", "b")
	require.Error(t, firstFail)
	require.Error(t, secondFail)
	assert.Equal(t, firstFail.Error(), secondFail.Error())
}

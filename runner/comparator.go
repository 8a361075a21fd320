package runner

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gradebot/autograder/types"
)

// MismatchError indicates the command succeeded but its stdout did not
// satisfy the comparison rule. It carries both sides so a diff can be
// rendered.
type MismatchError struct {
	Mode     types.ComparisonMode
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("output mismatch (%s): expected %q, got %q", e.Mode, e.Expected, e.Actual)
}

// IsMismatch checks if the error is or wraps a MismatchError
func IsMismatch(err error) bool {
	var mismatchErr *MismatchError
	return err != nil && errors.As(err, &mismatchErr)
}

// Compare decides pass/fail for captured stdout against the expected
// text. Pure function: identical arguments always yield the identical
// result. A nil return means pass.
//
// Both sides are normalized (CRLF to LF, leading/trailing whitespace
// trimmed) before comparing, with one deliberate exception: in regex mode
// the pattern is compiled from the raw expected field and only the actual
// text is normalized.
func Compare(mode types.ComparisonMode, expected, actual string) error {
	normActual := normalize(actual)

	switch mode {
	case types.ComparisonExact:
		if normActual == normalize(expected) {
			return nil
		}
	case types.ComparisonRegex:
		re, err := regexp.Compile(expected)
		if err != nil {
			return fmt.Errorf("invalid expected output pattern %q: %w", expected, err)
		}
		if re.MatchString(normActual) {
			return nil
		}
	case types.ComparisonIncluded:
		if strings.Contains(normActual, normalize(expected)) {
			return nil
		}
	default:
		return fmt.Errorf("unknown comparison mode %q", mode)
	}

	return &MismatchError{Mode: mode, Expected: expected, Actual: actual}
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/gradebot/autograder/supervisor"
)

const maxExcerptLines = 10

// Markers that usually point at the interesting line of a failing test
// harness's output.
var failureMarkers = []string{
	"AssertionError",
	"assert",
	"FAILED",
	"FAIL",
	"Error:",
	"error:",
	"Exception",
	"panic:",
}

// FailureExcerpt extracts a short human-readable excerpt from a test
// failure for summary rendering. Children run with color forced, so ANSI
// sequences are stripped before slicing.
func FailureExcerpt(err error) string {
	if err == nil {
		return ""
	}

	var mismatchErr *MismatchError
	if errors.As(err, &mismatchErr) {
		return fmt.Sprintf("expected: %s\ngot: %s",
			truncateLine(mismatchErr.Expected), truncateLine(stripansi.Strip(mismatchErr.Actual)))
	}

	if supervisor.IsTimeout(err) {
		return err.Error()
	}

	if stdout, ok := supervisor.CapturedStdout(err); ok && strings.TrimSpace(stdout) != "" {
		return excerptFromOutput(stdout)
	}

	return err.Error()
}

// excerptFromOutput picks an assertion-looking line when one exists,
// otherwise a bounded slice of the final lines.
func excerptFromOutput(stdout string) string {
	clean := stripansi.Strip(strings.ReplaceAll(stdout, "\r\n", "\n"))
	lines := nonEmptyLines(clean)
	if len(lines) == 0 {
		return ""
	}

	for _, line := range lines {
		for _, marker := range failureMarkers {
			if strings.Contains(line, marker) {
				return truncateLine(line)
			}
		}
	}

	if len(lines) > maxExcerptLines {
		lines = lines[len(lines)-maxExcerptLines:]
	}
	return strings.Join(lines, "\n")
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func truncateLine(s string) string {
	const maxLen = 200
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return s[:maxLen] + "…"
	}
	return s
}

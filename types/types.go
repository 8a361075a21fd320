// Package types contains shared types used across the autograder.
package types

import (
	"strconv"
	"time"
)

// TestStatus represents the possible states of a test execution
type TestStatus string

const (
	TestStatusPass TestStatus = "pass"
	TestStatusFail TestStatus = "fail"
	TestStatusSkip TestStatus = "skip"
)

// ComparisonMode is the rule used to judge a test's captured output
// against its expected output.
type ComparisonMode string

const (
	ComparisonExact    ComparisonMode = "exact"
	ComparisonRegex    ComparisonMode = "regex"
	ComparisonIncluded ComparisonMode = "included"
)

// Valid reports whether the mode is one of the supported comparison modes.
func (m ComparisonMode) Valid() bool {
	switch m {
	case ComparisonExact, ComparisonRegex, ComparisonIncluded:
		return true
	}
	return false
}

// DefaultTimeout is applied when a test declares no timeout (or zero).
const DefaultTimeout = time.Minute

// TestCase is a single gradable unit as declared in the suite document.
// Timeout is expressed in minutes, matching the suite file format.
type TestCase struct {
	Name       string         `json:"name" yaml:"name"`
	Setup      string         `json:"setup,omitempty" yaml:"setup,omitempty"`
	Run        string         `json:"run" yaml:"run"`
	Input      string         `json:"input,omitempty" yaml:"input,omitempty"`
	Output     string         `json:"output,omitempty" yaml:"output,omitempty"`
	Comparison ComparisonMode `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	Timeout    float64        `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Points     *float64       `json:"points,omitempty" yaml:"points,omitempty"`
}

// TimeoutDuration returns the wall-clock budget for the whole test
// (setup plus run), defaulting to one minute.
func (t TestCase) TimeoutDuration() time.Duration {
	if t.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(t.Timeout * float64(time.Minute))
}

// Mode returns the declared comparison mode, defaulting to "included".
func (t TestCase) Mode() ComparisonMode {
	if t.Comparison == "" {
		return ComparisonIncluded
	}
	return t.Comparison
}

// DeclaresPoints reports whether the test carries a point weight.
// A test without points is pass/fail only.
func (t TestCase) DeclaresPoints() bool {
	return t.Points != nil
}

// PointValue returns the declared point weight, or 0 for unweighted tests.
func (t TestCase) PointValue() float64 {
	if t.Points == nil {
		return 0
	}
	return *t.Points
}

// Reward is presentational metadata shown only when every test passes.
// It never affects scoring.
type Reward struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Suite is an ordered collection of test cases plus run-wide policy flags.
// Declaration order is execution order.
type Suite struct {
	Tests        []TestCase `json:"tests" yaml:"tests"`
	AllOrNothing bool       `json:"all_or_nothing,omitempty" yaml:"all_or_nothing,omitempty"`
	Reward       *Reward    `json:"reward,omitempty" yaml:"reward,omitempty"`
}

// DeclaresPoints reports whether at least one test in the suite is weighted.
// When no test declares points the point totals are meaningless and
// consumers should report a passed/total ratio instead.
func (s Suite) DeclaresPoints() bool {
	for _, t := range s.Tests {
		if t.DeclaresPoints() {
			return true
		}
	}
	return false
}

// TestResult captures the outcome of a single test's turn. It is owned by
// the executor for the duration of the turn and immutable once appended to
// the report log.
type TestResult struct {
	Name            string        `json:"name"`
	Status          TestStatus    `json:"status"`
	Weighted        bool          `json:"weighted,omitempty"`
	PointsEarned    float64       `json:"points_earned"`
	PointsAvailable float64       `json:"points_available"`
	Duration        time.Duration `json:"duration"`
	Excerpt         string        `json:"excerpt,omitempty"`
	Error           error         `json:"-"`
}

// Report is the aggregate, ordered record of one suite run.
type Report struct {
	SuiteName       string        `json:"suite"`
	RunID           string        `json:"run_id"`
	Points          float64       `json:"points"`
	AvailablePoints float64       `json:"available_points"`
	TestsPassed     int           `json:"tests_passed"`
	TestsFailed     int           `json:"tests_failed"`
	TestsSkipped    int           `json:"tests_skipped"`
	AllOrNothing    bool          `json:"all_or_nothing"`
	HasPoints       bool          `json:"has_points"`
	Duration        time.Duration `json:"duration"`
	Results         []TestResult  `json:"results"`
}

// Status returns the aggregate outcome of the run.
func (r *Report) Status() TestStatus {
	if r.TestsFailed > 0 {
		return TestStatusFail
	}
	if r.TestsPassed == len(r.Results) && len(r.Results) > 0 {
		return TestStatusPass
	}
	return TestStatusSkip
}

// FullPass reports whether every declared test passed.
func (r *Report) FullPass() bool {
	return len(r.Results) > 0 && r.TestsPassed == len(r.Results)
}

// ScoreLine renders the short human-readable score summary,
// e.g. "Points 7/10" for weighted suites or "Passed 3/4" otherwise.
func (r *Report) ScoreLine() string {
	if r.HasPoints {
		return "Points " + FormatPoints(r.Points) + "/" + FormatPoints(r.AvailablePoints)
	}
	return "Passed " + strconv.Itoa(r.TestsPassed) + "/" + strconv.Itoa(len(r.Results))
}

// FormatPoints renders a point value without a trailing fraction for
// whole numbers ("7", "2.5").
func FormatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

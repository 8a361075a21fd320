package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gradebot/autograder/types"
)

const (
	MetricsNamespace = "autograder"
)

var (
	validResults         = []types.TestStatus{types.TestStatusPass, types.TestStatusFail, types.TestStatusSkip}
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	testsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "tests_total",
		Help:      "Count of graded tests by result",
	}, []string{
		"run_id",
		"name",
		"result",
	})

	gradingResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_results",
		Help:      "Result of grading runs",
	}, []string{
		"suite",
		"run_id",
		"result",
	})

	gradingPoints = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_points",
		Help:      "Earned and available points of a grading run",
	}, []string{
		"suite",
		"run_id",
		"kind",
	})

	gradingTestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_test_total",
		Help:      "Total number of graded tests",
	}, []string{
		"suite",
		"run_id",
	})

	gradingTestPassed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_test_passed",
		Help:      "Number of passed tests",
	}, []string{
		"suite",
		"run_id",
	})

	gradingTestFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_test_failed",
		Help:      "Number of failed tests",
	}, []string{
		"suite",
		"run_id",
	})

	gradingDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "grading_duration",
		Help:      "Duration of grading runs in seconds",
	}, []string{
		"suite",
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordTest records the outcome of a single graded test.
func RecordTest(runID string, testName string, result types.TestStatus) {
	if !isValidResult(result) {
		RecordError(fmt.Sprintf("invalid_test_result.%s", result))
		return
	}
	testsTotal.WithLabelValues(runID, testName, string(result)).Inc()
}

// RecordRun records the aggregate outcome of one grading run.
func RecordRun(report *types.Report) {
	gradingResults.WithLabelValues(report.SuiteName, report.RunID, string(report.Status())).Set(1)
	gradingPoints.WithLabelValues(report.SuiteName, report.RunID, "earned").Set(report.Points)
	gradingPoints.WithLabelValues(report.SuiteName, report.RunID, "available").Set(report.AvailablePoints)
	gradingTestTotal.WithLabelValues(report.SuiteName, report.RunID).Add(float64(len(report.Results)))
	gradingTestPassed.WithLabelValues(report.SuiteName, report.RunID).Add(float64(report.TestsPassed))
	gradingTestFailed.WithLabelValues(report.SuiteName, report.RunID).Add(float64(report.TestsFailed))
	gradingDuration.WithLabelValues(report.SuiteName, report.RunID).Set(report.Duration.Seconds())
}

func isValidResult(result types.TestStatus) bool {
	return slices.Contains(validResults, result)
}

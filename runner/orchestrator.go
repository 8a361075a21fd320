package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gradebot/autograder/metrics"
	"github.com/gradebot/autograder/types"
)

// Orchestrator iterates an ordered test list strictly serially, applies
// the all-or-nothing skip policy, and accumulates the report. It owns the
// report exclusively for the duration of a run.
type Orchestrator struct {
	executor *Executor
	log      *zap.SugaredLogger
	out      io.Writer // workflow-command stream (fencing markers)
	tracer   trace.Tracer
}

// NewOrchestrator creates an orchestrator. Fencing markers are written
// to out.
func NewOrchestrator(executor *Executor, log *zap.SugaredLogger, out io.Writer) *Orchestrator {
	return &Orchestrator{
		executor: executor,
		log:      log,
		out:      out,
		tracer:   otel.Tracer("suite orchestrator"),
	}
}

// RunAll executes every test in declared order and returns the completed
// report. Test failures never propagate past this boundary; they are
// recorded in the report.
func (o *Orchestrator) RunAll(ctx context.Context, suite types.Suite, suiteName string) *types.Report {
	ctx, span := o.tracer.Start(ctx, fmt.Sprintf("suite %s", suiteName))
	defer span.End()

	runID := uuid.New().String()
	start := time.Now()
	o.log.Infow("Running suite", "suite", suiteName, "run_id", runID,
		"tests", len(suite.Tests), "all_or_nothing", suite.AllOrNothing)

	report := &types.Report{
		SuiteName:    suiteName,
		RunID:        runID,
		AllOrNothing: suite.AllOrNothing,
		HasPoints:    suite.DeclaresPoints(),
		Results:      make([]types.TestResult, 0, len(suite.Tests)),
	}

	// A student's program can print anything, including workflow control
	// sequences. A one-time token fences the whole run so the surrounding
	// log processor ignores them.
	token := uuid.New().String()
	fmt.Fprintf(o.out, "::stop-commands::%s\n", token)

	anyFailed := false
	for _, tc := range suite.Tests {
		result := o.runTest(ctx, tc, suite.AllOrNothing && anyFailed)

		switch result.Status {
		case types.TestStatusPass:
			report.TestsPassed++
			report.Points += result.PointsEarned
		case types.TestStatusFail:
			report.TestsFailed++
			anyFailed = true
		case types.TestStatusSkip:
			// Skipped tests are their own bucket: no pass/fail count,
			// no earned points.
			report.TestsSkipped++
		}
		// Available points are always tallied, skipped tests included,
		// so the denominator reflects the whole suite.
		report.AvailablePoints += result.PointsAvailable

		report.Results = append(report.Results, result)
		metrics.RecordTest(runID, tc.Name, result.Status)
	}

	if suite.AllOrNothing && anyFailed {
		// Per-test earnings stay in the log for diagnostics; only the
		// aggregate total is zeroed.
		o.log.Warnw("All-or-nothing suite had failures, zeroing earned points",
			"suite", suiteName, "failed", report.TestsFailed)
		report.Points = 0
	}

	fmt.Fprintf(o.out, "::%s::\n", token)

	report.Duration = time.Since(start)
	o.log.Infow("Suite run completed", "suite", suiteName, "run_id", runID,
		"passed", report.TestsPassed, "failed", report.TestsFailed,
		"skipped", report.TestsSkipped, "score", report.ScoreLine())

	return report
}

// runTest executes a single test's turn and hands back its completed
// result. The skipped flag marks tests short-circuited by an earlier
// all-or-nothing failure; they are never attempted.
func (o *Orchestrator) runTest(ctx context.Context, tc types.TestCase, skipped bool) types.TestResult {
	result := types.TestResult{
		Name:            tc.Name,
		Weighted:        tc.DeclaresPoints(),
		PointsAvailable: tc.PointValue(),
	}

	if skipped {
		o.log.Infow("Skipping test after earlier failure", "test", tc.Name)
		result.Status = types.TestStatusSkip
		return result
	}

	testCtx, span := o.tracer.Start(ctx, fmt.Sprintf("test %s", tc.Name))
	defer span.End()

	o.log.Infow("Running test", "test", tc.Name)
	start := time.Now()
	err := o.executor.Run(testCtx, tc)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = types.TestStatusFail
		result.Error = err
		result.Excerpt = FailureExcerpt(err)
		o.log.Warnw("Test failed", "test", tc.Name, "duration", result.Duration, "error", err)
		return result
	}

	result.Status = types.TestStatusPass
	result.PointsEarned = tc.PointValue()
	o.log.Infow("Test passed", "test", tc.Name, "duration", result.Duration)
	return result
}

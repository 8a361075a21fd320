// Package autograder wires the suite registry, the grading engine, and
// the publishing sinks into one run.
package autograder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gradebot/autograder/metrics"
	"github.com/gradebot/autograder/registry"
	"github.com/gradebot/autograder/reporting"
	"github.com/gradebot/autograder/runner"
	"github.com/gradebot/autograder/supervisor"
	"github.com/gradebot/autograder/types"
)

// Autograder runs one grading pass over a submitted codebase.
type Autograder struct {
	config       *Config
	version      string
	registry     *registry.Registry
	orchestrator *runner.Orchestrator
	reportSink   reporting.ReportSink
	statusSink   reporting.StatusSink
	out          io.Writer
	report       *types.Report
}

func New(ctx context.Context, config *Config, version string) (*Autograder, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debugw("Creating autograder",
		"suitePath", config.SuitePath,
		"workDir", config.WorkDir,
		"resultsDir", config.ResultsDir)

	// A missing working directory aborts the whole run before any test
	// executes.
	info, err := os.Stat(config.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("working directory %q: %w", config.WorkDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working directory %q is not a directory", config.WorkDir)
	}

	reg, err := registry.NewRegistry(registry.Config{
		Log:       config.Log,
		SuiteFile: config.SuitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	sup := supervisor.New(config.Log)
	executor := runner.NewExecutor(sup, config.WorkDir, config.Log)
	out := io.Writer(os.Stdout)
	orchestrator := runner.NewOrchestrator(executor, config.Log, out)

	return &Autograder{
		config:       config,
		version:      version,
		registry:     reg,
		orchestrator: orchestrator,
		reportSink:   reporting.NewJSONFileSink(config.ResultsDir, config.Log),
		statusSink:   reporting.NewNoticeStatusSink(out),
		out:          out,
	}, nil
}

// Run grades the suite once. Test failures surface as a
// GradingFailureError (exit code 1); only configuration-level problems
// come back as runtime errors.
func (a *Autograder) Run(ctx context.Context) error {
	suite := a.registry.Suite()
	suiteName := a.config.SuiteName
	if suiteName == "" {
		suiteName = a.registry.SuiteName()
	}

	report := a.orchestrator.RunAll(ctx, suite, suiteName)
	a.report = report
	metrics.RecordRun(report)

	if a.config.Summary {
		fmt.Fprint(a.out, reporting.RenderSummary(report))
		if report.FullPass() && suite.Reward != nil {
			fmt.Fprint(a.out, reporting.RenderReward(suite.Reward))
		}
	}

	// Sink failures are logged, never treated as grading failures.
	if err := a.reportSink.Publish(report); err != nil {
		a.config.Log.Warnw("Failed to publish report", "error", err)
		metrics.RecordErrorDetails("report publish failed", err)
	}
	if report.HasPoints {
		if err := a.statusSink.PublishStatus(report.ScoreLine()); err != nil {
			a.config.Log.Warnw("Failed to publish status", "error", err)
			metrics.RecordErrorDetails("status publish failed", err)
		}
	}

	if report.TestsFailed > 0 {
		return NewGradingFailureError(report.ScoreLine())
	}
	return nil
}

// Report returns the last completed report, or nil before Run.
func (a *Autograder) Report() *types.Report {
	return a.report
}

package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gradebot/autograder/supervisor"
	"github.com/gradebot/autograder/types"
)

// Executor runs one test at a time: optional setup command, then the run
// command, both through the process supervisor and within the test's
// single wall-clock budget.
type Executor struct {
	supervisor *supervisor.Supervisor
	workDir    string
	log        *zap.SugaredLogger
}

// NewExecutor creates an executor rooted at workDir.
func NewExecutor(sup *supervisor.Supervisor, workDir string, log *zap.SugaredLogger) *Executor {
	return &Executor{
		supervisor: sup,
		workDir:    workDir,
		log:        log,
	}
}

// Run executes the test and returns nil when it passes. Any failure
// (setup or run timeout, non-zero exit, spawn failure, output mismatch)
// comes back as a typed error; run-phase exit errors retain the captured
// stdout for excerpt extraction.
func (e *Executor) Run(ctx context.Context, tc types.TestCase) error {
	budget := tc.TimeoutDuration()

	if tc.Setup != "" {
		setupStart := time.Now()
		e.log.Debugw("Running setup", "test", tc.Name, "setup", tc.Setup)
		if _, err := e.supervisor.Execute(ctx, supervisor.Command{
			Command: tc.Setup,
			Dir:     e.workDir,
			Timeout: budget,
		}); err != nil {
			// Setup failure is the test's failure; the run phase is
			// never attempted.
			return err
		}
		// Setup consumed part of the budget, the run phase gets the rest.
		budget -= time.Since(setupStart)
		if budget < 0 {
			budget = 0
		}
	}

	e.log.Debugw("Running command", "test", tc.Name, "run", tc.Run, "budget", budget)
	stdout, err := e.supervisor.Execute(ctx, supervisor.Command{
		Command: tc.Run,
		Dir:     e.workDir,
		Timeout: budget,
		Stdin:   tc.Input,
	})
	if err != nil {
		return err
	}

	if tc.Output == "" && tc.Input == "" {
		// Externally verified mode: the run's exit code alone is
		// authoritative.
		return nil
	}

	return Compare(tc.Mode(), tc.Output, stdout)
}

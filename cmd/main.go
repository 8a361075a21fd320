package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	"github.com/gradebot/autograder"
	"github.com/gradebot/autograder/exitcodes"
	"github.com/gradebot/autograder/flags"
	"github.com/gradebot/autograder/logging"
	"github.com/gradebot/autograder/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "autograder"
	app.Usage = "Grading-test execution engine"
	app.Description = "autograder runs a declarative test suite against a submitted codebase and produces a point/pass-fail report"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if autograder.IsGradingFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.GradingFailure))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			}
		}
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(ctx *cli.Context) error {
	log, err := logging.New(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return autograder.NewRuntimeError(fmt.Errorf("failed to create logger: %w", err))
	}
	defer log.Sync() //nolint:errcheck

	// Telemetry is best-effort; grading proceeds without it.
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(ctx.App.Name),
		otelconfig.WithServiceVersion(ctx.App.Version),
	)
	if err != nil {
		log.Warnw("Failed to set up open telemetry", "error", err)
	} else {
		defer otelShutdown()
	}

	// Healthz and metrics surfaces for fleet observability.
	svc := service.New(log)
	svc.Start(ctx.Context)
	defer svc.Shutdown()

	cfg, err := autograder.NewConfig(ctx, log)
	if err != nil {
		return autograder.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	grader, err := autograder.New(ctx.Context, cfg, Version)
	if err != nil {
		return autograder.NewRuntimeError(fmt.Errorf("failed to create autograder: %w", err))
	}

	return grader.Run(ctx.Context)
}

package autograder

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/gradebot/autograder/flags"
)

// Config holds the application configuration. It is built once at the
// process boundary and passed down by argument; the engine never reads
// ambient configuration.
type Config struct {
	SuitePath  string // Path to the suite file
	WorkDir    string // Root for all setup/run command execution
	SuiteName  string // Display name for the report
	ResultsDir string // Where report artifacts land
	Summary    bool   // Render the tabular human summary
	Log        *zap.SugaredLogger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log *zap.SugaredLogger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	suitePath := ctx.String(flags.Suite.Name)
	if suitePath == "" {
		return nil, errors.New("suite file is required")
	}
	workDir := ctx.String(flags.WorkDir.Name)
	if workDir == "" {
		return nil, errors.New("working directory is required")
	}

	absSuitePath, err := filepath.Abs(suitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for suite file '%s': %w", suitePath, err)
	}
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for working directory '%s': %w", workDir, err)
	}
	resultsDir, err := filepath.Abs(ctx.String(flags.ResultsDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for results directory: %w", err)
	}

	return &Config{
		SuitePath:  absSuitePath,
		WorkDir:    absWorkDir,
		SuiteName:  ctx.String(flags.SuiteName.Name),
		ResultsDir: resultsDir,
		Summary:    ctx.Bool(flags.Summary.Name),
		Log:        log,
	}, nil
}

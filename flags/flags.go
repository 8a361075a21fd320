package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "AUTOGRADER"

func prefixEnvVar(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Suite = &cli.StringFlag{
		Name:     "suite",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVar("SUITE"),
		Usage:    "Path to the suite file declaring the tests to grade (eg. 'autograding.json')",
	}
	WorkDir = &cli.StringFlag{
		Name:     "workdir",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVar("WORKDIR"),
		Usage:    "Path to the submitted codebase; all test commands run rooted here",
	}
	SuiteName = &cli.StringFlag{
		Name:    "suite-name",
		Value:   "",
		EnvVars: prefixEnvVar("SUITE_NAME"),
		Usage:   "Display name for the suite; defaults to the suite file's base name",
	}
	ResultsDir = &cli.StringFlag{
		Name:    "results-dir",
		Value:   "results",
		EnvVars: prefixEnvVar("RESULTS_DIR"),
		Usage:   "Directory where report artifacts are written",
	}
	Summary = &cli.BoolFlag{
		Name:    "summary",
		Value:   false,
		EnvVars: prefixEnvVar("SUMMARY"),
		Usage:   "Print the tabular human summary after grading",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVar("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	Suite,
	WorkDir,
}

var optionalFlags = []cli.Flag{
	SuiteName,
	ResultsDir,
	Summary,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}

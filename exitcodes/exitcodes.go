// Package exitcodes defines the standard exit codes used by the autograder.
package exitcodes

// Exit code constants used by the autograder
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when all graded tests pass
// * GradingFailure (1): Used when one or more graded tests fail
// * RuntimeErr (2): Used for runtime errors such as a missing working
//   directory, an unreadable suite file, or malformed suite JSON
const (
	Success        = 0 // All tests pass
	GradingFailure = 1 // Test failures
	RuntimeErr     = 2 // Runtime errors
)

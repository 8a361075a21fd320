// Package supervisor spawns one shell command at a time, captures its
// stdout, and enforces a wall-clock timeout with guaranteed termination
// of the entire process tree.
package supervisor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// hardCeilingSlack is added on top of the caller-supplied timeout for the
// context deadline backing the spawn. It only bounds worst-case scheduling
// slop; the caller-visible timeout semantics are defined by the
// supervisor's own timer.
const hardCeilingSlack = time.Second

// Command describes one shell command to supervise.
type Command struct {
	Command string        // shell command line, required
	Dir     string        // working directory the command is rooted at
	Timeout time.Duration // wall-clock budget before the process tree is killed
	Stdin   string        // written to the child's stdin and closed; empty means no input
}

// Supervisor runs commands one at a time. Safe to reuse across calls;
// only a single command is ever in flight per suite run.
type Supervisor struct {
	log    *zap.SugaredLogger
	stderr io.Writer // destination for the child's live stderr
}

// New creates a supervisor. Children's stderr is forwarded to the
// process's own stderr.
func New(log *zap.SugaredLogger) *Supervisor {
	return &Supervisor{log: log, stderr: os.Stderr}
}

// Execute spawns the command and returns its captured stdout on success.
// It fails with *TimeoutError, *ExitError or *SpawnError. Once the timeout
// fires the outcome is final: the tree is killed and any late exit from
// the child is discarded.
func (s *Supervisor) Execute(ctx context.Context, c Command) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout+hardCeilingSlack)
	defer cancel()

	cmd := exec.CommandContext(ctx, shellBinary, shellFlag, c.Command)
	cmd.Dir = c.Dir
	// Only PATH leaks through from the parent environment. Color is
	// forced so tooling output keeps its ANSI markers when captured.
	cmd.Env = []string{"PATH=" + os.Getenv("PATH"), "FORCE_COLOR=true"}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = s.stderr
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	setProcessGroup(cmd)
	// The runtime invokes Cancel if the ceiling context expires before
	// our timer is serviced; either path kills the whole group.
	cmd.Cancel = func() error { return terminateTree(cmd) }
	cmd.WaitDelay = time.Second

	s.log.Debugw("Spawning command", "command", c.Command, "dir", c.Dir, "timeout", c.Timeout)

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Command: c.Command, Err: err}
	}

	timer := time.NewTimer(c.Timeout)
	defer timer.Stop()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-timer.C:
		s.log.Warnw("Command timed out, killing process tree", "command", c.Command, "timeout", c.Timeout)
		if err := terminateTree(cmd); err != nil {
			s.log.Errorw("Failed to terminate process tree", "command", c.Command, "error", err)
		}
		// Reap the child; its exit status is irrelevant once the
		// timeout has fired.
		<-done
		return "", &TimeoutError{Command: c.Command, After: c.Timeout}
	case err := <-done:
		if err == nil {
			return stdout.String(), nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{Command: c.Command, Code: exitErr.ExitCode(), Stdout: stdout.String()}
		}
		return "", &SpawnError{Command: c.Command, Err: err}
	}
}

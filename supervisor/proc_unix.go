//go:build unix

package supervisor

import (
	"errors"
	"os/exec"
	"syscall"
)

const (
	shellBinary = "/bin/sh"
	shellFlag   = "-c"
)

// setProcessGroup places the child in its own process group so the whole
// tree can be signalled at once, including shell-spawned descendants.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateTree kills the entire process group rooted at the child.
func terminateTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		// Group already gone.
		return nil
	}
	return err
}

//go:build windows

package supervisor

import "os/exec"

const (
	shellBinary = "cmd"
	shellFlag   = "/C"
)

func setProcessGroup(cmd *exec.Cmd) {}

// terminateTree kills the immediate child only. Windows has no process
// groups in the POSIX sense; grandchildren spawned by the shell may
// outlive the kill. Job objects would close that gap.
func terminateTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

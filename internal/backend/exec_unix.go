//go:build !windows

package backend

import (
	"errors"
	"os/exec"
	"syscall"
)

// sysProcAttr places the child in its own process group so a kill reaches
// any workers it forked.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcess terminates the child's whole process group. A vanished group
// is not an error; shutdown proceeds regardless.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}
		// Fall back to killing the direct child only.
		return cmd.Process.Kill()
	}
	return nil
}

//go:build windows

package backend

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// sysProcAttr suppresses the console window the backend would otherwise
// flash on screen. Not user-configurable.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NO_WINDOW,
		HideWindow:    true,
	}
}

// killProcess terminates the direct child. Windows has no POSIX process
// groups; the backend is expected to tear down its own workers.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

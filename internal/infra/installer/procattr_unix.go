//go:build unix

package installer

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the installer in its own process group so that a
// timeout also kills the lifecycle scripts it spawned.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

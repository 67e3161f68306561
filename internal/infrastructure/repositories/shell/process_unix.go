//go:build unix

package shell

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminateGroup(cmd *exec.Cmd) error {
	return signalGroup(cmd, unix.SIGTERM)
}

func killGroup(cmd *exec.Cmd) error {
	return signalGroup(cmd, unix.SIGKILL)
}

// signalGroup signals every process in the command's group. A group that is
// already gone is not an error.
func signalGroup(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd.Process == nil {
		return nil
	}
	if err := unix.Kill(-cmd.Process.Pid, sig); err != nil && !errors.Is(err, unix.ESRCH) {
		return err
	}
	return nil
}

//go:build !windows

package record

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// detach puts the backend in its own process group so terminal job control
// (Ctrl+C, Ctrl+Z) reaches it only through this package.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(p *os.Process) error { return p.Signal(syscall.SIGTERM) }

func suspend(p *os.Process) error { return p.Signal(syscall.SIGSTOP) }

func resume(p *os.Process) error { return p.Signal(syscall.SIGCONT) }

// stoppedBySignal reports whether err is the exit of a process that was
// killed by a signal, as opposed to one that exited with its own status.
func stoppedBySignal(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && ws.Signaled()
}

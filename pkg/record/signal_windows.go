//go:build windows

package record

import (
	"errors"
	"os"
	"os/exec"
)

func detach(*exec.Cmd) {}

// Windows has no SIGTERM, so the backend is killed outright.
func terminate(p *os.Process) error { return p.Kill() }

func suspend(*os.Process) error { return ErrPauseUnsupported }

func resume(*os.Process) error { return ErrPauseUnsupported }

// Kill leaves exit code 1, which cannot be told apart from a failure.
func stoppedBySignal(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

//go:build !windows

package cli

import (
	"os"
	"syscall"
)

func pauseSignals() []os.Signal { return []os.Signal{syscall.SIGUSR1} }

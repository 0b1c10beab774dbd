//go:build !windows

package lock

import (
	"errors"
	"os"
	"syscall"
)

// processAlive probes pid with signal 0. EPERM means the process exists but
// belongs to another user.
func processAlive(pid int) bool {
	p, e := os.FindProcess(pid)
	if e != nil {
		return false
	}
	e = p.Signal(syscall.Signal(0))
	return e == nil || errors.Is(e, syscall.EPERM)
}

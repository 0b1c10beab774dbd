//go:build windows

package lock

import "os"

// processAlive reports whether pid names a running process. FindProcess
// opens a handle on Windows and fails for unknown pids.
func processAlive(pid int) bool {
	p, e := os.FindProcess(pid)
	if e != nil {
		return false
	}
	_ = p.Release()
	return true
}

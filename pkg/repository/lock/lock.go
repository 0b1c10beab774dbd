// Package lock provides the exclusive repository lock taken by operations
// that mutate HEAD, the index or the working directory.
package lock

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/fsio"
	"github.com/utkarsh5026/gitproject/pkg/repository/scpath"
)

const pkgName = "lock"

// LockFile represents a held .gitproject/lock. It prevents a second process
// from committing or checking out at the same time.
type LockFile struct {
	fs   fsio.FS
	path string
}

// Acquire attempts to create the lock file exclusively.
// Returns a LockFailed error if another process already holds the lock.
func Acquire(fs fsio.FS, sourceDir scpath.SourcePath) (*LockFile, error) {
	lockPath := sourceDir.LockPath().String()

	if e := fs.CreateExclusive(lockPath, []byte(strconv.Itoa(os.Getpid())+"\n")); e != nil {
		if fsio.IsExist(e) {
			return nil, err.New(pkgName, err.CodeLockFailed, "Acquire",
				fmt.Sprintf("another process holds the lock (remove %s if no gitproject process is running)", lockPath), e).
				WithContext("holder", Holder(fs, sourceDir))
		}
		return nil, err.New(pkgName, err.CodeIOFailure, "Acquire", "failed to create lock file "+lockPath, e)
	}

	return &LockFile{fs: fs, path: lockPath}, nil
}

// Release deletes the lock file. Releasing twice is harmless.
func (l *LockFile) Release() error {
	if e := l.fs.Remove(l.path); e != nil && !fsio.IsNotExist(e) {
		return err.New(pkgName, err.CodeIOFailure, "Release", "failed to remove lock file "+l.path, e)
	}
	return nil
}

// Path returns the lock file path
func (l *LockFile) Path() string {
	return l.path
}

// Holder returns the process id recorded in an existing lock, or 0 when the
// repository is unlocked or the file does not hold a pid.
func Holder(fs fsio.FS, sourceDir scpath.SourcePath) int {
	data, e := fs.ReadFile(sourceDir.LockPath().String())
	if e != nil {
		return 0
	}
	pid, e := strconv.Atoi(strings.TrimSpace(string(data)))
	if e != nil {
		return 0
	}
	return pid
}

// Break removes the lock whoever holds it. Callers that cannot tell whether
// the holder is still running use BreakStale.
func Break(fs fsio.FS, sourceDir scpath.SourcePath) error {
	lockPath := sourceDir.LockPath().String()
	if e := fs.Remove(lockPath); e != nil && !fsio.IsNotExist(e) {
		return err.New(pkgName, err.CodeIOFailure, "Break", "failed to remove lock file "+lockPath, e)
	}
	return nil
}

// BreakStale removes the lock only when the process recorded in it is gone.
// A lock without a readable pid counts as stale. It reports whether a lock
// was removed.
func BreakStale(fs fsio.FS, sourceDir scpath.SourcePath) (bool, error) {
	if !fs.Exists(sourceDir.LockPath().String()) {
		return false, nil
	}
	if pid := Holder(fs, sourceDir); pid > 0 && processAlive(pid) {
		return false, nil
	}
	if e := Break(fs, sourceDir); e != nil {
		return false, e
	}
	return true, nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const lockFileName = ".trk.lock"

// lockRetryInterval is how often a timed acquisition re-attempts the flock.
const lockRetryInterval = 25 * time.Millisecond

// Dir is a storage directory holding the tracker's documents and lock file.
type Dir struct {
	path        string
	lockTimeout time.Duration
}

// Options configures a storage directory.
type Options struct {
	// LockTimeout bounds how long a mutating operation waits for the
	// directory lock. Zero means block until the lock is available.
	LockTimeout time.Duration
}

// Open opens the storage directory at path, creating it if needed.
func Open(path string, opts Options) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("%w: create storage dir: %v", ErrPersistence, err)
	}
	return &Dir{path: path, lockTimeout: opts.LockTimeout}, nil
}

// Path returns the absolute path of a document within the directory.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.path
}

// WithLock executes fn while holding an exclusive advisory lock on the
// directory. The lock is released on every exit path, including when fn
// returns an error or panics. Read-only operations do not need the lock.
func (d *Dir) WithLock(fn func() error) error {
	f, err := os.OpenFile(d.Path(lockFileName), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("%w: open lock file: %v", ErrPersistence, err)
	}
	defer f.Close()

	if err := d.flock(f); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

func (d *Dir) flock(f *os.File) error {
	if d.lockTimeout <= 0 {
		if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
			return fmt.Errorf("%w: acquire lock: %v", ErrPersistence, err)
		}
		return nil
	}

	// flock(2) has no timeout, so poll with LOCK_NB until the deadline.
	deadline := time.Now().Add(d.lockTimeout)
	for {
		err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return nil
		}
		if err != syscall.EWOULDBLOCK && err != syscall.EAGAIN {
			return fmt.Errorf("%w: acquire lock: %v", ErrPersistence, err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %w after %s", ErrPersistence, ErrLockTimeout, d.lockTimeout)
		}
		time.Sleep(lockRetryInterval)
	}
}

package audit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	lockInitialInterval = 5 * time.Millisecond
	lockMaxInterval     = 50 * time.Millisecond
	lockMaxElapsed      = 500 * time.Millisecond
)

var (
	errLockBusy        = errors.New("audit log is locked by another process")
	errLockUnsupported = errors.New("advisory locking is not supported")
)

// Writer appends lines to the audit log under an exclusive advisory lock.
// When the platform or filesystem cannot lock, or the lock stays busy past
// the retry budget, the line is appended unlocked.
type Writer struct {
	path       string
	newBackOff func() backoff.BackOff
}

// NewWriter creates a Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{path: path, newBackOff: newLockBackOff}
}

func newLockBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = lockInitialInterval
	bo.MaxInterval = lockMaxInterval
	bo.MaxElapsedTime = lockMaxElapsed
	return bo
}

// Append writes one complete line.
func (w *Writer) Append(line []byte) error {
	//nolint:gosec // audit log path comes from settings
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	locked := w.lock(file)
	if locked {
		defer func() { _ = unlockFile(file) }()
	}

	if _, err = file.Write(line); err != nil {
		return fmt.Errorf("failed to append to audit log: %w", err)
	}
	return nil
}

// lock reports whether the lock was taken.
func (w *Writer) lock(file *os.File) bool {
	err := backoff.Retry(func() error {
		lockErr := tryLockFile(file)
		if lockErr == nil || errors.Is(lockErr, errLockBusy) {
			return lockErr
		}
		return backoff.Permanent(lockErr)
	}, w.newBackOff())
	return err == nil
}

package audit

import "github.com/cenkalti/backoff/v4"

// NewWriterWithBackOff exports a Writer with a custom lock retry policy for testing.
func NewWriterWithBackOff(path string, newBackOff func() backoff.BackOff) *Writer {
	return &Writer{path: path, newBackOff: newBackOff}
}

package budget

import (
	"errors"
	"fmt"
)

// Sentinel errors, for use with errors.Is().
var (
	// ErrIndexOutOfRange is returned when a positional entry operation
	// references a row that does not exist.
	ErrIndexOutOfRange = errors.New("entry index out of range")

	// ErrSaveFailed wraps persistence write failures. These are non-fatal:
	// in-memory state stays authoritative and the next mutation retries
	// with a full-record write.
	ErrSaveFailed = errors.New("period save failed")
)

// IndexError carries the offending index alongside ErrIndexOutOfRange.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entry index %d out of range (ledger has %d entries)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

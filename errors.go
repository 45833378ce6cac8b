package distmeta

import "errors"

// Sentinel errors for distribution inspection.
//
// Failure sites wrap these with fmt.Errorf("%w: ...") so callers can match
// with errors.Is while still seeing the offending input in the message.
var (
	// ErrInvalidName is returned when a wheel filename or project name does
	// not satisfy the wheel filename grammar.
	ErrInvalidName = errors.New("distmeta: invalid wheel filename")

	// ErrRecordParse is returned when a RECORD line is malformed.
	ErrRecordParse = errors.New("distmeta: malformed RECORD")

	// ErrFileNotFound is returned when a required metadata file is absent.
	ErrFileNotFound = errors.New("distmeta: file not found")

	// ErrDistributionNotFound is returned when a search path is exhausted
	// without a matching distribution.
	ErrDistributionNotFound = errors.New("distmeta: distribution not found")

	// ErrClosed is returned when a wheel distribution is used after Close,
	// or closed twice.
	ErrClosed = errors.New("distmeta: wheel archive closed")

	// ErrDetached is returned when reading a record entry that has no
	// distribution bound.
	ErrDetached = errors.New("distmeta: cannot read file: no distribution bound")

	// ErrHashMismatch is returned when file content does not match the hash
	// recorded for it.
	ErrHashMismatch = errors.New("distmeta: hash verification failed")

	// ErrSizeMismatch is returned when file content does not match the size
	// recorded for it.
	ErrSizeMismatch = errors.New("distmeta: size verification failed")
)

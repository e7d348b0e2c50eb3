package moneymetrics

import "errors"

// Errors returned by this package. They are always wrapped with some context,
// use errors.Is to test for them.
var (
	// ErrDuplicateName is returned when a name is already in use.
	ErrDuplicateName = errors.New("name already exists")
	// ErrOutOfRange is returned when a month is not in [1, length].
	ErrOutOfRange = errors.New("month out of range")
	// ErrInvalidName is returned when a dataset name is empty.
	ErrInvalidName = errors.New("invalid name")
	// ErrNotFound is returned when a dataset or a screen does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIO is returned when a file cannot be read or written.
	ErrIO = errors.New("i/o error")
	// ErrParse is returned when a file or a value is not valid JSON for its purpose.
	ErrParse = errors.New("parse error")
)

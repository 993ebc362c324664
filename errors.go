package fat16

import "errors"

// Stable error kinds surfaced by this package. Callers should compare
// against these with errors.Is. Most returned errors are wrapped with
// caller context via the checkpoint package and still match one of
// these sentinels (or io.EOF/io.ErrUnexpectedEOF, which checkpoint
// passes through unwrapped); ErrNotSupported, returned by the
// read-only stubs of mutating methods, is returned bare.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoMemory        = errors.New("no memory")
	ErrNotFound        = errors.New("not found")
	ErrNotADirectory   = errors.New("not a directory")
	ErrIsADirectory    = errors.New("is a directory")
	ErrNoSuchAddress   = errors.New("no such address")
	ErrOutOfRange      = errors.New("out of range")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrNotSupported    = errors.New("not supported")
)

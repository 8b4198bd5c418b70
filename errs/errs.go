// Package errs defines the sentinel error values returned throughout the
// archive, ogawa, property, and schema packages.
//
// Errors that need extra context (a position, an expected/actual pair, a
// message) are constructed with fmt.Errorf("%w: ...", ErrXxx) so callers can
// still use errors.Is against the sentinel below.
package errs

import "errors"

var (
	// ErrFileNotFound is returned when opening an archive whose path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrIo wraps an underlying I/O failure that isn't one of the more specific kinds below.
	ErrIo = errors.New("i/o error")

	// ErrMmapFailed is returned when memory-mapping a file failed; readers fall back to buffered I/O.
	ErrMmapFailed = errors.New("mmap failed")

	// ErrInvalidMagic is returned when the first five bytes of a file are not "Ogawa".
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrUnexpectedEof is returned when a read extends past the end of the stream.
	ErrUnexpectedEof = errors.New("unexpected eof")

	// ErrUnsupportedVersion is returned when the header version byte isn't 1.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrTypeMismatch is returned when a group/data tag disagrees with the caller's expectation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrChildOutOfBounds is returned when a child index is >= a group's child count.
	ErrChildOutOfBounds = errors.New("child index out of bounds")

	// ErrFrozen is returned when a write is attempted on an archive that has already been frozen.
	ErrFrozen = errors.New("archive is frozen")

	// ErrInvalidUtf8 is returned when decoding a string payload produces invalid UTF-8.
	ErrInvalidUtf8 = errors.New("invalid utf-8")

	// ErrInvalidString is returned when a length-prefixed string payload is malformed.
	ErrInvalidString = errors.New("invalid string payload")

	// ErrPropertyNotFound is returned when a compound property has no child of the requested name.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrSampleIndexOutOfRange is returned by a sample reader when asked for an index beyond the
	// property's num_samples.
	ErrSampleIndexOutOfRange = errors.New("sample index out of range")

	// ErrSchemaMismatch is returned when a schema reader is opened against an object whose
	// "schema" metadata does not match.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidDataType is returned when a DataType's pod/extent combination is invalid.
	ErrInvalidDataType = errors.New("invalid data type")

	// ErrDimsMismatch is returned when an array sample's dims don't agree with its data length.
	ErrDimsMismatch = errors.New("array sample dims do not match data length")

	// ErrCircularDeferredGroup names a cycle among deferred group placeholders. The archive
	// writer always emits groups inline, so no function in this module returns it.
	ErrCircularDeferredGroup = errors.New("circular dependency in deferred groups")

	// ErrMetadataPoolFull is an internal sentinel; the pool never actually returns it to
	// callers (overflow spills inline per spec).
	ErrMetadataPoolFull = errors.New("metadata pool is full")

	// ErrObjectNotFound is returned when a path lookup has no child of the requested name.
	ErrObjectNotFound = errors.New("object not found")
)

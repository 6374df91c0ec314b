package pcapng

import "github.com/pkg/errors"

var (
	// ErrNotASection is returned when a new top-level block is expected to
	// be a section header block and isn't.
	ErrNotASection = errors.New("pcapng: expected a section header block")
	// ErrBadByteOrderMagic is returned when a section header block's byte
	// order magic doesn't match either the native or swapped constant.
	ErrBadByteOrderMagic = errors.New("pcapng: unrecognized byte order magic")
	// ErrLengthMismatch is returned when a block's leading and trailing
	// total-length fields disagree.
	ErrLengthMismatch = errors.New("pcapng: block length mismatch")
	// ErrShortHeader is returned when a block's fixed header can't be read
	// in full.
	ErrShortHeader = errors.New("pcapng: short block header")
	// ErrReadOnly is returned by Save when the engine was opened read-only.
	ErrReadOnly = errors.New("pcapng: engine is read-only")
	// ErrIndexOutOfRange is returned by section/block accessors given an
	// out-of-bounds index.
	ErrIndexOutOfRange = errors.New("pcapng: index out of range")
)

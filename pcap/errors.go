package pcap

import "github.com/pkg/errors"

// ErrUnknownMagic is returned when the file header's magic number matches
// none of the five known variants or their byte-swapped twins.
var ErrUnknownMagic = errors.New("pcap: unknown magic number")

// ErrShortHeader is returned when the file or a packet header is truncated.
var ErrShortHeader = errors.New("pcap: short header")

// ErrTruncatedPacket is returned when a packet's payload is shorter than
// its header's captured_len declares.
var ErrTruncatedPacket = errors.New("pcap: truncated packet payload")

// ErrReadOnly is returned by Save when the engine was opened read-only.
var ErrReadOnly = errors.New("pcap: capture opened read-only")

// ErrIndexOutOfRange is returned by GetPacket/RemovePacket for an
// out-of-bounds index.
var ErrIndexOutOfRange = errors.New("pcap: packet index out of range")

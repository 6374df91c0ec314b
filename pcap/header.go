package pcap

import "github.com/lethalbit/libnokogiri/internal/linktype"

// Version is a (major, minor) pair. Ordering is strict lexicographic on
// major then minor — the original C++ implementation's comparison
// operators mix major/minor across operands in one branch; that's a bug,
// not a semantic this port preserves.
type Version struct {
	Major uint16
	Minor uint16
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other, comparing Major first and Minor second.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	switch {
	case v.Minor < other.Minor:
		return -1
	case v.Minor > other.Minor:
		return 1
	default:
		return 0
	}
}

// FileHeader is the 24-byte pcap file header.
type FileHeader struct {
	Variant           Variant
	Version           Version
	TimezoneOffset    int32
	TimestampAccuracy uint32
	SnapLen           uint32
	LinkType          linktype.LinkType
}

// DefaultFileHeader returns the header used when creating a brand-new
// Standard-variant capture: version 2.4, no timezone correction, no
// reported timestamp accuracy, a 65535-byte snaplen, and Ethernet framing.
func DefaultFileHeader() FileHeader {
	return FileHeader{
		Variant:           Standard,
		Version:           Version{Major: 2, Minor: 4},
		TimezoneOffset:    0,
		TimestampAccuracy: 0,
		SnapLen:           65535,
		LinkType:          defaultLinkType,
	}
}

// PacketHeader is the standard 16-byte pcap packet record header.
type PacketHeader struct {
	TimestampSec    uint32
	TimestampSubsec uint32 // microseconds, or nanoseconds iff Variant == Nanosecond
	CapturedLen     uint32
	ActualLen       uint32
}

// Complete reports whether the full original packet was captured
// (ActualLen == CapturedLen).
func (h PacketHeader) Complete() bool { return h.ActualLen == h.CapturedLen }

// ModifiedExtra holds the four additional fields the Modified variant's
// packet header appends after the standard header. A nil *ModifiedExtra on
// a Packet means the capture's variant is not Modified.
type ModifiedExtra struct {
	InterfaceIndex uint32
	Protocol       uint16
	PacketType     uint8
}

// Package pcap reads and writes legacy libpcap capture files: the
// Standard, Modified, IXIA-HW, IXIA-SW, and Nanosecond variants, in either
// byte order, optionally gzip-compressed.
package pcap

import "github.com/lethalbit/libnokogiri/internal/linktype"

// Variant identifies a pcap dialect by its 32-bit magic number. The engine
// always stores and reports the forward (non-swapped) variant; byte order
// is tracked separately via Engine.swapped.
type Variant uint32

const (
	Standard   Variant = 0xA1B2C3D4
	Modified   Variant = 0xA1B2CD34
	IXIAHW     Variant = 0x1C0001AC
	IXIASW     Variant = 0x1C0001AB
	Nanosecond Variant = 0x4D3CB2A1

	swappedStandard   Variant = 0xD4C3B2A1
	swappedModified   Variant = 0x34CDB2A1
	swappedIXIAHW     Variant = 0xAC01001C
	swappedIXIASW     Variant = 0xAB01001C
	swappedNanosecond Variant = 0xA1B23C4D
)

// Name returns the canonical short name of the variant, or "?" for a magic
// this engine doesn't recognize.
func (v Variant) Name() string {
	switch v {
	case Standard:
		return "standard"
	case Modified:
		return "modified"
	case IXIAHW:
		return "ixia-hw"
	case IXIASW:
		return "ixia-sw"
	case Nanosecond:
		return "nanosecond"
	default:
		return "?"
	}
}

// resolveMagic classifies a 32-bit value read in native order as one of the
// five forward magics or their byte-swapped twins. It returns the forward
// variant in both cases, along with whether a byte swap is required for
// every subsequent numeric field in the header and packet records.
func resolveMagic(raw uint32) (variant Variant, swapped bool, ok bool) {
	switch Variant(raw) {
	case Standard, Modified, IXIAHW, IXIASW, Nanosecond:
		return Variant(raw), false, true
	case swappedStandard:
		return Standard, true, true
	case swappedModified:
		return Modified, true, true
	case swappedIXIAHW:
		return IXIAHW, true, true
	case swappedIXIASW:
		return IXIASW, true, true
	case swappedNanosecond:
		return Nanosecond, true, true
	default:
		return 0, false, false
	}
}

// nanosecond reports whether this variant's packet timestamps are in
// nanoseconds rather than microseconds.
func (v Variant) nanosecond() bool { return v == Nanosecond }

// headerTail is the number of bytes remaining in a packet record's header
// after the common {ts_sec, ts_subsec, captured_len} prefix: 4 for the
// trailing actual_len field alone, or 12 for Modified, whose 8 bytes of
// interface_index/protocol/type/padding follow actual_len.
func (v Variant) headerTail() int64 {
	if v == Modified {
		return 12
	}
	return 4
}

// headerSize is the total on-disk size of this variant's packet header.
func (v Variant) headerSize() int64 {
	if v == Modified {
		return 24
	}
	return 16
}

// defaultLinkType is used only when constructing a fresh FileHeader for a
// new capture; it carries no meaning for files actually read from disk.
const defaultLinkType = linktype.Ethernet

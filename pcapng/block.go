// Package pcapng reads and writes block-structured pcapng capture files:
// section discovery, byte-order detection per section, a block index, and
// typed materialization of the standard block types plus an opaque
// fallback for anything this engine doesn't recognize by number.
package pcapng

// BlockType identifies a pcapng block by its 32-bit type field. Local-use
// types (most significant bit set), any type not in the table below, and
// Reserved and ARINC429AFDXEncapsulation are materialized as Opaque.
type BlockType uint32

const (
	Reserved                  BlockType = 0x00000000
	InterfaceDescription      BlockType = 0x00000001
	Packet                    BlockType = 0x00000002
	SimplePacket              BlockType = 0x00000003
	NameResolution            BlockType = 0x00000004
	InterfaceStatistics       BlockType = 0x00000005
	EnhancedPacket            BlockType = 0x00000006
	SocketAggregation         BlockType = 0x00000007
	ARINC429AFDXEncapsulation BlockType = 0x00000008
	SystemdJournalExport      BlockType = 0x00000009
	DecryptionSecrets         BlockType = 0x0000000A
	CustomBlockCopyable       BlockType = 0x00000BAD
	CustomBlockNonCopyable    BlockType = 0x40000BAD
	SectionHeader             BlockType = 0x0A0D0D0A
)

var blockTypeNames = map[BlockType]string{
	Reserved:                  "reserved",
	InterfaceDescription:      "idb",
	Packet:                    "pkt",
	SimplePacket:              "spb",
	NameResolution:            "nrb",
	InterfaceStatistics:       "isb",
	EnhancedPacket:            "epb",
	SocketAggregation:         "sab",
	ARINC429AFDXEncapsulation: "afdx",
	SystemdJournalExport:      "journal",
	DecryptionSecrets:         "dsb",
	CustomBlockCopyable:       "cb-copy",
	CustomBlockNonCopyable:    "cb-nocopy",
	SectionHeader:             "shb",
}

// IsLocalUse reports whether the block type's most significant bit is set,
// meaning it's reserved for local use and is always treated as opaque
// unless the caller has registered it out of band (not supported here).
func (t BlockType) IsLocalUse() bool { return t&0x80000000 != 0 }

// Name returns the canonical short name for a standard block type, or "?"
// for a type this engine doesn't recognize by number.
func (t BlockType) Name() string {
	if n, ok := blockTypeNames[t]; ok {
		return n
	}
	return "?"
}

// Block is implemented by every concrete pcapng block type, including the
// Opaque fallback used for unrecognized or local-use types.
type Block interface {
	BlockType() BlockType
	TotalLength() uint32
}

// blockHeader is embedded by every concrete block to carry its type and
// on-disk framed length.
type blockHeader struct {
	Type   BlockType
	Length uint32
}

func (h blockHeader) BlockType() BlockType { return h.Type }
func (h blockHeader) TotalLength() uint32  { return h.Length }

// Opaque is the fallback representation for any block whose type this
// engine does not recognize, or that is marked local-use. It round-trips
// its raw body byte-for-byte.
type Opaque struct {
	blockHeader
	Body []byte
}

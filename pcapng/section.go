package pcapng

import "encoding/binary"

const (
	byteOrderMagic        uint32 = 0x1A2B3C4D
	swappedByteOrderMagic uint32 = 0x4D3C2B1A
)

// Version is a pcapng section's major.minor format version.
type Version struct {
	Major uint16
	Minor uint16
}

// SectionHeaderBlock is the parsed form of a section's leading SHB.
type SectionHeaderBlock struct {
	Version       Version
	SectionLength int64 // -1 if the writer declined to declare a length
	Options       []Option
}

// BlockIndexEntry is a lightweight index record: a block's type, on-disk
// framed length, and file offset, with a lazily populated materialized
// cache.
type BlockIndexEntry struct {
	Type       BlockType
	Length     uint32
	FileOffset int64
	cached     Block
}

// Cached returns the already-materialized block for this entry, if any.
func (e *BlockIndexEntry) Cached() (Block, bool) {
	return e.cached, e.cached != nil
}

// Section is one section of a pcapng capture: its header, the byte order
// established by that header, and the index of every block it contains
// (the SHB itself included, as the first entry).
type Section struct {
	Header        SectionHeaderBlock
	ByteOrderSwap bool
	order         binary.ByteOrder
	startOffset   int64
	Blocks        []BlockIndexEntry
}

// Order returns the byte order this section's blocks are encoded in.
func (s *Section) Order() binary.ByteOrder { return s.order }

// BlockAt returns the index entry for the i'th block in this section
// (the section header block itself is entry 0).
func (s *Section) BlockAt(i int) (*BlockIndexEntry, error) {
	if i < 0 || i >= len(s.Blocks) {
		return nil, ErrIndexOutOfRange
	}
	return &s.Blocks[i], nil
}

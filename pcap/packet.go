package pcap

// IndexEntry is one packet's position in the index built during Open:
// where its header begins in the file, and how large its captured payload
// is. cached is populated by the first GetPacket call against this entry
// and reused on subsequent calls.
type IndexEntry struct {
	PayloadLength uint32
	FileOffset    int64

	cached *Packet
}

// Cached reports whether this entry's packet has already been
// materialized, and returns it if so.
func (e *IndexEntry) Cached() (*Packet, bool) {
	if e.cached == nil {
		return nil, false
	}
	return e.cached, true
}

// Packet is a fully materialized pcap packet record.
type Packet struct {
	Header PacketHeader
	// Modified is non-nil iff the owning capture's variant is Modified.
	Modified *ModifiedExtra
	Raw      []byte
	Complete bool
}

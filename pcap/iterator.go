package pcap

// Iterator is a bi-directional cursor over an Engine's packet index.
// Dereferencing via Packet lazily materializes, caching the result in the
// underlying index entry. Removing a packet at or after the iterator's
// current position invalidates it.
type Iterator struct {
	eng     *Engine
	pos     int
	reverse bool
}

// Iterator returns a forward iterator starting before the first packet;
// call Next to advance to the first packet.
func (e *Engine) Iterator() *Iterator {
	return &Iterator{eng: e, pos: -1}
}

// ReverseIterator returns a backward iterator starting after the last
// packet; call Next to advance to the last packet.
func (e *Engine) ReverseIterator() *Iterator {
	return &Iterator{eng: e, pos: len(e.index), reverse: true}
}

// Next advances the iterator and reports whether a packet is available.
func (it *Iterator) Next() bool {
	if it.reverse {
		it.pos--
		return it.pos >= 0
	}
	it.pos++
	return it.pos < len(it.eng.index)
}

// Packet materializes the packet at the iterator's current position.
func (it *Iterator) Packet() (*Packet, error) {
	return it.eng.GetPacket(it.pos)
}

// Index returns the iterator's current index position.
func (it *Iterator) Index() int { return it.pos }

package pcapng

// BlockIterator walks a single section's blocks in file order, lazily
// materializing each on demand.
type BlockIterator struct {
	eng     *Engine
	section *Section
	pos     int
}

// Iterator returns a forward iterator over section's blocks, starting
// before the first one.
func (e *Engine) Iterator(section *Section) *BlockIterator {
	return &BlockIterator{eng: e, section: section, pos: -1}
}

// Next advances the iterator and reports whether a block is available.
func (it *BlockIterator) Next() bool {
	it.pos++
	return it.pos < len(it.section.Blocks)
}

// Block materializes the block at the iterator's current position.
func (it *BlockIterator) Block() (Block, error) {
	return it.eng.GetBlock(&it.section.Blocks[it.pos])
}

// Index returns the iterator's current position within the section.
func (it *BlockIterator) Index() int { return it.pos }

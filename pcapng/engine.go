package pcapng

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lethalbit/libnokogiri/internal/byteio"
)

// Engine is an open pcapng capture: a random-access source, and an index of
// every section and block it contains. Blocks materialize lazily and cache
// on first access; sections are discovered up front since each carries its
// own byte order.
type Engine struct {
	src      byteio.Source
	sections []*Section
	readOnly bool
	log      logrus.FieldLogger
}

type openConfig struct {
	readOnly bool
	prefetch bool
	log      logrus.FieldLogger
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

// ReadOnly opens the capture without write access; Save will fail.
func ReadOnly() OpenOption { return func(c *openConfig) { c.readOnly = true } }

// Prefetch materializes every block during Open rather than lazily.
func Prefetch() OpenOption { return func(c *openConfig) { c.prefetch = true } }

// WithLogger attaches a logger for diagnostics emitted while indexing.
func WithLogger(log logrus.FieldLogger) OpenOption {
	return func(c *openConfig) { c.log = log }
}

// Open indexes the pcapng capture at path: every section header, and every
// block within each section, recording type, length, and offset without
// parsing block bodies (except the SHB fields needed to track section
// boundaries).
func Open(path string, opts ...OpenOption) (*Engine, error) {
	cfg := openConfig{log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	src, err := byteio.OpenFile(path, !cfg.readOnly)
	if err != nil {
		return nil, err
	}

	eng := &Engine{src: src, readOnly: cfg.readOnly, log: cfg.log}
	if err := eng.buildIndex(); err != nil {
		src.Close()
		return nil, err
	}

	if cfg.prefetch {
		for _, section := range eng.sections {
			for i := range section.Blocks {
				if _, err := eng.GetBlock(&section.Blocks[i]); err != nil {
					src.Close()
					return nil, err
				}
			}
		}
	}

	cfg.log.Debugf("pcapng: opened %q with %d section(s)", path, len(eng.sections))
	return eng, nil
}

// Create opens path as a brand-new, single-section capture for writing,
// using shb as that section's header (native byte order). The returned
// engine has no blocks beyond the section header until AppendBlock is
// called; Save flushes them to disk.
func Create(path string, shb SectionHeaderBlock, opts ...OpenOption) (*Engine, error) {
	cfg := openConfig{log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.readOnly {
		return nil, errors.Wrap(ErrReadOnly, "pcapng: cannot create a read-only capture")
	}

	src, err := byteio.CreateFile(path)
	if err != nil {
		return nil, err
	}

	section := &Section{
		Header: shb,
		order:  binary.LittleEndian,
	}
	section.Blocks = append(section.Blocks, BlockIndexEntry{Type: SectionHeader})

	eng := &Engine{src: src, sections: []*Section{section}, log: cfg.log}
	return eng, nil
}

// AppendSection starts a new section, with shb as its header, after every
// section already appended to the capture. It takes effect on disk only
// once Save is called.
func (e *Engine) AppendSection(shb SectionHeaderBlock) error {
	if e.readOnly {
		return ErrReadOnly
	}
	section := &Section{
		Header: shb,
		order:  binary.LittleEndian,
	}
	section.Blocks = append(section.Blocks, BlockIndexEntry{Type: SectionHeader})
	e.sections = append(e.sections, section)
	return nil
}

// AppendBlock adds block to the end of the capture's last section. It
// takes effect on disk only once Save is called.
func (e *Engine) AppendBlock(block Block) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if len(e.sections) == 0 {
		return errors.New("pcapng: no section to append to")
	}
	section := e.sections[len(e.sections)-1]
	section.Blocks = append(section.Blocks, BlockIndexEntry{
		Type:   block.BlockType(),
		cached: block,
	})
	return nil
}

// Close releases the engine's backing source.
func (e *Engine) Close() error { return e.src.Close() }

// Sections returns every section discovered in the capture, in file order.
func (e *Engine) Sections() []*Section { return e.sections }

func (e *Engine) buildIndex() error {
	var current *Section

	for {
		eof, err := e.src.EOF()
		if err != nil {
			return err
		}
		if eof {
			break
		}

		offset, err := e.src.Tell()
		if err != nil {
			return err
		}

		if current == nil {
			section, err := e.readSectionHeader(offset)
			if err != nil {
				return err
			}
			e.sections = append(e.sections, section)
			current = section
			continue
		}

		var head [8]byte
		if err := e.src.ReadFull(head[:]); err != nil {
			return errors.Wrap(ErrShortHeader, "pcapng: block header")
		}
		blockType := BlockType(current.order.Uint32(head[0:4]))

		if blockType == SectionHeader {
			if _, err := e.src.Seek(-8, io.SeekCurrent); err != nil {
				return err
			}
			current = nil
			continue
		}

		totalLength := current.order.Uint32(head[4:8])
		if totalLength < 12 {
			return errors.Errorf("pcapng: block 0x%08x declares length %d", uint32(blockType), totalLength)
		}
		bodyLen := int64(totalLength) - 12
		if bodyLen > 0 {
			if _, err := e.src.Seek(bodyLen, io.SeekCurrent); err != nil {
				return err
			}
		}
		trailing, err := e.src.ReadU32(current.order)
		if err != nil {
			return err
		}
		if trailing != totalLength {
			return errors.Wrapf(ErrLengthMismatch, "pcapng: block 0x%08x leading=%d trailing=%d", uint32(blockType), totalLength, trailing)
		}

		current.Blocks = append(current.Blocks, BlockIndexEntry{
			Type:       blockType,
			Length:     totalLength,
			FileOffset: offset,
		})

		if current.Header.SectionLength >= 0 {
			pos, err := e.src.Tell()
			if err != nil {
				return err
			}
			if pos-current.startOffset >= current.Header.SectionLength {
				current = nil
			}
		}
	}

	return nil
}

// readSectionHeader parses the SHB expected at the current position,
// detecting this section's byte order from the raw byte-order-magic
// comparison (valid regardless of order, since the comparison is done
// against both the native and swapped constants using a fixed read order).
func (e *Engine) readSectionHeader(offset int64) (*Section, error) {
	var head [12]byte
	if err := e.src.ReadFull(head[:]); err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcapng: section header block")
	}

	blockType := BlockType(binary.LittleEndian.Uint32(head[0:4]))
	if blockType != SectionHeader {
		return nil, errors.Wrapf(ErrNotASection, "found 0x%08x at offset %d", uint32(blockType), offset)
	}

	raw := binary.LittleEndian.Uint32(head[8:12])
	var order binary.ByteOrder
	var swapped bool
	switch raw {
	case byteOrderMagic:
		order = binary.LittleEndian
	case swappedByteOrderMagic:
		order = binary.BigEndian
		swapped = true
	default:
		return nil, errors.Wrapf(ErrBadByteOrderMagic, "0x%08x", raw)
	}

	totalLength := order.Uint32(head[4:8])

	var rest [12]byte
	if err := e.src.ReadFull(rest[:]); err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcapng: section header block fields")
	}
	major := order.Uint16(rest[0:2])
	minor := order.Uint16(rest[2:4])
	sectionLength := int64(order.Uint64(rest[4:12]))

	fixedLen := int64(12 + 12) // block type+length+byteOrderMagic, then version+sectionLength
	remaining := int64(totalLength) - fixedLen - 4
	if remaining < 0 {
		return nil, errors.New("pcapng: section header block too short")
	}

	var opts []Option
	if remaining > 0 {
		optBuf := make([]byte, remaining)
		if err := e.src.ReadFull(optBuf); err != nil {
			return nil, errors.Wrap(ErrShortHeader, "pcapng: section header block options")
		}
		parsed, err := parseOptions(optBuf, order)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	trailing, err := e.src.ReadU32(order)
	if err != nil {
		return nil, err
	}
	if trailing != totalLength {
		return nil, errors.Wrapf(ErrLengthMismatch, "pcapng: section header block leading=%d trailing=%d", totalLength, trailing)
	}

	section := &Section{
		Header: SectionHeaderBlock{
			Version:       Version{Major: major, Minor: minor},
			SectionLength: sectionLength,
			Options:       opts,
		},
		ByteOrderSwap: swapped,
		order:         order,
		startOffset:   offset,
	}
	section.Blocks = append(section.Blocks, BlockIndexEntry{
		Type:       SectionHeader,
		Length:     totalLength,
		FileOffset: offset,
	})
	return section, nil
}

// GetBlock materializes the block an index entry points to, caching the
// result. Subsequent calls for the same entry return the cached value
// without touching the source again.
func (e *Engine) GetBlock(entry *BlockIndexEntry) (Block, error) {
	if entry.cached != nil {
		return entry.cached, nil
	}

	section := e.sectionFor(entry)
	if section == nil {
		return nil, errors.New("pcapng: block entry belongs to no known section")
	}

	if _, err := e.src.Seek(entry.FileOffset, io.SeekStart); err != nil {
		return nil, err
	}

	var head [8]byte
	if err := e.src.ReadFull(head[:]); err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcapng: block header")
	}
	totalLength := section.order.Uint32(head[4:8])
	body := make([]byte, int64(totalLength)-12)
	if err := e.src.ReadFull(body); err != nil {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: block body")
	}

	h := blockHeader{Type: entry.Type, Length: totalLength}

	block, err := materialize(h, entry.Type, body, section.order)
	if err != nil {
		return nil, err
	}

	entry.cached = block
	return block, nil
}

func materialize(h blockHeader, t BlockType, body []byte, order binary.ByteOrder) (Block, error) {
	switch t {
	case InterfaceDescription:
		return parseInterfaceDescription(h, body, order)
	case Packet:
		return parsePacket(h, body, order)
	case SimplePacket:
		return parseSimplePacket(h, body, order)
	case NameResolution:
		return parseNameResolution(h, body, order)
	case InterfaceStatistics:
		return parseInterfaceStatistics(h, body, order)
	case EnhancedPacket:
		return parseEnhancedPacket(h, body, order)
	case SocketAggregation:
		return &SocketAggregationBlock{blockHeader: h, Body: body}, nil
	case SystemdJournalExport:
		return &SystemdJournalExportBlock{blockHeader: h, Body: body}, nil
	case DecryptionSecrets:
		return parseDecryptionSecrets(h, body, order)
	case CustomBlockCopyable, CustomBlockNonCopyable:
		return parseCustomBlock(h, body, order)
	default:
		return &Opaque{blockHeader: h, Body: body}, nil
	}
}

func (e *Engine) sectionFor(entry *BlockIndexEntry) *Section {
	for _, s := range e.sections {
		for i := range s.Blocks {
			if &s.Blocks[i] == entry {
				return s
			}
		}
	}
	return nil
}

package pcap

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lethalbit/libnokogiri/internal/byteio"
	"github.com/lethalbit/libnokogiri/internal/gzipadapter"
	"github.com/lethalbit/libnokogiri/internal/linktype"
)

const fileHeaderSize = 24

// Engine owns a Byte Source over a pcap capture (possibly gzip-wrapped),
// its parsed file header, and a complete in-memory index of packet
// positions. It serves packets on demand with at most one disk read per
// materialization.
type Engine struct {
	src     byteio.Source
	scratch *byteio.ScopedTempSource // non-nil iff this capture was decompressed to a scratch file

	header  FileHeader
	order   binary.ByteOrder
	swapped bool

	index    []IndexEntry
	readOnly bool

	log logrus.FieldLogger
}

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	compression gzipadapter.Compression
	readOnly    bool
	prefetch    bool
	log         logrus.FieldLogger
}

// WithCompression overrides compression autodetection.
func WithCompression(c gzipadapter.Compression) Option {
	return func(cfg *openConfig) { cfg.compression = c }
}

// ReadOnly opens the capture for reading only; Save will fail.
func ReadOnly() Option {
	return func(cfg *openConfig) { cfg.readOnly = true }
}

// Prefetch eagerly materializes every packet at open time instead of lazily
// on first access, for callers that know they'll iterate every packet.
func Prefetch() Option {
	return func(cfg *openConfig) { cfg.prefetch = true }
}

// WithLogger attaches a logger; index-build progress is logged at Debug,
// tolerated anomalies (e.g. a packet with an unexpectedly small snaplen)
// at Warn. Defaults to a discarding logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(cfg *openConfig) { cfg.log = log }
}

// Open opens path, resolving compression, detecting the pcap variant and
// byte order, and building a complete packet index. On any fatal error it
// returns a nil *Engine and a non-nil error; there is no partially-valid
// Engine to observe.
func Open(path string, opts ...Option) (*Engine, error) {
	cfg := openConfig{compression: gzipadapter.Autodetect, log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	raw, err := byteio.OpenFile(path, !cfg.readOnly)
	if err != nil {
		return nil, err
	}

	eng := &Engine{readOnly: cfg.readOnly, log: cfg.log}

	compression := cfg.compression
	if compression == gzipadapter.Autodetect {
		compression, err = gzipadapter.Probe(raw)
		if err != nil {
			raw.Close()
			return nil, errors.Wrap(err, "pcap: probing compression")
		}
	}

	if compression == gzipadapter.Compressed {
		scratch, err := byteio.NewScopedTempSource(".pcap")
		if err != nil {
			raw.Close()
			return nil, err
		}
		adapter, err := gzipadapter.New(raw)
		if err != nil {
			raw.Close()
			scratch.Close()
			return nil, err
		}
		if err := adapter.DecompressTo(scratch); err != nil {
			raw.Close()
			scratch.Close()
			return nil, err
		}
		adapter.Close()
		raw.Close()

		if _, err := scratch.Seek(0, io.SeekStart); err != nil {
			scratch.Close()
			return nil, errors.Wrap(err, "pcap: seeking decompressed scratch file")
		}

		eng.src = scratch
		eng.scratch = scratch
		cfg.log.Debug("pcap: decompressed capture to scratch file")
	} else {
		eng.src = raw
	}

	if err := eng.readFileHeader(); err != nil {
		eng.closeSources()
		return nil, err
	}

	if err := eng.buildIndex(); err != nil {
		eng.closeSources()
		return nil, err
	}

	if cfg.prefetch {
		for i := range eng.index {
			if _, err := eng.GetPacket(i); err != nil {
				eng.closeSources()
				return nil, err
			}
		}
	}

	cfg.log.Debugf("pcap: opened %s variant=%s packets=%d", path, eng.header.Variant.Name(), len(eng.index))
	return eng, nil
}

// Create opens path as a brand-new, empty capture for writing, using header
// as the initial file header (native byte order, never swapped). The
// returned engine has no packets until AppendPacket is called; Save flushes
// them to disk.
func Create(path string, header FileHeader, opts ...Option) (*Engine, error) {
	cfg := openConfig{log: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.readOnly {
		return nil, errors.Wrap(ErrReadOnly, "pcap: cannot create a read-only capture")
	}

	src, err := byteio.CreateFile(path)
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		src:    src,
		header: header,
		order:  binary.LittleEndian,
		log:    cfg.log,
	}
	return eng, nil
}

// AppendPacket adds pkt to the end of the engine's in-memory packet index.
// It takes effect on disk only once Save is called.
func (e *Engine) AppendPacket(pkt *Packet) error {
	if e.readOnly {
		return ErrReadOnly
	}
	entry := IndexEntry{PayloadLength: pkt.Header.CapturedLen}
	entry.cached = pkt
	e.index = append(e.index, entry)
	return nil
}

func (e *Engine) closeSources() {
	if e.scratch != nil {
		e.scratch.Close()
	}
	if e.src != nil && e.src != byteio.Source(e.scratch) {
		e.src.Close()
	}
}

// Close releases the engine's Byte Source, including unlinking any scratch
// decompression file.
func (e *Engine) Close() error {
	if e.scratch != nil {
		return e.scratch.Close()
	}
	if e.src != nil {
		return e.src.Close()
	}
	return nil
}

// Header returns the capture's file header.
func (e *Engine) Header() FileHeader { return e.header }

// SetHeader replaces the in-memory file header; it takes effect only on
// the next Save.
func (e *Engine) SetHeader(h FileHeader) { e.header = h }

// PacketCount reports the number of packets currently in the index.
func (e *Engine) PacketCount() int { return len(e.index) }

func (e *Engine) readFileHeader() error {
	buf := make([]byte, fileHeaderSize)
	if err := e.src.ReadFull(buf); err != nil {
		return errors.Wrap(ErrShortHeader, "pcap: file header")
	}

	nativeMagic := binary.LittleEndian.Uint32(buf[0:4])
	variant, swapped, ok := resolveMagic(nativeMagic)
	if !ok {
		return errors.Wrapf(ErrUnknownMagic, "0x%08x", nativeMagic)
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if swapped {
		order = binary.BigEndian
	}

	e.header.Variant = variant
	e.order = order
	e.swapped = swapped

	e.header.Version = Version{
		Major: order.Uint16(buf[4:6]),
		Minor: order.Uint16(buf[6:8]),
	}
	e.header.TimezoneOffset = int32(order.Uint32(buf[8:12]))
	e.header.TimestampAccuracy = order.Uint32(buf[12:16])
	e.header.SnapLen = order.Uint32(buf[16:20])
	e.header.LinkType = linkTypeFrom(order.Uint32(buf[20:24]))

	return nil
}

// buildIndex walks the file after the header, recording each packet's
// offset and captured length without reading payload bytes, per the
// two-pass design: cheap index now, lazy materialization later.
func (e *Engine) buildIndex() error {
	headerTail := e.header.Variant.headerTail()

	for {
		eof, err := e.src.EOF()
		if err != nil {
			return err
		}
		if eof {
			return nil
		}

		offset, err := e.src.Tell()
		if err != nil {
			return err
		}

		var skip [8]byte
		if err := e.src.ReadFull(skip[:]); err != nil {
			return errors.Wrap(ErrShortHeader, "pcap: packet header timestamp")
		}

		capturedLen, err := e.src.ReadU32(e.order)
		if err != nil {
			return errors.Wrap(ErrShortHeader, "pcap: packet header captured_len")
		}

		if capturedLen > e.header.SnapLen {
			e.log.Warnf("pcap: packet at offset %d has captured_len %d exceeding snaplen %d", offset, capturedLen, e.header.SnapLen)
		}

		e.index = append(e.index, IndexEntry{PayloadLength: capturedLen, FileOffset: offset})

		if _, err := e.src.Seek(headerTail+int64(capturedLen), io.SeekCurrent); err != nil {
			return errors.Wrap(ErrTruncatedPacket, "pcap: seeking past packet body")
		}
	}
}

// GetPacket materializes the packet at index i, caching it in the index
// entry for subsequent calls.
func (e *Engine) GetPacket(i int) (*Packet, error) {
	if i < 0 || i >= len(e.index) {
		return nil, ErrIndexOutOfRange
	}
	return e.GetPacketAt(&e.index[i])
}

// GetPacketAt materializes the packet referenced by entry, which must
// belong to this engine's index. At most one disk read is performed per
// materialization; subsequent calls against the same entry return the
// cached packet.
func (e *Engine) GetPacketAt(entry *IndexEntry) (*Packet, error) {
	if cached, ok := entry.Cached(); ok {
		return cached, nil
	}

	if _, err := e.src.Seek(entry.FileOffset, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "pcap: seeking to packet")
	}

	header := PacketHeader{}
	var modified *ModifiedExtra

	tsSec, err := e.src.ReadU32(e.order)
	if err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcap: packet header")
	}
	tsSub, err := e.src.ReadU32(e.order)
	if err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcap: packet header")
	}
	capturedLen, err := e.src.ReadU32(e.order)
	if err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcap: packet header")
	}
	actualLen, err := e.src.ReadU32(e.order)
	if err != nil {
		return nil, errors.Wrap(ErrShortHeader, "pcap: packet header")
	}

	header.TimestampSec = tsSec
	header.TimestampSubsec = tsSub
	header.CapturedLen = capturedLen
	header.ActualLen = actualLen

	if e.header.Variant == Modified {
		ifIndex, err := e.src.ReadU32(e.order)
		if err != nil {
			return nil, errors.Wrap(ErrShortHeader, "pcap: modified packet header")
		}
		proto, err := e.src.ReadU16(e.order)
		if err != nil {
			return nil, errors.Wrap(ErrShortHeader, "pcap: modified packet header")
		}
		var typeAndPad [2]byte
		if err := e.src.ReadFull(typeAndPad[:]); err != nil {
			return nil, errors.Wrap(ErrShortHeader, "pcap: modified packet header")
		}
		modified = &ModifiedExtra{InterfaceIndex: ifIndex, Protocol: proto, PacketType: typeAndPad[0]}
	}

	raw := make([]byte, capturedLen)
	if err := e.src.ReadFull(raw); err != nil {
		return nil, errors.Wrap(ErrTruncatedPacket, "pcap: packet payload")
	}

	packet := &Packet{
		Header:   header,
		Modified: modified,
		Raw:      raw,
		Complete: header.Complete(),
	}
	entry.cached = packet

	return packet, nil
}

// TimestampSeconds returns a packet's timestamp as a float64 number of
// seconds since the epoch, honoring the capture's microsecond/nanosecond
// subsecond scale.
func (e *Engine) TimestampSeconds(p *Packet) float64 {
	if e.header.Variant.nanosecond() {
		return float64(p.Header.TimestampSec) + float64(p.Header.TimestampSubsec)/1e9
	}
	return float64(p.Header.TimestampSec) + float64(p.Header.TimestampSubsec)/1e6
}

// RemovePacket drops the index entry at i without rewriting the backing
// file. Iterators positioned at or after i are invalidated.
func (e *Engine) RemovePacket(i int) error {
	if i < 0 || i >= len(e.index) {
		return ErrIndexOutOfRange
	}
	e.index = append(e.index[:i], e.index[i+1:]...)
	return nil
}

func linkTypeFrom(v uint32) linktype.LinkType {
	return linktype.LinkType(uint16(v))
}

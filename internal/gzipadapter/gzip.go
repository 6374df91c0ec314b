// Package gzipadapter wraps a byteio.Source presenting a gzip stream, and
// provides the compression probe used to autodetect gzip-wrapped captures.
package gzipadapter

import (
	"compress/gzip"
	"io"

	"github.com/pkg/errors"

	"github.com/lethalbit/libnokogiri/internal/byteio"
)

// Compression is the tagged compression state of a capture. Autodetect is a
// request, never an observed state: after open, the effective value is
// always Uncompressed or Compressed.
type Compression int

const (
	Autodetect Compression = iota
	Uncompressed
	Compressed
	Unknown
)

func (c Compression) String() string {
	switch c {
	case Autodetect:
		return "autodetect"
	case Uncompressed:
		return "uncompressed"
	case Compressed:
		return "compressed"
	default:
		return "unknown"
	}
}

var gzipMagic = [2]byte{0x1F, 0x8B}

// Probe peeks the first two bytes of src at its current position and
// reports Compressed iff they are the gzip magic 0x1F 0x8B. The stream's
// position is always restored, regardless of outcome.
func Probe(src byteio.Source) (Compression, error) {
	pos, err := src.Tell()
	if err != nil {
		return Unknown, err
	}
	defer src.Seek(pos, io.SeekStart)

	var buf [2]byte
	if err := src.ReadFull(buf[:]); err != nil {
		return Uncompressed, nil // shorter than the magic: treat as plain
	}

	if buf == gzipMagic {
		return Compressed, nil
	}
	return Uncompressed, nil
}

// Adapter wraps a byteio.Source as a sequential gzip stream.
type Adapter struct {
	src byteio.Source
	gz  *gzip.Reader
}

// New constructs an Adapter over src, whose gzip stream must begin at
// offset 0; the stream is read from there regardless of src's position.
func New(src byteio.Source) (*Adapter, error) {
	gz, err := gzip.NewReader(io.NewSectionReader(readerAtOf(src), 0, 1<<62))
	if err != nil {
		return nil, errors.Wrap(err, "gzipadapter: invalid gzip stream")
	}
	return &Adapter{src: src, gz: gz}, nil
}

func readerAtOf(src byteio.Source) io.ReaderAt {
	return src
}

// Read implements io.Reader by delegating to the underlying gzip.Reader.
func (a *Adapter) Read(buf []byte) (int, error) {
	return a.gz.Read(buf)
}

// DecompressTo bulk-extracts the entire gzip stream into sink. This is the
// engine's only use of gzip: materialize to a scratch file once, then run
// random-access logic against that file, rather than maintaining an index
// over the compressed stream.
func (a *Adapter) DecompressTo(sink io.Writer) error {
	if _, err := io.Copy(sink, a.gz); err != nil {
		return errors.Wrap(err, "gzipadapter: decompression failed")
	}
	return nil
}

// Close releases the underlying gzip reader's native stream.
func (a *Adapter) Close() error {
	return a.gz.Close()
}

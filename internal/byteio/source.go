// Package byteio provides the random-access, endian-aware octet stream that
// the pcap and pcapng engines are built on top of.
package byteio

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrShortRead is returned when a primitive read comes back with fewer
// bytes than requested, including at EOF mid-field.
var ErrShortRead = errors.New("byteio: short read")

// Source is a random-access octet stream: positional reads, seek, tell,
// length, EOF, and primitive little-/big-endian decoders. FileSource is the
// usual backing implementation; ScopedTempSource layers delete-on-close
// scratch-file semantics on top of it.
type Source interface {
	io.ReaderAt
	io.Writer
	io.Closer

	// Len reports the current total length of the stream in bytes.
	Len() (int64, error)
	// Seek repositions the stream per io.Seeker semantics.
	Seek(offset int64, whence int) (int64, error)
	// Tell reports the current read/write position.
	Tell() (int64, error)
	// EOF reports whether the current position is at or past the end of
	// the stream.
	EOF() (bool, error)
	// Truncate resizes the underlying stream to size bytes.
	Truncate(size int64) error

	// ReadFull reads exactly len(buf) bytes from the current position,
	// advancing it. A short read is reported as ErrShortRead, with the
	// underlying error's text in the message.
	ReadFull(buf []byte) error
	// ReadU16 decodes a 16-bit integer in the given byte order, advancing
	// the position by 2.
	ReadU16(order binary.ByteOrder) (uint16, error)
	// ReadU32 decodes a 32-bit integer in the given byte order, advancing
	// the position by 4.
	ReadU32(order binary.ByteOrder) (uint32, error)
	// ReadU64 decodes a 64-bit integer in the given byte order, advancing
	// the position by 8.
	ReadU64(order binary.ByteOrder) (uint64, error)

	// WriteFull writes buf at the current position, advancing it.
	WriteFull(buf []byte) error
	// WriteU16 encodes a 16-bit integer in the given byte order at the
	// current position, advancing it by 2.
	WriteU16(order binary.ByteOrder, v uint16) error
	// WriteU32 encodes a 32-bit integer in the given byte order at the
	// current position, advancing it by 4.
	WriteU32(order binary.ByteOrder, v uint32) error
	// WriteU64 encodes a 64-bit integer in the given byte order at the
	// current position, advancing it by 8.
	WriteU64(order binary.ByteOrder, v uint64) error
}

// FileSource is a Source backed by an *os.File.
type FileSource struct {
	fh *os.File
}

// OpenFile opens path as a FileSource, read-only unless readWrite is set.
func OpenFile(path string, readWrite bool) (*FileSource, error) {
	flag := os.O_RDONLY
	if readWrite {
		flag = os.O_RDWR
	}
	fh, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "byteio: open %q", path)
	}
	return &FileSource{fh: fh}, nil
}

// NewFileSource adopts an already-open *os.File as a FileSource.
func NewFileSource(fh *os.File) *FileSource {
	return &FileSource{fh: fh}
}

// CreateFile creates (truncating if it already exists) path as a writable
// FileSource, for engines building a brand-new capture rather than opening
// an existing one.
func CreateFile(path string) (*FileSource, error) {
	fh, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "byteio: create %q", path)
	}
	return &FileSource{fh: fh}, nil
}

func (f *FileSource) ReadAt(buf []byte, off int64) (int, error) { return f.fh.ReadAt(buf, off) }
func (f *FileSource) Write(buf []byte) (int, error)             { return f.fh.Write(buf) }
func (f *FileSource) Close() error                              { return f.fh.Close() }

func (f *FileSource) Len() (int64, error) {
	info, err := f.fh.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "byteio: stat")
	}
	return info.Size(), nil
}

func (f *FileSource) Seek(offset int64, whence int) (int64, error) {
	return f.fh.Seek(offset, whence)
}

func (f *FileSource) Tell() (int64, error) {
	return f.fh.Seek(0, io.SeekCurrent)
}

func (f *FileSource) EOF() (bool, error) {
	pos, err := f.Tell()
	if err != nil {
		return false, err
	}
	length, err := f.Len()
	if err != nil {
		return false, err
	}
	return pos >= length, nil
}

func (f *FileSource) Truncate(size int64) error {
	return errors.Wrap(f.fh.Truncate(size), "byteio: truncate")
}

func (f *FileSource) ReadFull(buf []byte) error {
	n, err := io.ReadFull(f.fh, buf)
	if err != nil {
		return errors.Wrapf(ErrShortRead, "%s (read %d of %d)", err, n, len(buf))
	}
	return nil
}

func (f *FileSource) ReadU16(order binary.ByteOrder) (uint16, error) {
	var buf [2]byte
	if err := f.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint16(buf[:]), nil
}

func (f *FileSource) ReadU32(order binary.ByteOrder) (uint32, error) {
	var buf [4]byte
	if err := f.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

func (f *FileSource) ReadU64(order binary.ByteOrder) (uint64, error) {
	var buf [8]byte
	if err := f.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint64(buf[:]), nil
}

func (f *FileSource) WriteFull(buf []byte) error {
	n, err := f.fh.Write(buf)
	if err != nil {
		return errors.Wrap(err, "byteio: short write")
	}
	if n != len(buf) {
		return errors.Errorf("byteio: short write (wrote %d of %d)", n, len(buf))
	}
	return nil
}

func (f *FileSource) WriteU16(order binary.ByteOrder, v uint16) error {
	var buf [2]byte
	order.PutUint16(buf[:], v)
	return f.WriteFull(buf[:])
}

func (f *FileSource) WriteU32(order binary.ByteOrder, v uint32) error {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	return f.WriteFull(buf[:])
}

func (f *FileSource) WriteU64(order binary.ByteOrder, v uint64) error {
	var buf [8]byte
	order.PutUint64(buf[:], v)
	return f.WriteFull(buf[:])
}

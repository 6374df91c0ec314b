package byteio

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSourcePrimitives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 0), 0o644))

	src, err := OpenFile(path, true)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.WriteU32(binary.LittleEndian, 0xDEADBEEF))
	require.NoError(t, src.WriteU16(binary.BigEndian, 0x1234))

	length, err := src.Len()
	require.NoError(t, err)
	require.Equal(t, int64(6), length)

	_, err = src.Seek(0, io.SeekStart)
	require.NoError(t, err)

	v32, err := src.ReadU32(binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v32)

	v16, err := src.ReadU16(binary.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), v16)

	eof, err := src.EOF()
	require.NoError(t, err)
	require.True(t, eof)
}

func TestFileSourceShortReadIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02}, 0o644))

	src, err := OpenFile(path, false)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.ReadU32(binary.LittleEndian)
	require.Error(t, err)
}

func TestFileSourceTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0o644))

	src, err := OpenFile(path, true)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.Truncate(2))
	length, err := src.Len()
	require.NoError(t, err)
	require.Equal(t, int64(2), length)
}

func TestScopedTempSourceDeletesOnClose(t *testing.T) {
	scratch, err := NewScopedTempSource(".tmp")
	require.NoError(t, err)

	path := scratch.Path()
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, scratch.Close())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

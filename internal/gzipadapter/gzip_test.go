package gzipadapter

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lethalbit/libnokogiri/internal/byteio"
)

func TestProbeDetectsGzipMagic(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "data.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	src, err := byteio.OpenFile(path, false)
	require.NoError(t, err)
	defer src.Close()

	c, err := Probe(src)
	require.NoError(t, err)
	require.Equal(t, Compressed, c)

	pos, err := src.Tell()
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)
}

func TestProbePlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o644))

	src, err := byteio.OpenFile(path, false)
	require.NoError(t, err)
	defer src.Close()

	c, err := Probe(src)
	require.NoError(t, err)
	require.Equal(t, Uncompressed, c)
}

func TestDecompressTo(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("payload bytes"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "data.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	src, err := byteio.OpenFile(path, false)
	require.NoError(t, err)
	defer src.Close()

	adapter, err := New(src)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, adapter.DecompressTo(&out))
	require.Equal(t, "payload bytes", out.String())
	require.NoError(t, adapter.Close())
}

var _ io.Reader = (*Adapter)(nil)

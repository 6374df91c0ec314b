package pcap

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lethalbit/libnokogiri/internal/linktype"
)

// buildStandard writes a minimal capture with the given magic and one
// packet per payload (timestamp 1000+i seconds, subsec 0) and returns its
// bytes.
func buildStandard(t *testing.T, order binary.ByteOrder, magic uint32, packets [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], magic)
	buf.Write(magicBuf[:])

	writeU16 := func(v uint16) {
		var b [2]byte
		order.PutUint16(b[:], v)
		buf.Write(b[:])
	}
	writeU32 := func(v uint32) {
		var b [4]byte
		order.PutUint32(b[:], v)
		buf.Write(b[:])
	}

	writeU16(2)
	writeU16(4)
	writeU32(0)
	writeU32(0)
	writeU32(65535)
	writeU32(uint32(linktype.Ethernet))

	for i, payload := range packets {
		writeU32(uint32(1000 + i))
		writeU32(0)
		writeU32(uint32(len(payload)))
		writeU32(uint32(len(payload)))
		buf.Write(payload)
	}

	return buf.Bytes()
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.pcap")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenStandardLittleEndian(t *testing.T) {
	data := buildStandard(t, binary.LittleEndian, uint32(Standard), [][]byte{
		{0x01, 0x02, 0x03},
		{0xAA, 0xBB},
	})
	path := writeTempFile(t, data)

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.Equal(t, Standard, eng.Header().Variant)
	require.Equal(t, 2, eng.PacketCount())

	pkt, err := eng.GetPacket(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, pkt.Raw)
	require.True(t, pkt.Complete)
	require.Nil(t, pkt.Modified)
}

func TestOpenStandardSwapped(t *testing.T) {
	data := buildStandard(t, binary.BigEndian, uint32(swappedStandard), [][]byte{
		{0x11, 0x22, 0x33, 0x44},
	})
	path := writeTempFile(t, data)

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.Equal(t, Standard, eng.Header().Variant)
	pkt, err := eng.GetPacket(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, pkt.Raw)
}

func TestOpenNanosecondTimestampScale(t *testing.T) {
	data := buildStandard(t, binary.LittleEndian, uint32(Nanosecond), [][]byte{
		{0x01},
	})
	path := writeTempFile(t, data)

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	pkt, err := eng.GetPacket(0)
	require.NoError(t, err)
	require.InDelta(t, float64(1000), eng.TimestampSeconds(pkt), 1e-6)
}

func TestOpenModifiedSkipsExtraHeaderFields(t *testing.T) {
	var buf bytes.Buffer
	order := binary.LittleEndian

	var magicBuf [4]byte
	order.PutUint32(magicBuf[:], uint32(Modified))
	buf.Write(magicBuf[:])

	writeU16 := func(v uint16) {
		var b [2]byte
		order.PutUint16(b[:], v)
		buf.Write(b[:])
	}
	writeU32 := func(v uint32) {
		var b [4]byte
		order.PutUint32(b[:], v)
		buf.Write(b[:])
	}

	writeU16(2)
	writeU16(4)
	writeU32(0)
	writeU32(0)
	writeU32(65535)
	writeU32(uint32(linktype.Ethernet))

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	writeU32(42)
	writeU32(0)
	writeU32(uint32(len(payload)))
	writeU32(uint32(len(payload)))
	writeU32(7)   // interface index
	writeU16(0x88) // protocol
	buf.Write([]byte{3, 0})
	buf.Write(payload)

	path := writeTempFile(t, buf.Bytes())

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.Equal(t, 1, eng.PacketCount())
	pkt, err := eng.GetPacket(0)
	require.NoError(t, err)
	require.NotNil(t, pkt.Modified)
	require.Equal(t, uint32(7), pkt.Modified.InterfaceIndex)
	require.Equal(t, uint16(0x88), pkt.Modified.Protocol)
	require.Equal(t, uint8(3), pkt.Modified.PacketType)
	require.Equal(t, payload, pkt.Raw)
}

func TestOpenGzipWrapped(t *testing.T) {
	data := buildStandard(t, binary.LittleEndian, uint32(Standard), [][]byte{
		{0x01, 0x02},
	})

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "capture.pcap.gz")
	require.NoError(t, os.WriteFile(path, gzBuf.Bytes(), 0o644))

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.Equal(t, 1, eng.PacketCount())
	pkt, err := eng.GetPacket(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, pkt.Raw)
}

func TestUnknownMagicFails(t *testing.T) {
	path := writeTempFile(t, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 0})
	_, err := Open(path, ReadOnly())
	require.Error(t, err)
}

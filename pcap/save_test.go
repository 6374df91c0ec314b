package pcap

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildStandardLE(t *testing.T, packets [][]byte) []byte {
	t.Helper()
	return buildStandard(t, binary.LittleEndian, uint32(Standard), packets)
}

func TestSaveRewritesAfterRemovePacket(t *testing.T) {
	data := buildStandardLE(t, [][]byte{
		{0x01, 0x02},
		{0x03, 0x04, 0x05},
		{0x06},
	})
	path := writeTempFile(t, data)

	eng, err := Open(path)
	require.NoError(t, err)
	defer eng.Close()

	require.Equal(t, 3, eng.PacketCount())
	require.NoError(t, eng.RemovePacket(1))
	require.Equal(t, 2, eng.PacketCount())
	require.NoError(t, eng.Save())

	reopened, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, 2, reopened.PacketCount())
	first, err := reopened.GetPacket(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, first.Raw)
	second, err := reopened.GetPacket(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x06}, second.Raw)
}

func TestSaveFailsReadOnly(t *testing.T) {
	data := buildStandardLE(t, [][]byte{{0x01}})
	path := writeTempFile(t, data)

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.ErrorIs(t, eng.Save(), ErrReadOnly)
}

func TestCreateAndAppendPacketRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcap")

	eng, err := Create(path, DefaultFileHeader())
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.AppendPacket(&Packet{
		Header: PacketHeader{TimestampSec: 1000, CapturedLen: 3, ActualLen: 3},
		Raw:    []byte{0x01, 0x02, 0x03},
	}))
	require.NoError(t, eng.AppendPacket(&Packet{
		Header: PacketHeader{TimestampSec: 1001, CapturedLen: 1, ActualLen: 1},
		Raw:    []byte{0xFF},
	}))
	require.Equal(t, 2, eng.PacketCount())
	require.NoError(t, eng.Save())

	reopened, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, Standard, reopened.Header().Variant)
	require.Equal(t, 2, reopened.PacketCount())
	first, err := reopened.GetPacket(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, first.Raw)
	second, err := reopened.GetPacket(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF}, second.Raw)
}

func TestCreateFailsReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcap")
	_, err := Create(path, DefaultFileHeader(), ReadOnly())
	require.ErrorIs(t, err, ErrReadOnly)
}

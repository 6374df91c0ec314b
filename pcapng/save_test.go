package pcapng

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lethalbit/libnokogiri/internal/linktype"
)

func TestSaveRoundTrip(t *testing.T) {
	data := buildSection(t, binary.LittleEndian, byteOrderMagic)
	path := writeTempPcapng(t, data)

	eng, err := Open(path)
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Save())

	reopened, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer reopened.Close()

	require.Len(t, reopened.Sections(), 1)
	section := reopened.Sections()[0]
	require.Len(t, section.Blocks, 3)

	epb, err := reopened.GetBlock(&section.Blocks[2])
	require.NoError(t, err)
	epbBlock, ok := epb.(*EnhancedPacketBlock)
	require.True(t, ok)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, epbBlock.Payload)
}

func TestSaveFailsReadOnly(t *testing.T) {
	data := buildSection(t, binary.LittleEndian, byteOrderMagic)
	path := writeTempPcapng(t, data)

	eng, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer eng.Close()

	require.ErrorIs(t, eng.Save(), ErrReadOnly)
}

func TestCreateAppendBlockRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcapng")

	eng, err := Create(path, SectionHeaderBlock{Version: Version{Major: 1, Minor: 0}, SectionLength: -1})
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.AppendBlock(&InterfaceDescriptionBlock{
		LinkType: linktype.Ethernet,
		SnapLen:  65535,
	}))
	require.NoError(t, eng.AppendBlock(&EnhancedPacketBlock{
		TimestampLo: 1000,
		CapturedLen: 3,
		OriginalLen: 3,
		Payload:     []byte{0xAA, 0xBB, 0xCC},
	}))
	require.NoError(t, eng.Save())

	reopened, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer reopened.Close()

	require.Len(t, reopened.Sections(), 1)
	section := reopened.Sections()[0]
	require.Len(t, section.Blocks, 3)

	idb, err := reopened.GetBlock(&section.Blocks[1])
	require.NoError(t, err)
	idbBlock, ok := idb.(*InterfaceDescriptionBlock)
	require.True(t, ok)
	require.Equal(t, linktype.Ethernet, idbBlock.LinkType)

	epb, err := reopened.GetBlock(&section.Blocks[2])
	require.NoError(t, err)
	epbBlock, ok := epb.(*EnhancedPacketBlock)
	require.True(t, ok)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, epbBlock.Payload)
}

func TestCreateAppendSectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcapng")

	eng, err := Create(path, SectionHeaderBlock{Version: Version{Major: 1, Minor: 0}, SectionLength: -1})
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.AppendBlock(&InterfaceDescriptionBlock{LinkType: linktype.Ethernet, SnapLen: 65535}))
	require.NoError(t, eng.AppendSection(SectionHeaderBlock{Version: Version{Major: 1, Minor: 0}, SectionLength: -1}))
	require.NoError(t, eng.AppendBlock(&InterfaceDescriptionBlock{LinkType: linktype.Ethernet, SnapLen: 1500}))
	require.NoError(t, eng.Save())

	reopened, err := Open(path, ReadOnly())
	require.NoError(t, err)
	defer reopened.Close()

	require.Len(t, reopened.Sections(), 2)
	first := reopened.Sections()[0]
	second := reopened.Sections()[1]
	require.Len(t, first.Blocks, 2)
	require.Len(t, second.Blocks, 2)

	firstIDB, err := reopened.GetBlock(&first.Blocks[1])
	require.NoError(t, err)
	require.Equal(t, uint32(65535), firstIDB.(*InterfaceDescriptionBlock).SnapLen)

	secondIDB, err := reopened.GetBlock(&second.Blocks[1])
	require.NoError(t, err)
	require.Equal(t, uint32(1500), secondIDB.(*InterfaceDescriptionBlock).SnapLen)
}

func TestCreateFailsReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pcapng")
	_, err := Create(path, SectionHeaderBlock{SectionLength: -1}, ReadOnly())
	require.ErrorIs(t, err, ErrReadOnly)
}

package pcapng

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeOptionsForTest(opts []Option, order binary.ByteOrder) []byte {
	return encodeOptions(opts, order)
}

func TestParseOptionsRoundTrip(t *testing.T) {
	order := binary.LittleEndian
	opts := []Option{
		{Type: OptComment, Data: []byte("hello")},
		{Type: ShbHardware, Data: []byte("x86_64")},
	}
	encoded := encodeOptionsForTest(opts, order)

	parsed, err := parseOptions(encoded, order)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	require.Equal(t, OptComment, parsed[0].Type)
	require.Equal(t, "hello", string(parsed[0].Data))
	require.Equal(t, ShbHardware, parsed[1].Type)
	require.Equal(t, "x86_64", string(parsed[1].Data))
}

func TestParseOptionsEmptyEncodesNothing(t *testing.T) {
	order := binary.LittleEndian
	encoded := encodeOptionsForTest(nil, order)
	require.Empty(t, encoded)
	parsed, err := parseOptions(encoded, order)
	require.NoError(t, err)
	require.Empty(t, parsed)
}

func TestCommentHelper(t *testing.T) {
	opts := []Option{{Type: OptComment, Data: []byte("note")}}
	text, ok := Comment(opts)
	require.True(t, ok)
	require.Equal(t, "note", text)

	_, ok = Comment(nil)
	require.False(t, ok)
}

func TestAllowsMultiple(t *testing.T) {
	require.True(t, OptComment.AllowsMultiple())
	require.False(t, ShbHardware.AllowsMultiple())
}

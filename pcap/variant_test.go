package pcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMagic(t *testing.T) {
	cases := []struct {
		name    string
		raw     uint32
		variant Variant
		swapped bool
	}{
		{"standard", uint32(Standard), Standard, false},
		{"standard-swapped", uint32(swappedStandard), Standard, true},
		{"modified", uint32(Modified), Modified, false},
		{"modified-swapped", uint32(swappedModified), Modified, true},
		{"ixiahw", uint32(IXIAHW), IXIAHW, false},
		{"ixiasw", uint32(IXIASW), IXIASW, false},
		{"nanosecond", uint32(Nanosecond), Nanosecond, false},
		{"nanosecond-swapped", uint32(swappedNanosecond), Nanosecond, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			variant, swapped, ok := resolveMagic(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.variant, variant)
			assert.Equal(t, tc.swapped, swapped)
		})
	}
}

func TestResolveMagicUnknown(t *testing.T) {
	_, _, ok := resolveMagic(0xDEADBEEF)
	assert.False(t, ok)
}

func TestVariantName(t *testing.T) {
	assert.Equal(t, "standard", Standard.Name())
	assert.Equal(t, "modified", Modified.Name())
	assert.Equal(t, "ixia-hw", IXIAHW.Name())
	assert.Equal(t, "ixia-sw", IXIASW.Name())
	assert.Equal(t, "nanosecond", Nanosecond.Name())
	assert.Equal(t, "?", Variant(0).Name())
}

func TestVariantHeaderShape(t *testing.T) {
	assert.Equal(t, int64(4), Standard.headerTail())
	assert.Equal(t, int64(12), Modified.headerTail())
	assert.Equal(t, int64(16), Standard.headerSize())
	assert.Equal(t, int64(24), Modified.headerSize())
}

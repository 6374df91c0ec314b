package pcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCompare(t *testing.T) {
	assert.Equal(t, 0, Version{2, 4}.Compare(Version{2, 4}))
	assert.Equal(t, -1, Version{2, 4}.Compare(Version{2, 5}))
	assert.Equal(t, 1, Version{2, 5}.Compare(Version{2, 4}))
	assert.Equal(t, -1, Version{1, 9}.Compare(Version{2, 0}))
	assert.Equal(t, 1, Version{3, 0}.Compare(Version{2, 9}))
}

func TestDefaultFileHeader(t *testing.T) {
	h := DefaultFileHeader()
	assert.Equal(t, Standard, h.Variant)
	assert.Equal(t, uint16(2), h.Version.Major)
	assert.Equal(t, uint16(4), h.Version.Minor)
	assert.Equal(t, uint32(65535), h.SnapLen)
}

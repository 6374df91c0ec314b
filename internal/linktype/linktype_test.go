package linktype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameKnownValues(t *testing.T) {
	assert.Equal(t, "EN10MB", Ethernet.Name())
	assert.Equal(t, "NULL", BSDLoopback.Name())
	assert.Equal(t, "IEEE802_11", IEEE802_11.Name())
}

func TestNameUnknownValue(t *testing.T) {
	assert.Equal(t, "?", LinkType(0xFFFF).Name())
}

func TestNameUserReserved(t *testing.T) {
	assert.Equal(t, "USER", User0.Name())
	assert.Equal(t, "USER", User15.Name())
}

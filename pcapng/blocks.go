package pcapng

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/lethalbit/libnokogiri/internal/linktype"
)

// ErrTruncatedBlock is returned when a block's declared length implies more
// fixed-field bytes than its body actually contains.
var ErrTruncatedBlock = errors.New("pcapng: truncated block body")

// InterfaceDescriptionBlock declares a capture interface for the section:
// its link type, snap length, and descriptive options.
type InterfaceDescriptionBlock struct {
	blockHeader
	LinkType linktype.LinkType
	SnapLen  uint32
	Options  []Option
}

// PacketBlock is the obsolete, pre-EnhancedPacket packet record.
type PacketBlock struct {
	blockHeader
	InterfaceID uint16
	DropsCount  uint16
	TimestampHi uint32
	TimestampLo uint32
	CapturedLen uint32
	OriginalLen uint32
	Payload     []byte
	Options     []Option
}

// SimplePacketBlock is the minimal packet record: original length plus
// payload, with no interface reference, timestamp, or options.
type SimplePacketBlock struct {
	blockHeader
	OriginalLen uint32
	Payload     []byte
}

// NameResolutionRecord is one address-to-name mapping inside a
// NameResolutionBlock.
type NameResolutionRecord struct {
	Type uint16
	Data []byte
}

// NameResolutionBlock maps addresses to names, e.g. for the interfaces
// referenced elsewhere in the section.
type NameResolutionBlock struct {
	blockHeader
	Records []NameResolutionRecord
	Options []Option
}

// InterfaceStatisticsBlock carries capture statistics for one interface as
// of a point in time.
type InterfaceStatisticsBlock struct {
	blockHeader
	InterfaceID uint32
	TimestampHi uint32
	TimestampLo uint32
	Options     []Option
}

// EnhancedPacketBlock is the modern packet record: 32-bit interface
// reference, a full 64-bit split timestamp, and separate captured/original
// lengths.
type EnhancedPacketBlock struct {
	blockHeader
	InterfaceID uint32
	TimestampHi uint32
	TimestampLo uint32
	CapturedLen uint32
	OriginalLen uint32
	Payload     []byte
	Options     []Option
}

// SocketAggregationBlock is an opaque, vendor-defined aggregation record;
// this engine preserves its body without interpreting it.
type SocketAggregationBlock struct {
	blockHeader
	Body []byte
}

// SystemdJournalExportBlock wraps one or more systemd journal export
// records; this engine preserves the body without splitting entries.
type SystemdJournalExportBlock struct {
	blockHeader
	Body []byte
}

// DecryptionSecretsBlock carries out-of-band key material referenced by
// decoders, tagged with a vendor-defined secrets type.
type DecryptionSecretsBlock struct {
	blockHeader
	SecretsType uint32
	Secrets     []byte
	Options     []Option
}

// CustomBlock is either the copyable (0x00000BAD) or non-copyable
// (0x40000BAD) vendor extension block. PEN is the organization's IANA
// Private Enterprise Number; Payload is left uninterpreted since its shape
// is PEN-specific.
type CustomBlock struct {
	blockHeader
	PEN     uint32
	Payload []byte
}

func parseInterfaceDescription(h blockHeader, body []byte, order binary.ByteOrder) (*InterfaceDescriptionBlock, error) {
	if len(body) < 8 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: interface description block")
	}
	opts, err := parseOptions(body[8:], order)
	if err != nil {
		return nil, err
	}
	return &InterfaceDescriptionBlock{
		blockHeader: h,
		LinkType:    linktype.LinkType(order.Uint16(body[0:2])),
		SnapLen:     order.Uint32(body[4:8]),
		Options:     opts,
	}, nil
}

func parsePacket(h blockHeader, body []byte, order binary.ByteOrder) (*PacketBlock, error) {
	if len(body) < 20 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: packet block")
	}
	capLen := order.Uint32(body[12:16])
	padded := int(capLen+3) &^ 3
	if 20+padded > len(body) {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: packet block payload")
	}
	opts, err := parseOptions(body[20+padded:], order)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, capLen)
	copy(payload, body[20:20+capLen])
	return &PacketBlock{
		blockHeader: h,
		InterfaceID: order.Uint16(body[0:2]),
		DropsCount:  order.Uint16(body[2:4]),
		TimestampHi: order.Uint32(body[4:8]),
		TimestampLo: order.Uint32(body[8:12]),
		CapturedLen: capLen,
		OriginalLen: order.Uint32(body[16:20]),
		Payload:     payload,
		Options:     opts,
	}, nil
}

func parseSimplePacket(h blockHeader, body []byte, order binary.ByteOrder) (*SimplePacketBlock, error) {
	if len(body) < 4 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: simple packet block")
	}
	payload := make([]byte, len(body)-4)
	copy(payload, body[4:])
	return &SimplePacketBlock{
		blockHeader: h,
		OriginalLen: order.Uint32(body[0:4]),
		Payload:     payload,
	}, nil
}

func parseNameResolution(h blockHeader, body []byte, order binary.ByteOrder) (*NameResolutionBlock, error) {
	var records []NameResolutionRecord
	pos := 0
	for pos+4 <= len(body) {
		t := order.Uint16(body[pos : pos+2])
		length := int(order.Uint16(body[pos+2 : pos+4]))
		pos += 4
		if t == 0 && length == 0 {
			break
		}
		if pos+length > len(body) {
			return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: name resolution record")
		}
		data := make([]byte, length)
		copy(data, body[pos:pos+length])
		records = append(records, NameResolutionRecord{Type: t, Data: data})
		pos += length
		if pad := length % 4; pad != 0 {
			pos += 4 - pad
		}
	}
	opts, err := parseOptions(body[pos:], order)
	if err != nil {
		return nil, err
	}
	return &NameResolutionBlock{blockHeader: h, Records: records, Options: opts}, nil
}

func parseInterfaceStatistics(h blockHeader, body []byte, order binary.ByteOrder) (*InterfaceStatisticsBlock, error) {
	if len(body) < 12 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: interface statistics block")
	}
	opts, err := parseOptions(body[12:], order)
	if err != nil {
		return nil, err
	}
	return &InterfaceStatisticsBlock{
		blockHeader: h,
		InterfaceID: order.Uint32(body[0:4]),
		TimestampHi: order.Uint32(body[4:8]),
		TimestampLo: order.Uint32(body[8:12]),
		Options:     opts,
	}, nil
}

func parseEnhancedPacket(h blockHeader, body []byte, order binary.ByteOrder) (*EnhancedPacketBlock, error) {
	if len(body) < 20 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: enhanced packet block")
	}
	capLen := order.Uint32(body[12:16])
	padded := int(capLen+3) &^ 3
	if 20+padded > len(body) {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: enhanced packet block payload")
	}
	opts, err := parseOptions(body[20+padded:], order)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, capLen)
	copy(payload, body[20:20+capLen])
	return &EnhancedPacketBlock{
		blockHeader: h,
		InterfaceID: order.Uint32(body[0:4]),
		TimestampHi: order.Uint32(body[4:8]),
		TimestampLo: order.Uint32(body[8:12]),
		CapturedLen: capLen,
		OriginalLen: order.Uint32(body[16:20]),
		Payload:     payload,
		Options:     opts,
	}, nil
}

func parseDecryptionSecrets(h blockHeader, body []byte, order binary.ByteOrder) (*DecryptionSecretsBlock, error) {
	if len(body) < 8 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: decryption secrets block")
	}
	length := order.Uint32(body[4:8])
	padded := int(length+3) &^ 3
	if 8+padded > len(body) {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: decryption secrets block data")
	}
	opts, err := parseOptions(body[8+padded:], order)
	if err != nil {
		return nil, err
	}
	secrets := make([]byte, length)
	copy(secrets, body[8:8+length])
	return &DecryptionSecretsBlock{
		blockHeader: h,
		SecretsType: order.Uint32(body[0:4]),
		Secrets:     secrets,
		Options:     opts,
	}, nil
}

func parseCustomBlock(h blockHeader, body []byte, order binary.ByteOrder) (*CustomBlock, error) {
	if len(body) < 4 {
		return nil, errors.Wrap(ErrTruncatedBlock, "pcapng: custom block")
	}
	payload := make([]byte, len(body)-4)
	copy(payload, body[4:])
	return &CustomBlock{blockHeader: h, PEN: order.Uint32(body[0:4]), Payload: payload}, nil
}

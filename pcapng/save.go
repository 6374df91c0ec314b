package pcapng

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

func encodeOptions(opts []Option, order binary.ByteOrder) []byte {
	if len(opts) == 0 {
		return nil
	}
	var out []byte
	for _, o := range opts {
		var head [4]byte
		order.PutUint16(head[0:2], uint16(o.Type))
		order.PutUint16(head[2:4], uint16(len(o.Data)))
		out = append(out, head[:]...)
		out = append(out, o.Data...)
		if pad := len(o.Data) % 4; pad != 0 {
			out = append(out, make([]byte, 4-pad)...)
		}
	}
	var end [4]byte
	out = append(out, end[:]...)
	return out
}

func padTo4(buf []byte) []byte {
	if pad := len(buf) % 4; pad != 0 {
		return append(buf, make([]byte, 4-pad)...)
	}
	return buf
}

// encodeBlockBody renders a materialized block's body (everything between
// the leading and trailing length fields).
func encodeBlockBody(b Block, order binary.ByteOrder) ([]byte, error) {
	switch v := b.(type) {
	case *InterfaceDescriptionBlock:
		var fixed [8]byte
		order.PutUint16(fixed[0:2], uint16(v.LinkType))
		order.PutUint32(fixed[4:8], v.SnapLen)
		return append(fixed[:], encodeOptions(v.Options, order)...), nil
	case *PacketBlock:
		var fixed [20]byte
		order.PutUint16(fixed[0:2], v.InterfaceID)
		order.PutUint16(fixed[2:4], v.DropsCount)
		order.PutUint32(fixed[4:8], v.TimestampHi)
		order.PutUint32(fixed[8:12], v.TimestampLo)
		order.PutUint32(fixed[12:16], v.CapturedLen)
		order.PutUint32(fixed[16:20], v.OriginalLen)
		body := append(fixed[:], padTo4(append([]byte{}, v.Payload...))...)
		return append(body, encodeOptions(v.Options, order)...), nil
	case *SimplePacketBlock:
		var fixed [4]byte
		order.PutUint32(fixed[:], v.OriginalLen)
		return append(fixed[:], padTo4(append([]byte{}, v.Payload...))...), nil
	case *NameResolutionBlock:
		var body []byte
		for _, r := range v.Records {
			var head [4]byte
			order.PutUint16(head[0:2], r.Type)
			order.PutUint16(head[2:4], uint16(len(r.Data)))
			body = append(body, head[:]...)
			body = append(body, r.Data...)
			if pad := len(r.Data) % 4; pad != 0 {
				body = append(body, make([]byte, 4-pad)...)
			}
		}
		body = append(body, make([]byte, 4)...)
		return append(body, encodeOptions(v.Options, order)...), nil
	case *InterfaceStatisticsBlock:
		var fixed [12]byte
		order.PutUint32(fixed[0:4], v.InterfaceID)
		order.PutUint32(fixed[4:8], v.TimestampHi)
		order.PutUint32(fixed[8:12], v.TimestampLo)
		return append(fixed[:], encodeOptions(v.Options, order)...), nil
	case *EnhancedPacketBlock:
		var fixed [20]byte
		order.PutUint32(fixed[0:4], v.InterfaceID)
		order.PutUint32(fixed[4:8], v.TimestampHi)
		order.PutUint32(fixed[8:12], v.TimestampLo)
		order.PutUint32(fixed[12:16], v.CapturedLen)
		order.PutUint32(fixed[16:20], v.OriginalLen)
		body := append(fixed[:], padTo4(append([]byte{}, v.Payload...))...)
		return append(body, encodeOptions(v.Options, order)...), nil
	case *SocketAggregationBlock:
		return append([]byte{}, v.Body...), nil
	case *SystemdJournalExportBlock:
		return append([]byte{}, v.Body...), nil
	case *DecryptionSecretsBlock:
		var fixed [8]byte
		order.PutUint32(fixed[0:4], v.SecretsType)
		order.PutUint32(fixed[4:8], uint32(len(v.Secrets)))
		body := append(fixed[:], padTo4(append([]byte{}, v.Secrets...))...)
		return append(body, encodeOptions(v.Options, order)...), nil
	case *CustomBlock:
		var fixed [4]byte
		order.PutUint32(fixed[:], v.PEN)
		return append(fixed[:], v.Payload...), nil
	case *Opaque:
		return append([]byte{}, v.Body...), nil
	default:
		return nil, errors.Errorf("pcapng: unsupported block type %T for save", b)
	}
}

// Save rewrites the backing file: every section's header followed by every
// block it contains, re-encoded from its materialized form. Any block not
// yet materialized is loaded first, so a full Save always forces a
// complete read. Save fails if the engine was opened read-only.
func (e *Engine) Save() error {
	if e.readOnly {
		return ErrReadOnly
	}

	// Load every block before writing anything: the rewrite starts at offset
	// 0 and would otherwise overwrite blocks not yet read.
	for _, section := range e.sections {
		for i := 1; i < len(section.Blocks); i++ {
			if _, err := e.GetBlock(&section.Blocks[i]); err != nil {
				return errors.Wrapf(err, "pcapng: materializing block %d for save", i)
			}
		}
	}

	if _, err := e.src.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "pcapng: seeking to start for save")
	}

	for _, section := range e.sections {
		order := section.order

		magic := byteOrderMagic
		if section.ByteOrderSwap {
			magic = swappedByteOrderMagic
		}

		shbOffset, err := e.src.Tell()
		if err != nil {
			return err
		}

		shbFixed := make([]byte, 16)
		binary.LittleEndian.PutUint32(shbFixed[0:4], magic)
		order.PutUint16(shbFixed[4:6], section.Header.Version.Major)
		order.PutUint16(shbFixed[6:8], section.Header.Version.Minor)
		order.PutUint64(shbFixed[8:16], uint64(section.Header.SectionLength))
		shbBody := append(shbFixed, encodeOptions(section.Header.Options, order)...)
		if err := e.writeBlock(order, uint32(SectionHeader), shbBody); err != nil {
			return err
		}
		section.startOffset = shbOffset
		section.Blocks[0].FileOffset = shbOffset
		section.Blocks[0].Length = uint32(len(shbBody) + 12)

		for i := 1; i < len(section.Blocks); i++ {
			entry := &section.Blocks[i]
			block, err := e.GetBlock(entry)
			if err != nil {
				return errors.Wrapf(err, "pcapng: materializing block %d for save", i)
			}
			body, err := encodeBlockBody(block, order)
			if err != nil {
				return err
			}

			offset, err := e.src.Tell()
			if err != nil {
				return err
			}
			if err := e.writeBlock(order, uint32(entry.Type), body); err != nil {
				return err
			}
			entry.FileOffset = offset
			entry.Length = uint32(len(body) + 12)
		}
	}

	end, err := e.src.Tell()
	if err != nil {
		return err
	}
	return e.src.Truncate(end)
}

func (e *Engine) writeBlock(order binary.ByteOrder, blockType uint32, body []byte) error {
	total := uint32(len(body) + 12)

	var typeBuf [4]byte
	order.PutUint32(typeBuf[:], blockType)
	if err := e.src.WriteFull(typeBuf[:]); err != nil {
		return err
	}
	if err := e.src.WriteU32(order, total); err != nil {
		return err
	}
	if err := e.src.WriteFull(body); err != nil {
		return err
	}
	return e.src.WriteU32(order, total)
}

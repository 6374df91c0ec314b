package pcap

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// magicOnDisk reproduces the exact 4 bytes a reader would see at offset 0:
// the forward magic if this capture was never byte-swapped, or the swapped
// twin if it was, always encoded little-endian (since that's the order the
// open path reads the raw magic in before classifying it).
func (e *Engine) magicOnDisk() uint32 {
	if !e.swapped {
		return uint32(e.header.Variant)
	}
	switch e.header.Variant {
	case Standard:
		return uint32(swappedStandard)
	case Modified:
		return uint32(swappedModified)
	case IXIAHW:
		return uint32(swappedIXIAHW)
	case IXIASW:
		return uint32(swappedIXIASW)
	case Nanosecond:
		return uint32(swappedNanosecond)
	default:
		return uint32(e.header.Variant)
	}
}

// Save rewrites the backing file: the current file header followed by
// every surviving packet (header + payload) in index order, encoded per
// the capture's variant and byte order. It fails if the engine was opened
// read-only. After a successful Save, the index is rebuilt against the new
// file layout so subsequent GetPacket calls remain consistent.
func (e *Engine) Save() error {
	if e.readOnly {
		return ErrReadOnly
	}

	// Materialize every packet before writing anything: the rewrite starts
	// at offset 0 and would otherwise overwrite packets not yet read.
	packets := make([]*Packet, len(e.index))
	for i := range e.index {
		packet, err := e.GetPacketAt(&e.index[i])
		if err != nil {
			return errors.Wrapf(err, "pcap: materializing packet %d for save", i)
		}
		packets[i] = packet
	}

	if _, err := e.src.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "pcap: seeking to start for save")
	}

	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], e.magicOnDisk())
	if err := e.src.WriteFull(magicBuf[:]); err != nil {
		return err
	}
	if err := e.src.WriteU16(e.order, e.header.Version.Major); err != nil {
		return err
	}
	if err := e.src.WriteU16(e.order, e.header.Version.Minor); err != nil {
		return err
	}
	if err := e.src.WriteU32(e.order, uint32(e.header.TimezoneOffset)); err != nil {
		return err
	}
	if err := e.src.WriteU32(e.order, e.header.TimestampAccuracy); err != nil {
		return err
	}
	if err := e.src.WriteU32(e.order, e.header.SnapLen); err != nil {
		return err
	}
	if err := e.src.WriteU32(e.order, uint32(e.header.LinkType)); err != nil {
		return err
	}

	newIndex := make([]IndexEntry, 0, len(e.index))

	for _, packet := range packets {
		offset, err := e.src.Tell()
		if err != nil {
			return err
		}

		if err := e.src.WriteU32(e.order, packet.Header.TimestampSec); err != nil {
			return err
		}
		if err := e.src.WriteU32(e.order, packet.Header.TimestampSubsec); err != nil {
			return err
		}
		if err := e.src.WriteU32(e.order, packet.Header.CapturedLen); err != nil {
			return err
		}
		if err := e.src.WriteU32(e.order, packet.Header.ActualLen); err != nil {
			return err
		}

		if e.header.Variant == Modified && packet.Modified != nil {
			if err := e.src.WriteU32(e.order, packet.Modified.InterfaceIndex); err != nil {
				return err
			}
			if err := e.src.WriteU16(e.order, packet.Modified.Protocol); err != nil {
				return err
			}
			if err := e.src.WriteFull([]byte{packet.Modified.PacketType, 0}); err != nil {
				return err
			}
		}

		if err := e.src.WriteFull(packet.Raw); err != nil {
			return err
		}

		newIndex = append(newIndex, IndexEntry{
			PayloadLength: packet.Header.CapturedLen,
			FileOffset:    offset,
			cached:        packet,
		})
	}

	end, err := e.src.Tell()
	if err != nil {
		return err
	}
	if err := e.src.Truncate(end); err != nil {
		return err
	}

	e.index = newIndex
	return nil
}

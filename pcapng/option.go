package pcapng

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// OptionType identifies a TLV option within a block's option list. Type 0
// always terminates the list.
type OptionType uint16

const (
	OptEnd        OptionType = 0x0000
	OptComment    OptionType = 0x0001
	OptCustom1    OptionType = 0x0BAC
	OptCustom2    OptionType = 0x0BAD
	OptCustom3    OptionType = 0x4BAC
	OptCustom4    OptionType = 0x4BAD
	ShbHardware   OptionType = 0x0002
	ShbOS         OptionType = 0x0003
	ShbUserAppl   OptionType = 0x0004
	IfName        OptionType = 0x0002
	IfDescription OptionType = 0x0003
	IfTSResol     OptionType = 0x0009
	IfOS          OptionType = 0x000C
)

// multiAllowed lists the option types that may legally repeat within a
// single option list; every other type must appear at most once.
var multiAllowed = map[OptionType]bool{
	OptComment: true,
	OptCustom1: true,
	OptCustom2: true,
	OptCustom3: true,
	OptCustom4: true,
}

// AllowsMultiple reports whether t may legally appear more than once in a
// single block's option list.
func (t OptionType) AllowsMultiple() bool { return multiAllowed[t] }

// Option is a single parsed TLV entry from a block's option list. Data is
// the raw payload, trimmed to Length (padding bytes are not included).
type Option struct {
	Type OptionType
	Data []byte
}

// ErrOptionOverrun is returned when an option's declared length runs past
// the remaining bytes of its containing block.
var ErrOptionOverrun = errors.New("pcapng: option overruns block body")

// parseOptions walks a TLV option list out of body until the End option or
// the body is exhausted, whichever comes first. Each entry's data region is
// padded to a 4-byte boundary on disk; the padding is skipped, not returned.
func parseOptions(body []byte, order binary.ByteOrder) ([]Option, error) {
	var opts []Option
	pos := 0
	for pos < len(body) {
		if pos+4 > len(body) {
			return nil, errors.Wrap(ErrOptionOverrun, "pcapng: truncated option header")
		}
		t := OptionType(order.Uint16(body[pos : pos+2]))
		length := int(order.Uint16(body[pos+2 : pos+4]))
		pos += 4
		if t == OptEnd {
			return opts, nil
		}
		if pos+length > len(body) {
			return nil, errors.Wrap(ErrOptionOverrun, "pcapng: option data")
		}
		data := make([]byte, length)
		copy(data, body[pos:pos+length])
		opts = append(opts, Option{Type: t, Data: data})
		pos += length
		if pad := length % 4; pad != 0 {
			pos += 4 - pad
		}
	}
	return opts, nil
}

// Comment returns the text of the first Comment option, if any.
func Comment(opts []Option) (string, bool) {
	for _, o := range opts {
		if o.Type == OptComment {
			return string(o.Data), true
		}
	}
	return "", false
}

// String returns the text of the first option of type t, if any. Useful
// for the UTF-8 string options (SHB hardware/OS/user application, IDB
// name/description/OS).
func String(opts []Option, t OptionType) (string, bool) {
	for _, o := range opts {
		if o.Type == t {
			return string(o.Data), true
		}
	}
	return "", false
}

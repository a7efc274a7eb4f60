package wkb

import (
	"fmt"

	"github.com/nullform/gscore/errs"
)

const hexDigits = "0123456789ABCDEF"

// encodeHex renders data as uppercase ASCII hex, two characters per byte,
// with no separators or terminator (§9's fixed lookup-table design note).
func encodeHex(data []byte) []byte {
	out := make([]byte, len(data)*2)
	for i, b := range data {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0F]
	}

	return out
}

// decodeHex reverses encodeHex, accepting either case.
func decodeHex(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length hex input", errs.ErrInvalidHex)
	}

	out := make([]byte, len(data)/2)
	for i := range out {
		hi, err := hexNibble(data[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(data[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}

	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("%w: invalid hex character %q", errs.ErrInvalidHex, c)
	}
}

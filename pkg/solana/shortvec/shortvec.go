// Package shortvec implements the compact u16 length prefix used by Solana
// transactions: seven bits per byte, least significant group first, with
// the high bit set on every byte but the last.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const maxEncodedLen = 3

var ErrInvalidLen = errors.New("invalid shortvec length")

// EncodeLen writes n to w. Lengths above math.MaxUint16 are rejected.
func EncodeLen(w io.ByteWriter, n int) error {
	if n < 0 || n > math.MaxUint16 {
		return errors.Wrapf(ErrInvalidLen, "%d out of range", n)
	}

	for n >= 0x80 {
		if err := w.WriteByte(byte(n&0x7f) | 0x80); err != nil {
			return err
		}
		n >>= 7
	}
	return w.WriteByte(byte(n))
}

// DecodeLen reads a length written by EncodeLen. Encodings longer than
// three bytes, above math.MaxUint16 or with a redundant trailing zero byte
// are rejected.
func DecodeLen(r io.ByteReader) (int, error) {
	var n int
	for i := 0; i < maxEncodedLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if i > 0 && b == 0 {
			return 0, errors.Wrap(ErrInvalidLen, "non-canonical encoding")
		}

		n |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if n > math.MaxUint16 {
				return 0, errors.Wrapf(ErrInvalidLen, "%d out of range", n)
			}
			return n, nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidLen, "longer than %d bytes", maxEncodedLen)
}

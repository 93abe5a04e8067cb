package governance

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Values are borsh encoded: little endian integers, u32 length prefixed
// strings and vectors, and a single tag byte for options.

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], v)
	*offset += ed25519.PublicKeySize
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func putOptionalKey(dst []byte, v ed25519.PublicKey, offset *int) {
	if len(v) == 0 {
		putUint8(dst, 0, offset)
		return
	}
	putUint8(dst, 1, offset)
	putKey(dst, v, offset)
}
func getOptionalKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := checkRemaining(src, *offset, 1); err != nil {
		return err
	}

	var tag uint8
	getUint8(src, &tag, offset)
	switch tag {
	case 0:
		*dst = nil
		return nil
	case 1:
		if err := checkRemaining(src, *offset, ed25519.PublicKeySize); err != nil {
			return err
		}
		getKey(src, dst, offset)
		return nil
	default:
		return errors.Wrapf(ErrInvalidAccountData, "invalid option tag %d", tag)
	}
}
func optionalKeySize(v ed25519.PublicKey) int {
	if len(v) == 0 {
		return 1
	}
	return 1 + ed25519.PublicKeySize
}

func putString(dst []byte, v string, offset *int) {
	putUint32(dst, uint32(len(v)), offset)
	copy(dst[*offset:], v)
	*offset += len(v)
}
func getString(src []byte, dst *string, offset *int) error {
	if err := checkRemaining(src, *offset, 4); err != nil {
		return err
	}

	var length uint32
	getUint32(src, &length, offset)
	if err := checkRemaining(src, *offset, int(length)); err != nil {
		return err
	}

	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return nil
}
func stringSize(v string) int {
	return 4 + len(v)
}

func putBytes(dst []byte, v []byte, offset *int) {
	putUint32(dst, uint32(len(v)), offset)
	copy(dst[*offset:], v)
	*offset += len(v)
}

func putBool(dst []byte, v bool, offset *int) {
	if v {
		putUint8(dst, 1, offset)
	} else {
		putUint8(dst, 0, offset)
	}
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}
func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func putUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += 2
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}
func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func checkRemaining(src []byte, offset, n int) error {
	if offset+n > len(src) {
		return errors.Wrapf(ErrInvalidAccountData, "need %d bytes at offset %d, have %d", n, offset, len(src))
	}
	return nil
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

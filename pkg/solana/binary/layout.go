// Package binary encodes the fixed size account layouts of SPL programs:
// little endian integers, 32 byte keys and COption fields whose tag is a
// little endian u32. Absent options still occupy their full width.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// OptionTagSize is the width of a COption tag.
const OptionTagSize = 4

// Encoder writes fields back to back into a preallocated buffer.
type Encoder struct {
	buf []byte
	off int
}

func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Offset is the number of bytes written so far.
func (e *Encoder) Offset() int {
	return e.off
}

func (e *Encoder) Key(k ed25519.PublicKey) {
	copy(e.buf[e.off:e.off+ed25519.PublicKeySize], k)
	e.off += ed25519.PublicKeySize
}

// OptionalKey writes None for an empty key.
func (e *Encoder) OptionalKey(k ed25519.PublicKey) {
	e.tag(len(k) > 0)
	e.Key(k)
}

func (e *Encoder) Uint8(v uint8) {
	e.buf[e.off] = v
	e.off++
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.Uint8(1)
	} else {
		e.Uint8(0)
	}
}

func (e *Encoder) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[e.off:], v)
	e.off += 8
}

// OptionalUint64 writes None for a nil value.
func (e *Encoder) OptionalUint64(v *uint64) {
	e.tag(v != nil)
	if v == nil {
		e.off += 8
		return
	}
	e.Uint64(*v)
}

func (e *Encoder) tag(some bool) {
	var v uint32
	if some {
		v = 1
	}
	binary.LittleEndian.PutUint32(e.buf[e.off:], v)
	e.off += OptionTagSize
}

// Decoder reads fields back to back. Callers check the buffer length
// against the layout size before decoding.
type Decoder struct {
	buf []byte
	off int
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Offset is the number of bytes read so far.
func (d *Decoder) Offset() int {
	return d.off
}

func (d *Decoder) Key() ed25519.PublicKey {
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(k, d.buf[d.off:])
	d.off += ed25519.PublicKeySize
	return k
}

// OptionalKey returns nil for None.
func (d *Decoder) OptionalKey() ed25519.PublicKey {
	if !d.tag() {
		d.off += ed25519.PublicKeySize
		return nil
	}
	return d.Key()
}

func (d *Decoder) Uint8() uint8 {
	v := d.buf[d.off]
	d.off++
	return v
}

func (d *Decoder) Bool() bool {
	return d.Uint8() != 0
}

func (d *Decoder) Uint64() uint64 {
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v
}

// OptionalUint64 returns nil for None.
func (d *Decoder) OptionalUint64() *uint64 {
	if !d.tag() {
		d.off += 8
		return nil
	}
	v := d.Uint64()
	return &v
}

func (d *Decoder) tag() bool {
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += OptionTagSize
	return v != 0
}

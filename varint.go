package bytecodec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// VarintDecoder decodes base-128 unsigned varints (LEB128) one byte at a
// time, so a value split across any number of buffer boundaries decodes
// identically. Values that do not fit in T fail with ErrInvalidInput.
type VarintDecoder[T constraints.Unsigned] struct {
	acc   uint64
	shift uint
	mid   bool
}

var _ Decoder[uint32] = (*VarintDecoder[uint32])(nil)

// NewVarintDecoder returns a decoder for unsigned varints of type T.
func NewVarintDecoder[T constraints.Unsigned]() *VarintDecoder[T] {
	return &VarintDecoder[T]{}
}

func (d *VarintDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	for !buf.IsEmpty() {
		b := buf.Bytes()[0]
		if err := buf.Consume(1); err != nil {
			return zero, false, err
		}
		d.mid = true
		if d.shift >= 64 || (d.shift == 63 && b > 1) {
			return zero, false, fmt.Errorf("%w: varint overflows 64 bits", ErrInvalidInput)
		}
		d.acc |= uint64(b&0x7f) << d.shift
		d.shift += 7
		if b&0x80 != 0 {
			continue
		}
		item := T(d.acc)
		if uint64(item) != d.acc {
			return zero, false, fmt.Errorf("%w: varint value %d overflows %T", ErrInvalidInput, d.acc, zero)
		}
		d.acc, d.shift, d.mid = 0, 0, false
		return item, true, nil
	}
	if buf.IsEOS() && d.mid {
		return zero, false, fmt.Errorf("%w: stream ended inside a varint", ErrUnexpectedEOS)
	}
	return zero, false, nil
}

func (d *VarintDecoder[T]) HasTerminated() bool { return false }

func (d *VarintDecoder[T]) IsIdle() bool { return !d.mid }

// At least the terminating byte is always still needed.
func (d *VarintDecoder[T]) RequiringBytesHint() ByteCount { return FiniteBytes(1) }

// VarintEncoder encodes base-128 unsigned varints. The serialized form is
// produced at StartEncoding time, making this an exact-bytes encoder.
type VarintEncoder[T constraints.Unsigned] struct {
	scratch []byte
	off     int
}

var _ ExactBytesEncoder[uint32] = (*VarintEncoder[uint32])(nil)

// NewVarintEncoder returns an encoder for unsigned varints of type T.
func NewVarintEncoder[T constraints.Unsigned]() *VarintEncoder[T] {
	return &VarintEncoder[T]{}
}

func (e *VarintEncoder[T]) StartEncoding(item T) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: %d bytes unwritten", ErrEncoderFull, e.RequiringBytes())
	}
	e.scratch = binary.AppendUvarint(e.scratch[:0], uint64(item))
	e.off = 0
	return nil
}

func (e *VarintEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	if rem := len(e.scratch) - e.off; rem > len(buf) && eos.Reached() {
		return 0, fmt.Errorf("%w: %d bytes of output remain but only %d can still be written",
			ErrUnexpectedEOS, rem, len(buf))
	}
	n := copy(buf, e.scratch[e.off:])
	e.off += n
	return n, nil
}

func (e *VarintEncoder[T]) IsIdle() bool { return e.off == len(e.scratch) }

func (e *VarintEncoder[T]) RequiringBytesHint() ByteCount { return FiniteBytes(e.RequiringBytes()) }

func (e *VarintEncoder[T]) RequiringBytes() uint64 { return uint64(len(e.scratch) - e.off) }

package bytecodec

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the byte order codecs use unless overridden with
	// WithByteOrder.
	Order binary.ByteOrder = BE
)

// sizeCache avoids the high cost of reflection in binary.Size on every
// call. A concurrent map keeps it safe to share across codec instances.
var sizeCache = xsync.NewMap[reflect.Type, int]()

func binarySize[T any](v *T) int {
	t := reflect.TypeOf(v).Elem()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(v)
	sizeCache.Store(t, size)
	return size
}

// FixedDecoder incrementally decodes any fixed-size value: unsigned and
// signed integers, floats, arrays, and structs composed of them.
//
// Constraint: T must not contain variable-size fields like slices, maps,
// or strings, as binary.Size cannot measure those.
type FixedDecoder[T any] struct {
	scratch []byte
	order   binary.ByteOrder
}

var _ Decoder[uint8] = (*FixedDecoder[uint8])(nil)

// NewFixedDecoder returns a decoder for fixed-size values of type T using
// the default byte order.
func NewFixedDecoder[T any]() *FixedDecoder[T] {
	return &FixedDecoder[T]{order: Order}
}

// WithByteOrder sets a custom byte order and returns the decoder for
// chaining.
func (d *FixedDecoder[T]) WithByteOrder(order binary.ByteOrder) *FixedDecoder[T] {
	d.order = order
	return d
}

func (d *FixedDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var item T
	var zero T
	size := binarySize(&item)
	if size < 0 {
		return zero, false, fmt.Errorf("%w: type %T has no fixed binary size", ErrInvalidInput, item)
	}

	take := size - len(d.scratch)
	if take > buf.Len() {
		take = buf.Len()
	}
	d.scratch = append(d.scratch, buf.Bytes()[:take]...)
	if err := buf.Consume(take); err != nil {
		return zero, false, err
	}

	if len(d.scratch) < size {
		if buf.IsEOS() && len(d.scratch) > 0 {
			return zero, false, fmt.Errorf("%w: need %d more bytes for a %d byte value",
				ErrUnexpectedEOS, size-len(d.scratch), size)
		}
		return zero, false, nil
	}
	if _, err := binary.Decode(d.scratch, d.order, &item); err != nil {
		return zero, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	d.scratch = d.scratch[:0]
	return item, true, nil
}

func (d *FixedDecoder[T]) HasTerminated() bool { return false }

func (d *FixedDecoder[T]) IsIdle() bool { return len(d.scratch) == 0 }

func (d *FixedDecoder[T]) RequiringBytesHint() ByteCount {
	var zero T
	size := binarySize(&zero)
	if size < 0 {
		return UnknownBytes()
	}
	return FiniteBytes(uint64(size - len(d.scratch)))
}

// FixedEncoder incrementally encodes any fixed-size value. The full
// serialization happens at StartEncoding time into a reused scratch
// buffer, making this an exact-bytes encoder.
type FixedEncoder[T any] struct {
	scratch []byte
	off     int
	order   binary.ByteOrder
}

var _ ExactBytesEncoder[uint8] = (*FixedEncoder[uint8])(nil)

// NewFixedEncoder returns an encoder for fixed-size values of type T using
// the default byte order.
func NewFixedEncoder[T any]() *FixedEncoder[T] {
	return &FixedEncoder[T]{order: Order}
}

// WithByteOrder sets a custom byte order and returns the encoder for
// chaining.
func (e *FixedEncoder[T]) WithByteOrder(order binary.ByteOrder) *FixedEncoder[T] {
	e.order = order
	return e
}

func (e *FixedEncoder[T]) StartEncoding(item T) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: %d bytes unwritten", ErrEncoderFull, e.RequiringBytes())
	}
	size := binarySize(&item)
	if size < 0 {
		return fmt.Errorf("%w: type %T has no fixed binary size", ErrInvalidInput, item)
	}
	if cap(e.scratch) < size {
		e.scratch = make([]byte, size)
	} else {
		e.scratch = e.scratch[:size]
	}
	if _, err := binary.Encode(e.scratch, e.order, &item); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	e.off = 0
	return nil
}

func (e *FixedEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	if rem := len(e.scratch) - e.off; rem > len(buf) && eos.Reached() {
		return 0, fmt.Errorf("%w: %d bytes of output remain but only %d can still be written",
			ErrUnexpectedEOS, rem, len(buf))
	}
	n := copy(buf, e.scratch[e.off:])
	e.off += n
	return n, nil
}

func (e *FixedEncoder[T]) IsIdle() bool { return e.off == len(e.scratch) }

func (e *FixedEncoder[T]) RequiringBytesHint() ByteCount { return FiniteBytes(e.RequiringBytes()) }

func (e *FixedEncoder[T]) RequiringBytes() uint64 { return uint64(len(e.scratch) - e.off) }

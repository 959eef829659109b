package bytecodec

import "fmt"

// LengthDecoder frames the inner decoder to exactly N bytes per item. The
// inner decoder is handed a limited view that ends at the frame boundary,
// so it can never see bytes belonging to whatever follows the frame.
type LengthDecoder[T any] struct {
	inner     Decoder[T]
	expected  uint64
	remaining uint64
}

// NewLengthDecoder frames d to expectedBytes bytes per item.
func NewLengthDecoder[T any](d Decoder[T], expectedBytes uint64) *LengthDecoder[T] {
	return &LengthDecoder[T]{inner: d, expected: expectedBytes, remaining: expectedBytes}
}

// ExpectedBytes returns the frame length in bytes.
func (d *LengthDecoder[T]) ExpectedBytes() uint64 { return d.expected }

// SetExpectedBytes changes the frame length. It fails with ErrOther while
// an item is mid-decode; reconfiguration is only safe at an idle point.
func (d *LengthDecoder[T]) SetExpectedBytes(n uint64) error {
	if d.remaining != d.expected {
		return fmt.Errorf("%w: frame length changed while an item is being decoded", ErrOther)
	}
	d.expected = n
	d.remaining = n
	return nil
}

// Inner returns the framed decoder.
func (d *LengthDecoder[T]) Inner() Decoder[T] { return d.inner }

func (d *LengthDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	take := d.remaining
	if n := uint64(buf.Len()); n < take {
		take = n
	}
	frameRemaining := d.remaining - take
	if r, ok := buf.RemainingBytes().U64(); ok && r < frameRemaining {
		return zero, false, fmt.Errorf("%w: frame needs %d more bytes but only %d remain in the stream",
			ErrUnexpectedEOS, frameRemaining, r)
	}

	sub := buf.view(int(take), FiniteBytes(frameRemaining))
	item, ok, err := d.inner.Decode(&sub)
	buf.absorb(&sub)
	d.remaining -= uint64(sub.offset)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	if d.remaining != 0 {
		return zero, false, fmt.Errorf("%w: item finished %d bytes short of its %d byte frame",
			ErrInvalidInput, d.remaining, d.expected)
	}
	d.remaining = d.expected
	return item, true, nil
}

func (d *LengthDecoder[T]) HasTerminated() bool {
	if d.remaining == d.expected {
		return d.inner.HasTerminated()
	}
	return false
}

func (d *LengthDecoder[T]) IsIdle() bool {
	return d.remaining == d.expected && d.inner.IsIdle()
}

func (d *LengthDecoder[T]) RequiringBytesHint() ByteCount {
	if d.HasTerminated() {
		return FiniteBytes(0)
	}
	return FiniteBytes(d.remaining)
}

// LengthEncoder frames the inner encoder to exactly N bytes per item. It
// truncates writes to the frame boundary, forces an end-of-stream signal on
// the inner encoder at the frame edge, and rejects items that finish short
// of the frame.
type LengthEncoder[T any] struct {
	inner     Encoder[T]
	expected  uint64
	remaining uint64
}

// NewLengthEncoder frames e to expectedBytes bytes per item.
func NewLengthEncoder[T any](e Encoder[T], expectedBytes uint64) *LengthEncoder[T] {
	return &LengthEncoder[T]{inner: e, expected: expectedBytes}
}

// ExpectedBytes returns the frame length in bytes.
func (e *LengthEncoder[T]) ExpectedBytes() uint64 { return e.expected }

// SetExpectedBytes changes the frame length. It fails with ErrOther while
// an item is mid-encode.
func (e *LengthEncoder[T]) SetExpectedBytes(n uint64) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: frame length changed while an item is being encoded", ErrOther)
	}
	e.expected = n
	return nil
}

func (e *LengthEncoder[T]) StartEncoding(item T) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: %d bytes of the current frame unwritten", ErrEncoderFull, e.remaining)
	}
	if err := e.inner.StartEncoding(item); err != nil {
		return err
	}
	e.remaining = e.expected
	return nil
}

func (e *LengthEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	if e.remaining == 0 {
		return 0, nil
	}
	if r, ok := eos.Remaining().U64(); ok && uint64(len(buf))+r < e.remaining {
		return 0, fmt.Errorf("%w: frame needs %d bytes but only %d can still be written",
			ErrUnexpectedEOS, e.remaining, uint64(len(buf))+r)
	}

	limit := len(buf)
	var innerEOS EOS
	if uint64(len(buf)) >= e.remaining {
		limit = int(e.remaining)
		innerEOS = NewEOS(true)
	} else {
		// The frame bound is a tighter end of stream than whatever the
		// caller knows about its own output.
		innerEOS = EOS{remaining: FiniteBytes(e.remaining - uint64(len(buf)))}
	}
	n, err := e.inner.Encode(buf[:limit], innerEOS)
	e.remaining -= uint64(n)
	if err != nil {
		return n, err
	}
	if e.inner.IsIdle() && e.remaining != 0 {
		return n, fmt.Errorf("%w: item finished %d bytes short of its %d byte frame",
			ErrInvalidInput, e.remaining, e.expected)
	}
	return n, nil
}

func (e *LengthEncoder[T]) IsIdle() bool { return e.remaining == 0 }

func (e *LengthEncoder[T]) RequiringBytesHint() ByteCount { return FiniteBytes(e.remaining) }

// RequiringBytes implements ExactBytesEncoder: a frame is exact by
// construction, whatever the inner encoder knows about itself.
func (e *LengthEncoder[T]) RequiringBytes() uint64 { return e.remaining }

// MaxBytesDecoder caps the bytes an item may consume at M. Consumption is
// accumulated across Decode calls and reset once an item completes.
type MaxBytesDecoder[T any] struct {
	inner    Decoder[T]
	max      uint64
	consumed uint64
}

// NewMaxBytesDecoder caps d at maxBytes consumed per item.
func NewMaxBytesDecoder[T any](d Decoder[T], maxBytes uint64) *MaxBytesDecoder[T] {
	return &MaxBytesDecoder[T]{inner: d, max: maxBytes}
}

func (d *MaxBytesDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	take := d.max - d.consumed
	if n := uint64(buf.Len()); n < take {
		take = n
	}

	sub := buf.view(int(take), buf.RemainingBytes())
	item, ok, err := d.inner.Decode(&sub)
	buf.absorb(&sub)
	d.consumed += uint64(sub.offset)
	if err != nil {
		return zero, false, err
	}
	if !ok && d.consumed == d.max {
		return zero, false, fmt.Errorf("%w: item exceeded its %d byte budget", ErrInvalidInput, d.max)
	}
	if ok {
		d.consumed = 0
		return item, true, nil
	}
	return zero, false, nil
}

func (d *MaxBytesDecoder[T]) HasTerminated() bool           { return d.inner.HasTerminated() }
func (d *MaxBytesDecoder[T]) IsIdle() bool                  { return d.inner.IsIdle() }
func (d *MaxBytesDecoder[T]) RequiringBytesHint() ByteCount { return d.inner.RequiringBytesHint() }

// MaxBytesEncoder caps the bytes an item may produce at M. The hidden part
// of the caller's buffer is reported to the inner encoder as reserved
// trailing space, so the budget edge is indistinguishable from a genuinely
// short buffer until the budget is spent.
type MaxBytesEncoder[T any] struct {
	inner    Encoder[T]
	max      uint64
	produced uint64
}

// NewMaxBytesEncoder caps e at maxBytes produced per item.
func NewMaxBytesEncoder[T any](e Encoder[T], maxBytes uint64) *MaxBytesEncoder[T] {
	return &MaxBytesEncoder[T]{inner: e, max: maxBytes}
}

func (e *MaxBytesEncoder[T]) StartEncoding(item T) error {
	return e.inner.StartEncoding(item)
}

func (e *MaxBytesEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	limit := e.max - e.produced
	if n := uint64(len(buf)); n < limit {
		limit = n
	}
	innerEOS := eos.Back(uint64(len(buf)) - limit)
	n, err := e.inner.Encode(buf[:limit], innerEOS)
	e.produced += uint64(n)
	if err != nil {
		return n, err
	}
	if e.produced == e.max && !e.inner.IsIdle() {
		return n, fmt.Errorf("%w: item exceeded its %d byte budget", ErrInvalidInput, e.max)
	}
	if e.inner.IsIdle() {
		e.produced = 0
	}
	return n, nil
}

func (e *MaxBytesEncoder[T]) IsIdle() bool                  { return e.inner.IsIdle() }
func (e *MaxBytesEncoder[T]) RequiringBytesHint() ByteCount { return e.inner.RequiringBytesHint() }

// SkipRemainingDecoder decodes one item, then discards every further byte
// until end of stream before yielding it. The stream must carry a known,
// finite remaining-bytes bound.
type SkipRemainingDecoder[T any] struct {
	inner Decoder[T]
	item  *T
}

// NewSkipRemainingDecoder wraps d so that the rest of the stream is
// discarded after its item.
func NewSkipRemainingDecoder[T any](d Decoder[T]) *SkipRemainingDecoder[T] {
	return &SkipRemainingDecoder[T]{inner: d}
}

func (d *SkipRemainingDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	if !buf.RemainingBytes().IsFinite() {
		return zero, false, fmt.Errorf("%w: cannot skip the rest of an unbounded byte stream", ErrInvalidInput)
	}
	if d.item == nil {
		item, ok, err := d.inner.Decode(buf)
		if err != nil {
			return zero, false, err
		}
		if ok {
			d.item = &item
		}
	}
	if d.item != nil {
		buf.ConsumeAll()
		if buf.IsEOS() {
			item := *d.item
			d.item = nil
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (d *SkipRemainingDecoder[T]) HasTerminated() bool {
	if d.item != nil {
		return false
	}
	return d.inner.HasTerminated()
}

func (d *SkipRemainingDecoder[T]) IsIdle() bool {
	return d.item == nil && d.inner.IsIdle()
}

func (d *SkipRemainingDecoder[T]) RequiringBytesHint() ByteCount {
	if d.item != nil {
		return UnknownBytes()
	}
	return d.inner.RequiringBytesHint()
}

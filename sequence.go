package bytecodec

import (
	"fmt"
	"iter"
)

// TakeDecoder limits a decoder to producing at most K items, then forces
// termination. Decoding a (K+1)th item fails with ErrDecoderTerminated.
type TakeDecoder[T any] struct {
	inner   Decoder[T]
	limit   uint64
	decoded uint64
}

// NewTakeDecoder limits d to count items.
func NewTakeDecoder[T any](d Decoder[T], count uint64) *TakeDecoder[T] {
	return &TakeDecoder[T]{inner: d, limit: count}
}

func (d *TakeDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	if d.decoded == d.limit {
		return zero, false, fmt.Errorf("%w: item limit %d reached", ErrDecoderTerminated, d.limit)
	}
	item, ok, err := d.inner.Decode(buf)
	if err != nil || !ok {
		return zero, false, err
	}
	d.decoded++
	return item, true, nil
}

func (d *TakeDecoder[T]) HasTerminated() bool {
	return d.decoded == d.limit || d.inner.HasTerminated()
}

func (d *TakeDecoder[T]) IsIdle() bool { return d.inner.IsIdle() }

func (d *TakeDecoder[T]) RequiringBytesHint() ByteCount {
	if d.HasTerminated() {
		return FiniteBytes(0)
	}
	return d.inner.RequiringBytesHint()
}

// CollectDecoder decodes a single aggregate item by running the inner
// decoder repeatedly until it terminates or the stream ends, accumulating
// the items into a slice.
//
// It is a oneshot decoder: after producing the aggregate it terminates and
// cannot be reused. Partial aggregation state persists across calls that
// report no item yet.
type CollectDecoder[T any] struct {
	inner   Decoder[T]
	items   []T
	started bool
	done    bool
}

// NewCollectDecoder aggregates every item of d into one slice.
func NewCollectDecoder[T any](d Decoder[T]) *CollectDecoder[T] {
	return &CollectDecoder[T]{inner: d}
}

func (d *CollectDecoder[T]) Decode(buf *DecodeBuf) ([]T, bool, error) {
	if d.done {
		return nil, false, fmt.Errorf("%w: aggregate already produced", ErrDecoderTerminated)
	}
	if !d.started {
		d.started = true
		d.items = make([]T, 0)
	}
	for !(buf.IsEmpty() && buf.IsEOS()) && !d.inner.HasTerminated() {
		item, ok, err := d.inner.Decode(buf)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		d.items = append(d.items, item)
	}
	items := d.items
	d.items = nil
	d.started = false
	d.done = true
	return items, true, nil
}

func (d *CollectDecoder[T]) HasTerminated() bool {
	return d.done || d.inner.HasTerminated()
}

func (d *CollectDecoder[T]) IsIdle() bool { return !d.started }

func (d *CollectDecoder[T]) RequiringBytesHint() ByteCount {
	if d.done {
		return FiniteBytes(0)
	}
	return d.inner.RequiringBytesHint()
}

// OmitDecoder conditionally skips the inner decoder entirely based on a
// flag fixed at construction. When omitted it synthesizes an absent item
// immediately, consuming no bytes; its item type is *T with nil for absent.
type OmitDecoder[T any] struct {
	inner Decoder[T]
	omit  bool
}

// NewOmitDecoder wraps d; with omit true the decoder yields nil items
// without touching the input.
func NewOmitDecoder[T any](d Decoder[T], omit bool) *OmitDecoder[T] {
	return &OmitDecoder[T]{inner: d, omit: omit}
}

func (d *OmitDecoder[T]) Decode(buf *DecodeBuf) (*T, bool, error) {
	if d.omit {
		return nil, true, nil
	}
	item, ok, err := d.inner.Decode(buf)
	if err != nil || !ok {
		return nil, false, err
	}
	return &item, true, nil
}

func (d *OmitDecoder[T]) HasTerminated() bool {
	if d.omit {
		return false
	}
	return d.inner.HasTerminated()
}

func (d *OmitDecoder[T]) IsIdle() bool {
	if d.omit {
		return true
	}
	return d.inner.IsIdle()
}

func (d *OmitDecoder[T]) RequiringBytesHint() ByteCount {
	if d.omit {
		return FiniteBytes(0)
	}
	return d.inner.RequiringBytesHint()
}

// RepeatEncoder encodes a sequence of items back to back with one inner
// encoder, reused per item. The next item is pulled from the sequence only
// once the inner encoder reports idle, so the source is consumed lazily.
type RepeatEncoder[T any] struct {
	inner Encoder[T]
	next  func() (T, bool)
	stop  func()
}

// NewRepeatEncoder repeats e over every item of a sequence.
func NewRepeatEncoder[T any](e Encoder[T]) *RepeatEncoder[T] {
	return &RepeatEncoder[T]{inner: e}
}

func (e *RepeatEncoder[T]) StartEncoding(items iter.Seq[T]) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: sequence still being encoded", ErrEncoderFull)
	}
	e.next, e.stop = iter.Pull(items)
	return nil
}

func (e *RepeatEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	for e.inner.IsIdle() && e.next != nil {
		item, ok := e.next()
		if !ok {
			e.stop()
			e.next, e.stop = nil, nil
			break
		}
		if err := e.inner.StartEncoding(item); err != nil {
			return 0, err
		}
	}
	if e.IsIdle() {
		return 0, nil
	}
	return e.inner.Encode(buf, eos)
}

func (e *RepeatEncoder[T]) IsIdle() bool {
	return e.next == nil && e.inner.IsIdle()
}

func (e *RepeatEncoder[T]) RequiringBytesHint() ByteCount {
	if e.IsIdle() {
		return FiniteBytes(0)
	}
	return UnknownBytes()
}

// OptionalEncoder encodes *T items, emitting nothing for nil. A nil item
// leaves the encoder idle immediately.
type OptionalEncoder[T any] struct {
	inner Encoder[T]
}

// NewOptionalEncoder makes e accept optional items.
func NewOptionalEncoder[T any](e Encoder[T]) *OptionalEncoder[T] {
	return &OptionalEncoder[T]{inner: e}
}

func (e *OptionalEncoder[T]) StartEncoding(item *T) error {
	if item == nil {
		return nil
	}
	return e.inner.StartEncoding(*item)
}

func (e *OptionalEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	return e.inner.Encode(buf, eos)
}

func (e *OptionalEncoder[T]) IsIdle() bool                  { return e.inner.IsIdle() }
func (e *OptionalEncoder[T]) RequiringBytesHint() ByteCount { return e.inner.RequiringBytesHint() }

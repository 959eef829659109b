package bytecodec

import "fmt"

// MapDecoder converts decoded items to other values with a pure function.
// All byte accounting is delegated unchanged to the inner decoder.
type MapDecoder[A, B any] struct {
	inner Decoder[A]
	fn    func(A) B
}

// NewMapDecoder wraps d so that every decoded item is passed through fn.
func NewMapDecoder[A, B any](d Decoder[A], fn func(A) B) *MapDecoder[A, B] {
	return &MapDecoder[A, B]{inner: d, fn: fn}
}

func (d *MapDecoder[A, B]) Decode(buf *DecodeBuf) (B, bool, error) {
	var zero B
	item, ok, err := d.inner.Decode(buf)
	if err != nil || !ok {
		return zero, false, err
	}
	return d.fn(item), true, nil
}

func (d *MapDecoder[A, B]) HasTerminated() bool            { return d.inner.HasTerminated() }
func (d *MapDecoder[A, B]) IsIdle() bool                   { return d.inner.IsIdle() }
func (d *MapDecoder[A, B]) RequiringBytesHint() ByteCount  { return d.inner.RequiringBytesHint() }

// TryMapDecoder converts decoded items with a fallible function. A failed
// conversion aborts the Decode call with the function's error.
type TryMapDecoder[A, B any] struct {
	inner Decoder[A]
	fn    func(A) (B, error)
}

// NewTryMapDecoder wraps d so that every decoded item is converted by fn,
// surfacing conversion failures as decode errors.
func NewTryMapDecoder[A, B any](d Decoder[A], fn func(A) (B, error)) *TryMapDecoder[A, B] {
	return &TryMapDecoder[A, B]{inner: d, fn: fn}
}

func (d *TryMapDecoder[A, B]) Decode(buf *DecodeBuf) (B, bool, error) {
	var zero B
	item, ok, err := d.inner.Decode(buf)
	if err != nil || !ok {
		return zero, false, err
	}
	mapped, err := d.fn(item)
	if err != nil {
		return zero, false, err
	}
	return mapped, true, nil
}

func (d *TryMapDecoder[A, B]) HasTerminated() bool           { return d.inner.HasTerminated() }
func (d *TryMapDecoder[A, B]) IsIdle() bool                  { return d.inner.IsIdle() }
func (d *TryMapDecoder[A, B]) RequiringBytesHint() ByteCount { return d.inner.RequiringBytesHint() }

// AssertDecoder rejects decoded items that fail a predicate with
// ErrInvalidInput. It keeps no state beyond delegation.
type AssertDecoder[T any] struct {
	inner Decoder[T]
	pred  func(T) bool
}

// NewAssertDecoder wraps d so that items failing pred are rejected.
func NewAssertDecoder[T any](d Decoder[T], pred func(T) bool) *AssertDecoder[T] {
	return &AssertDecoder[T]{inner: d, pred: pred}
}

func (d *AssertDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	var zero T
	item, ok, err := d.inner.Decode(buf)
	if err != nil || !ok {
		return zero, false, err
	}
	if !d.pred(item) {
		return zero, false, fmt.Errorf("%w: decoded item rejected by assertion", ErrInvalidInput)
	}
	return item, true, nil
}

func (d *AssertDecoder[T]) HasTerminated() bool           { return d.inner.HasTerminated() }
func (d *AssertDecoder[T]) IsIdle() bool                  { return d.inner.IsIdle() }
func (d *AssertDecoder[T]) RequiringBytesHint() ByteCount { return d.inner.RequiringBytesHint() }

// MapErrDecoder rewrites errors from the inner decoder. Only the error
// channel changes; the success path is untouched.
type MapErrDecoder[T any] struct {
	inner Decoder[T]
	fn    func(error) error
}

// NewMapErrDecoder wraps d so that every error it reports is passed
// through fn.
func NewMapErrDecoder[T any](d Decoder[T], fn func(error) error) *MapErrDecoder[T] {
	return &MapErrDecoder[T]{inner: d, fn: fn}
}

func (d *MapErrDecoder[T]) Decode(buf *DecodeBuf) (T, bool, error) {
	item, ok, err := d.inner.Decode(buf)
	if err != nil {
		err = d.fn(err)
	}
	return item, ok, err
}

func (d *MapErrDecoder[T]) HasTerminated() bool           { return d.inner.HasTerminated() }
func (d *MapErrDecoder[T]) IsIdle() bool                  { return d.inner.IsIdle() }
func (d *MapErrDecoder[T]) RequiringBytesHint() ByteCount { return d.inner.RequiringBytesHint() }

// MapErrEncoder rewrites errors from the inner encoder.
type MapErrEncoder[T any] struct {
	inner Encoder[T]
	fn    func(error) error
}

// NewMapErrEncoder wraps e so that every error it reports is passed
// through fn.
func NewMapErrEncoder[T any](e Encoder[T], fn func(error) error) *MapErrEncoder[T] {
	return &MapErrEncoder[T]{inner: e, fn: fn}
}

func (e *MapErrEncoder[T]) StartEncoding(item T) error {
	if err := e.inner.StartEncoding(item); err != nil {
		return e.fn(err)
	}
	return nil
}

func (e *MapErrEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	n, err := e.inner.Encode(buf, eos)
	if err != nil {
		err = e.fn(err)
	}
	return n, err
}

func (e *MapErrEncoder[T]) IsIdle() bool                  { return e.inner.IsIdle() }
func (e *MapErrEncoder[T]) RequiringBytesHint() ByteCount { return e.inner.RequiringBytesHint() }

// MapFromEncoder converts items into ones suited to the inner encoder by
// calling fn at StartEncoding time.
type MapFromEncoder[A, B any] struct {
	inner Encoder[B]
	fn    func(A) B
}

// NewMapFromEncoder wraps e so that it accepts items of type A, converted
// by fn before encoding.
func NewMapFromEncoder[A, B any](e Encoder[B], fn func(A) B) *MapFromEncoder[A, B] {
	return &MapFromEncoder[A, B]{inner: e, fn: fn}
}

func (e *MapFromEncoder[A, B]) StartEncoding(item A) error {
	return e.inner.StartEncoding(e.fn(item))
}

func (e *MapFromEncoder[A, B]) Encode(buf []byte, eos EOS) (int, error) {
	return e.inner.Encode(buf, eos)
}

func (e *MapFromEncoder[A, B]) IsIdle() bool                  { return e.inner.IsIdle() }
func (e *MapFromEncoder[A, B]) RequiringBytesHint() ByteCount { return e.inner.RequiringBytesHint() }

// TryMapFromEncoder converts items with a fallible function. A failed
// conversion surfaces at StartEncoding, before any byte is produced.
type TryMapFromEncoder[A, B any] struct {
	inner Encoder[B]
	fn    func(A) (B, error)
}

// NewTryMapFromEncoder wraps e so that it accepts items of type A,
// converted by fn before encoding.
func NewTryMapFromEncoder[A, B any](e Encoder[B], fn func(A) (B, error)) *TryMapFromEncoder[A, B] {
	return &TryMapFromEncoder[A, B]{inner: e, fn: fn}
}

func (e *TryMapFromEncoder[A, B]) StartEncoding(item A) error {
	mapped, err := e.fn(item)
	if err != nil {
		return err
	}
	return e.inner.StartEncoding(mapped)
}

func (e *TryMapFromEncoder[A, B]) Encode(buf []byte, eos EOS) (int, error) {
	return e.inner.Encode(buf, eos)
}

func (e *TryMapFromEncoder[A, B]) IsIdle() bool { return e.inner.IsIdle() }
func (e *TryMapFromEncoder[A, B]) RequiringBytesHint() ByteCount {
	return e.inner.RequiringBytesHint()
}

package bytecodec

import "fmt"

// PaddingEncoder fills every byte of output requested after the inner
// item completes with a fixed byte, until end of stream. Idle here means
// the padding has reached end of stream, not that the inner encoder is
// done, so the output stream must be bounded; padding an unbounded
// stream fails with ErrOther.
type PaddingEncoder[T any] struct {
	inner      Encoder[T]
	pad        byte
	eosReached bool
}

// NewPaddingEncoder pads the output of e with pad up to end of stream.
func NewPaddingEncoder[T any](e Encoder[T], pad byte) *PaddingEncoder[T] {
	return &PaddingEncoder[T]{inner: e, pad: pad, eosReached: true}
}

func (e *PaddingEncoder[T]) StartEncoding(item T) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: padding has not reached end of stream", ErrEncoderFull)
	}
	if err := e.inner.StartEncoding(item); err != nil {
		return err
	}
	e.eosReached = false
	return nil
}

func (e *PaddingEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	if !e.inner.IsIdle() {
		return e.inner.Encode(buf, eos)
	}
	if !eos.Remaining().IsFinite() {
		return 0, fmt.Errorf("%w: padding cannot reach the end of an unbounded output stream", ErrOther)
	}
	for i := range buf {
		buf[i] = e.pad
	}
	e.eosReached = eos.Reached()
	return len(buf), nil
}

func (e *PaddingEncoder[T]) IsIdle() bool { return e.eosReached }

func (e *PaddingEncoder[T]) RequiringBytesHint() ByteCount { return UnknownBytes() }

// WithPrefixEncoder emits a prefix item before the body bytes. The prefix
// item is computed once, synchronously, at StartEncoding time from a
// snapshot of the freshly started body encoder, typically its exact
// remaining byte count, and is flushed in full before any body byte.
type WithPrefixEncoder[T, P any, E Encoder[T]] struct {
	body   E
	prefix Encoder[P]
	fn     func(E) P
}

// NewWithPrefixEncoder prefixes body's output with an item derived from the
// body encoder's state by fn.
func NewWithPrefixEncoder[T, P any, E Encoder[T]](body E, prefix Encoder[P], fn func(E) P) *WithPrefixEncoder[T, P, E] {
	return &WithPrefixEncoder[T, P, E]{body: body, prefix: prefix, fn: fn}
}

func (e *WithPrefixEncoder[T, P, E]) StartEncoding(item T) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: prefixed item still in progress", ErrEncoderFull)
	}
	if err := e.body.StartEncoding(item); err != nil {
		return err
	}
	return e.prefix.StartEncoding(e.fn(e.body))
}

func (e *WithPrefixEncoder[T, P, E]) Encode(buf []byte, eos EOS) (int, error) {
	var written int
	if !e.prefix.IsIdle() {
		innerEOS := eos
		if h, ok := e.body.RequiringBytesHint().U64(); ok {
			innerEOS = eos.Back(h)
		} else if !e.body.IsIdle() {
			innerEOS = EOS{remaining: UnknownBytes()}
		}
		n, err := e.prefix.Encode(buf, innerEOS)
		written += n
		if err != nil {
			return written, err
		}
		if !e.prefix.IsIdle() {
			return written, nil
		}
	}
	if !e.body.IsIdle() {
		n, err := e.body.Encode(buf[written:], eos)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (e *WithPrefixEncoder[T, P, E]) IsIdle() bool {
	return e.prefix.IsIdle() && e.body.IsIdle()
}

func (e *WithPrefixEncoder[T, P, E]) RequiringBytesHint() ByteCount {
	a, aok := e.prefix.RequiringBytesHint().U64()
	b, bok := e.body.RequiringBytesHint().U64()
	switch {
	case aok && bok:
		return FiniteBytes(a + b)
	case aok:
		return FiniteBytes(a)
	case bok:
		return FiniteBytes(b)
	default:
		return UnknownBytes()
	}
}

// PreEncodeEncoder serializes the whole item into an in-memory buffer at
// StartEncoding time and streams that buffer out on subsequent Encode
// calls. This turns an arbitrarily interleaved encoder into an exact-bytes
// one; errors the inner encoder would have reported later surface at
// StartEncoding instead.
type PreEncodeEncoder[T any] struct {
	inner Encoder[T]
	pre   BytesEncoder
}

// NewPreEncodeEncoder eagerly serializes e's items at StartEncoding time.
func NewPreEncodeEncoder[T any](e Encoder[T]) *PreEncodeEncoder[T] {
	return &PreEncodeEncoder[T]{inner: e}
}

func (e *PreEncodeEncoder[T]) StartEncoding(item T) error {
	data, err := EncodeToBytes(e.inner, item)
	if err != nil {
		return err
	}
	return e.pre.StartEncoding(data)
}

func (e *PreEncodeEncoder[T]) Encode(buf []byte, eos EOS) (int, error) {
	return e.pre.Encode(buf, eos)
}

func (e *PreEncodeEncoder[T]) IsIdle() bool { return e.pre.IsIdle() }

func (e *PreEncodeEncoder[T]) RequiringBytesHint() ByteCount {
	return FiniteBytes(e.pre.RequiringBytes())
}

// RequiringBytes implements ExactBytesEncoder.
func (e *PreEncodeEncoder[T]) RequiringBytes() uint64 { return e.pre.RequiringBytes() }

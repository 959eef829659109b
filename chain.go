package bytecodec

import "fmt"

// AndThenDecoder decodes one item, builds a second decoder from it, and
// yields that decoder's item. After the second item completes it resets to
// awaiting the first, so the pair can be decoded repeatedly.
type AndThenDecoder[A, B any] struct {
	first  Decoder[A]
	second Decoder[B] // nil until the first item has been decoded
	fn     func(A) Decoder[B]
}

// NewAndThenDecoder chains d with the decoders produced by fn.
func NewAndThenDecoder[A, B any](d Decoder[A], fn func(A) Decoder[B]) *AndThenDecoder[A, B] {
	return &AndThenDecoder[A, B]{first: d, fn: fn}
}

func (d *AndThenDecoder[A, B]) Decode(buf *DecodeBuf) (B, bool, error) {
	var zero B
	for {
		if d.second != nil {
			item, ok, err := d.second.Decode(buf)
			if err != nil || !ok {
				return zero, false, err
			}
			d.second = nil
			return item, true, nil
		}
		a, ok, err := d.first.Decode(buf)
		if err != nil || !ok {
			return zero, false, err
		}
		d.second = d.fn(a)
	}
}

func (d *AndThenDecoder[A, B]) HasTerminated() bool {
	if d.second != nil {
		return d.second.HasTerminated()
	}
	return d.first.HasTerminated()
}

func (d *AndThenDecoder[A, B]) IsIdle() bool {
	return d.second == nil && d.first.IsIdle()
}

func (d *AndThenDecoder[A, B]) RequiringBytesHint() ByteCount {
	if d.second != nil {
		return d.second.RequiringBytesHint()
	}
	return d.first.RequiringBytesHint()
}

// Pair is the item type produced and consumed by chained codecs.
type Pair[A, B any] struct {
	First  A
	Second B
}

// ChainDecoder pairs two decoders into a single item flow: the first item
// is decoded in full, then the second, and the two are yielded together.
type ChainDecoder[A, B any] struct {
	first   Decoder[A]
	second  Decoder[B]
	partial *A
}

// NewChainDecoder pairs d0 and d1 into a decoder of Pair items.
func NewChainDecoder[A, B any](d0 Decoder[A], d1 Decoder[B]) *ChainDecoder[A, B] {
	return &ChainDecoder[A, B]{first: d0, second: d1}
}

func (d *ChainDecoder[A, B]) Decode(buf *DecodeBuf) (Pair[A, B], bool, error) {
	var zero Pair[A, B]
	if d.partial == nil {
		a, ok, err := d.first.Decode(buf)
		if err != nil || !ok {
			return zero, false, err
		}
		d.partial = &a
	}
	b, ok, err := d.second.Decode(buf)
	if err != nil || !ok {
		return zero, false, err
	}
	item := Pair[A, B]{First: *d.partial, Second: b}
	d.partial = nil
	return item, true, nil
}

func (d *ChainDecoder[A, B]) HasTerminated() bool {
	if d.partial != nil {
		return d.second.HasTerminated()
	}
	return d.first.HasTerminated()
}

func (d *ChainDecoder[A, B]) IsIdle() bool {
	return d.partial == nil && d.first.IsIdle() && d.second.IsIdle()
}

func (d *ChainDecoder[A, B]) RequiringBytesHint() ByteCount {
	if d.partial != nil {
		return d.second.RequiringBytesHint()
	}
	return d.first.RequiringBytesHint()
}

// ChainEncoder pairs two encoders into a single item flow. The first half
// of each pair is flushed in full before any byte of the second.
type ChainEncoder[A, B any] struct {
	first  Encoder[A]
	second Encoder[B]
}

// NewChainEncoder pairs e0 and e1 into an encoder of Pair items.
func NewChainEncoder[A, B any](e0 Encoder[A], e1 Encoder[B]) *ChainEncoder[A, B] {
	return &ChainEncoder[A, B]{first: e0, second: e1}
}

func (e *ChainEncoder[A, B]) StartEncoding(item Pair[A, B]) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: chained pair still in progress", ErrEncoderFull)
	}
	if err := e.first.StartEncoding(item.First); err != nil {
		return err
	}
	return e.second.StartEncoding(item.Second)
}

func (e *ChainEncoder[A, B]) Encode(buf []byte, eos EOS) (int, error) {
	var written int
	if !e.first.IsIdle() {
		// The bytes of the second half still have to fit after ours, so the
		// first encoder must not treat the end of this buffer as its own.
		innerEOS := eos
		if h, ok := e.second.RequiringBytesHint().U64(); ok {
			innerEOS = eos.Back(h)
		} else if !e.second.IsIdle() {
			innerEOS = EOS{remaining: UnknownBytes()}
		}
		n, err := e.first.Encode(buf, innerEOS)
		written += n
		if err != nil {
			return written, err
		}
		if !e.first.IsIdle() {
			return written, nil
		}
	}
	if !e.second.IsIdle() {
		n, err := e.second.Encode(buf[written:], eos)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (e *ChainEncoder[A, B]) IsIdle() bool {
	return e.first.IsIdle() && e.second.IsIdle()
}

func (e *ChainEncoder[A, B]) RequiringBytesHint() ByteCount {
	a, aok := e.first.RequiringBytesHint().U64()
	b, bok := e.second.RequiringBytesHint().U64()
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

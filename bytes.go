package bytecodec

import (
	"fmt"
	"unicode/utf8"
)

// BytesEncoder writes a byte slice verbatim. Its total output length is
// known the moment an item is accepted, so it is an exact-bytes encoder.
type BytesEncoder struct {
	b   []byte
	off int
}

var _ ExactBytesEncoder[[]byte] = (*BytesEncoder)(nil)

// NewBytesEncoder returns an idle byte slice encoder.
func NewBytesEncoder() *BytesEncoder { return &BytesEncoder{} }

func (e *BytesEncoder) StartEncoding(item []byte) error {
	if !e.IsIdle() {
		return fmt.Errorf("%w: %d bytes unwritten", ErrEncoderFull, e.RequiringBytes())
	}
	e.b = item
	e.off = 0
	return nil
}

func (e *BytesEncoder) Encode(buf []byte, eos EOS) (int, error) {
	if rem := len(e.b) - e.off; rem > len(buf) && eos.Reached() {
		return 0, fmt.Errorf("%w: %d bytes of output remain but only %d can still be written",
			ErrUnexpectedEOS, rem, len(buf))
	}
	n := copy(buf, e.b[e.off:])
	e.off += n
	return n, nil
}

func (e *BytesEncoder) IsIdle() bool { return e.off == len(e.b) }

func (e *BytesEncoder) RequiringBytesHint() ByteCount { return FiniteBytes(e.RequiringBytes()) }

func (e *BytesEncoder) RequiringBytes() uint64 { return uint64(len(e.b) - e.off) }

// BytesDecoder accumulates every offered byte and yields them all as one
// item when the stream ends. Framed with LengthDecoder it reads exactly one
// frame per item.
type BytesDecoder struct {
	acc []byte
}

var _ Decoder[[]byte] = (*BytesDecoder)(nil)

// NewBytesDecoder returns a decoder that collects bytes until end of
// stream.
func NewBytesDecoder() *BytesDecoder { return &BytesDecoder{} }

func (d *BytesDecoder) Decode(buf *DecodeBuf) ([]byte, bool, error) {
	d.acc = append(d.acc, buf.Bytes()...)
	buf.ConsumeAll()
	if !buf.IsEOS() {
		return nil, false, nil
	}
	item := d.acc
	d.acc = nil
	return item, true, nil
}

func (d *BytesDecoder) HasTerminated() bool           { return false }
func (d *BytesDecoder) IsIdle() bool                  { return len(d.acc) == 0 }
func (d *BytesDecoder) RequiringBytesHint() ByteCount { return UnknownBytes() }

// Utf8Encoder writes the bytes of a string verbatim.
type Utf8Encoder struct {
	raw BytesEncoder
}

var _ ExactBytesEncoder[string] = (*Utf8Encoder)(nil)

// NewUtf8Encoder returns an idle string encoder.
func NewUtf8Encoder() *Utf8Encoder { return &Utf8Encoder{} }

func (e *Utf8Encoder) StartEncoding(item string) error {
	return e.raw.StartEncoding([]byte(item))
}

func (e *Utf8Encoder) Encode(buf []byte, eos EOS) (int, error) {
	return e.raw.Encode(buf, eos)
}

func (e *Utf8Encoder) IsIdle() bool                  { return e.raw.IsIdle() }
func (e *Utf8Encoder) RequiringBytesHint() ByteCount { return e.raw.RequiringBytesHint() }
func (e *Utf8Encoder) RequiringBytes() uint64        { return e.raw.RequiringBytes() }

// Utf8Decoder accumulates bytes until end of stream and yields them as a
// UTF-8 string, rejecting invalid sequences with ErrInvalidInput.
type Utf8Decoder struct {
	raw BytesDecoder
}

var _ Decoder[string] = (*Utf8Decoder)(nil)

// NewUtf8Decoder returns a decoder that collects a UTF-8 string until end
// of stream.
func NewUtf8Decoder() *Utf8Decoder { return &Utf8Decoder{} }

func (d *Utf8Decoder) Decode(buf *DecodeBuf) (string, bool, error) {
	b, ok, err := d.raw.Decode(buf)
	if err != nil || !ok {
		return "", false, err
	}
	if !utf8.Valid(b) {
		return "", false, fmt.Errorf("%w: not a valid UTF-8 sequence", ErrInvalidInput)
	}
	return string(b), true, nil
}

func (d *Utf8Decoder) HasTerminated() bool           { return d.raw.HasTerminated() }
func (d *Utf8Decoder) IsIdle() bool                  { return d.raw.IsIdle() }
func (d *Utf8Decoder) RequiringBytesHint() ByteCount { return d.raw.RequiringBytesHint() }

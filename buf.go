package bytecodec

import (
	"fmt"
	"io"
)

// DecodeBuf is a borrowed, non-owning view over the bytes a driver
// currently has on hand, plus a hint about how many more bytes will follow.
// The driver creates a fresh DecodeBuf for each Decode call and discards it
// afterwards; a decoder must never retain one.
type DecodeBuf struct {
	b         []byte
	offset    int
	remaining ByteCount
}

// NewDecodeBuf returns a buffer over b with an unknown number of bytes
// still to come.
func NewDecodeBuf(b []byte) DecodeBuf {
	return DecodeBuf{b: b, remaining: UnknownBytes()}
}

// NewDecodeBufRemaining returns a buffer over b with exactly remaining
// bytes arriving after it. A remaining count of zero marks end of stream.
func NewDecodeBufRemaining(b []byte, remaining uint64) DecodeBuf {
	return DecodeBuf{b: b, remaining: FiniteBytes(remaining)}
}

// NewEOSBuf returns an empty buffer that marks end of stream.
func NewEOSBuf() DecodeBuf {
	return NewDecodeBufRemaining(nil, 0)
}

// Bytes returns the unread portion of the window.
func (b *DecodeBuf) Bytes() []byte { return b.b[b.offset:] }

// Len returns the number of unread bytes in the window.
func (b *DecodeBuf) Len() int { return len(b.b) - b.offset }

// IsEmpty reports whether the window has been fully consumed.
func (b *DecodeBuf) IsEmpty() bool { return b.offset == len(b.b) }

// RemainingBytes returns the count of bytes that will still arrive after
// this window.
func (b *DecodeBuf) RemainingBytes() ByteCount { return b.remaining }

// IsEOS reports whether no bytes will ever arrive after this window.
func (b *DecodeBuf) IsEOS() bool {
	n, ok := b.remaining.U64()
	return ok && n == 0
}

// Consume advances the cursor by n bytes. Consuming past the available
// bytes is an input error, not a fault.
func (b *DecodeBuf) Consume(n int) error {
	if n < 0 || n > b.Len() {
		return fmt.Errorf("%w: cannot consume %d of %d available bytes", ErrInvalidInput, n, b.Len())
	}
	b.offset += n
	return nil
}

// ConsumeAll discards the rest of the window.
func (b *DecodeBuf) ConsumeAll() { b.offset = len(b.b) }

// Read implements io.Reader over the unread window.
func (b *DecodeBuf) Read(p []byte) (int, error) {
	if b.IsEmpty() && len(p) > 0 {
		return 0, io.EOF
	}
	n := copy(p, b.Bytes())
	b.offset += n
	return n, nil
}

// view returns a sub-window exposing at most n unread bytes under its own
// remaining-bytes hint. Framing combinators use it to keep an inner decoder
// from seeing past its frame. Consumption from the view is reflected into
// the parent with absorb.
func (b *DecodeBuf) view(n int, remaining ByteCount) DecodeBuf {
	return DecodeBuf{b: b.b[b.offset : b.offset+n], remaining: remaining}
}

// absorb advances the parent cursor by whatever a view consumed.
func (b *DecodeBuf) absorb(sub *DecodeBuf) { b.offset += sub.offset }

// EOS tells an encoder whether the caller will supply further output
// buffers after the current Encode call. It carries the count of bytes
// still writable after the current buffer, so that an outer combinator can
// reserve room for a suffix of its own with Back.
type EOS struct {
	remaining ByteCount
}

// NewEOS returns an EOS marker. With reached true the current buffer is the
// last one the encoder will ever see.
func NewEOS(reached bool) EOS {
	if reached {
		return EOS{remaining: FiniteBytes(0)}
	}
	return EOS{remaining: UnknownBytes()}
}

// Reached reports whether no further output buffer will be supplied.
func (e EOS) Reached() bool {
	n, ok := e.remaining.U64()
	return ok && n == 0
}

// Back reserves n trailing bytes for data written after the current
// encoder's, pushing its end of stream that much further away.
func (e EOS) Back(n uint64) EOS {
	return EOS{remaining: e.remaining.Add(n)}
}

// Remaining returns the count of bytes writable after the current buffer.
func (e EOS) Remaining() ByteCount { return e.remaining }

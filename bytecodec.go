// Package bytecodec provides composable state machines for incremental
// binary encoding and decoding.
//
// A Decoder consumes byte windows handed to it by a driver and assembles
// items across calls without ever buffering the whole message; an Encoder
// produces its output piecewise into caller-supplied buffers without
// blocking. Small primitive codecs (fixed-width numbers, varints, raw
// bytes, UTF-8 strings) are combined through generic combinators for
// framing, repetition, mapping, prefixing and padding that preserve the
// partial-consumption and byte-accounting guarantees through arbitrary
// nesting, so a composed codec behaves identically no matter how the input
// is split across buffer boundaries.
package bytecodec

// Decoder is the incremental decoding contract.
//
// A decoder is always in exactly one of three states: idle (no item
// pending), in progress (an item is partially assembled), or terminated
// (it can never produce another item). Idle and terminated are each
// mutually exclusive with in progress.
type Decoder[T any] interface {
	// Decode consumes bytes from buf and reports (item, true, nil) once a
	// complete item has been assembled from the bytes consumed across this
	// and prior calls.
	//
	// When the offered bytes are not enough to finish the next item, Decode
	// reports (zero, false, nil) and must have consumed every byte in buf;
	// leaving unconsumed leftovers behind on that path is a contract
	// violation. Once all decodable items are exhausted Decode keeps
	// reporting (zero, false, nil); HasTerminated tells the two apart.
	Decode(buf *DecodeBuf) (T, bool, error)

	// HasTerminated reports whether the decoder is permanently unable to
	// produce another item.
	HasTerminated() bool

	// IsIdle reports whether no partially decoded item is pending. Idle is
	// the only safe point for reconfiguration such as
	// LengthDecoder.SetExpectedBytes.
	IsIdle() bool

	// RequiringBytesHint returns a lower bound on the bytes needed before
	// the next Decode call could possibly produce an item, or Unknown when
	// no bound can be given (null-terminated data, for example).
	//
	// Finite(0) is overloaded: either an already assembled item will be
	// returned by the next call without consuming bytes, or decoding is
	// finished for good. Callers must make the second call to HasTerminated
	// to disambiguate; the hint alone is not enough.
	RequiringBytesHint() ByteCount
}

// Encoder is the incremental encoding contract.
type Encoder[T any] interface {
	// StartEncoding accepts a new item to encode. It fails with
	// ErrEncoderFull while a previous item is still in progress.
	StartEncoding(item T) error

	// Encode writes up to len(buf) bytes of the current item into buf and
	// returns the number written. It must make forward progress whenever an
	// item is in progress and space is available. It fails with
	// ErrUnexpectedEOS when eos says no further buffer will be supplied but
	// the remaining output does not fit, and with ErrInvalidInput when the
	// item cannot legally finish in the bytes allotted.
	Encode(buf []byte, eos EOS) (int, error)

	// RequiringBytesHint returns a lower bound on the bytes still needed to
	// finish the current item, or Unknown when open ended (unbounded
	// padding, for example).
	RequiringBytesHint() ByteCount

	// IsIdle reports whether no item is mid-encoding, i.e. StartEncoding
	// would succeed immediately.
	IsIdle() bool
}

// ExactBytesEncoder refines Encoder for encoders whose total output length
// for the current item is known exactly before any byte is written. Framing
// combinators rely on this to allocate fixed-size output regions.
type ExactBytesEncoder[T any] interface {
	Encoder[T]

	// RequiringBytes returns the exact number of bytes remaining for the
	// current item. Zero when idle.
	RequiringBytes() uint64
}

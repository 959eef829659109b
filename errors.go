package bytecodec

import "errors"

// The closed error taxonomy shared by every codec and combinator. Errors
// are matched with errors.Is; call sites add context by wrapping a sentinel
// with fmt.Errorf("%w: ...").
var (
	// ErrUnexpectedEOS indicates the stream ended before a structurally
	// required number of bytes arrived (decode), or that an encoder was
	// denied the output space it still needs after the caller signalled
	// end of stream (encode).
	ErrUnexpectedEOS = errors.New("bytecodec: unexpected end of stream")

	// ErrInvalidInput indicates bytes or items that violate a format or
	// semantic constraint, including per-combinator byte-budget violations.
	ErrInvalidInput = errors.New("bytecodec: invalid input")

	// ErrEncoderFull indicates StartEncoding was called while a previous
	// item was still being encoded.
	ErrEncoderFull = errors.New("bytecodec: encoder already holds an item in progress")

	// ErrDecoderTerminated indicates Decode was called after the decoder
	// permanently terminated.
	ErrDecoderTerminated = errors.New("bytecodec: decode called after termination")

	// ErrOther indicates programmer misuse or an internal invariant
	// violation, such as reconfiguring a framing length mid-item.
	ErrOther = errors.New("bytecodec: codec invariant violated")
)

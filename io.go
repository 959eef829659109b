package bytecodec

import (
	"fmt"
	"io"
	"sync"
)

const CHUNK_SIZE = 32 * 1024

// bufPool reuses driver chunks. 32KB matches the common io.Copy default.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, CHUNK_SIZE)
		return &b
	},
}

// EncodeToBytes runs an encoder to completion in memory and returns its
// output. The encoder must reach idle without an end-of-stream signal; one
// that stalls waiting for it (unframed padding, say) fails with ErrOther
// instead of looping.
func EncodeToBytes[T any](e Encoder[T], item T) ([]byte, error) {
	if err := e.StartEncoding(item); err != nil {
		return nil, err
	}
	bp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bp)
	chunk := *bp

	var out []byte
	for !e.IsIdle() {
		n, err := e.Encode(chunk, NewEOS(false))
		out = append(out, chunk[:n]...)
		if err != nil {
			return nil, err
		}
		if n == 0 && !e.IsIdle() {
			return nil, fmt.Errorf("%w: encoder made no progress without an end-of-stream signal", ErrOther)
		}
	}
	return out, nil
}

// EncodeToWriter runs an encoder to completion against w and returns the
// number of bytes written.
func EncodeToWriter[T any](e Encoder[T], item T, w io.Writer) (int64, error) {
	if err := e.StartEncoding(item); err != nil {
		return 0, err
	}
	bp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bp)
	chunk := *bp

	var total int64
	for !e.IsIdle() {
		n, err := e.Encode(chunk, NewEOS(false))
		if n > 0 {
			written, werr := w.Write(chunk[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
			if written < n {
				return total, io.ErrShortWrite
			}
		}
		if err != nil {
			return total, err
		}
		if n == 0 && !e.IsIdle() {
			return total, fmt.Errorf("%w: encoder made no progress without an end-of-stream signal", ErrOther)
		}
	}
	return total, nil
}

// EncodeAll drives a started encoder against a fixed output buffer with the
// end-of-stream signal raised, returning the number of bytes written. The
// caller is expected to have called StartEncoding first.
func EncodeAll[T any](e Encoder[T], buf []byte) (int, error) {
	var off int
	for !e.IsIdle() {
		n, err := e.Encode(buf[off:], NewEOS(true))
		off += n
		if err != nil {
			return off, err
		}
		if n == 0 && !e.IsIdle() {
			return off, fmt.Errorf("%w: encoder needs more than the %d bytes supplied", ErrUnexpectedEOS, len(buf))
		}
	}
	return off, nil
}

// DecodeFromBytes decodes a single item from data, treating it as the
// whole remaining stream.
func DecodeFromBytes[T any](d Decoder[T], data []byte) (T, error) {
	var zero T
	buf := NewDecodeBufRemaining(data, 0)
	item, ok, err := d.Decode(&buf)
	if err != nil {
		return zero, err
	}
	if ok {
		return item, nil
	}
	// Give decoders that buffered a finished item one empty call to yield it.
	eos := NewEOSBuf()
	item, ok, err = d.Decode(&eos)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("%w: stream ended before an item was decoded", ErrUnexpectedEOS)
	}
	return item, nil
}

// DecodeFromReader reads r in chunks and feeds them to d until an item is
// produced.
func DecodeFromReader[T any](d Decoder[T], r io.Reader) (T, error) {
	var zero T
	bp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bp)
	chunk := *bp

	for {
		n, rerr := r.Read(chunk)
		var buf DecodeBuf
		if rerr == io.EOF {
			buf = NewDecodeBufRemaining(chunk[:n], 0)
		} else {
			buf = NewDecodeBuf(chunk[:n])
		}
		for {
			item, ok, err := d.Decode(&buf)
			if err != nil {
				return zero, err
			}
			if ok {
				return item, nil
			}
			if buf.IsEmpty() {
				break
			}
		}
		if rerr == io.EOF {
			return zero, fmt.Errorf("%w: stream ended before an item was decoded", ErrUnexpectedEOS)
		}
		if rerr != nil {
			return zero, rerr
		}
	}
}

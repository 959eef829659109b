package bytecodec

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeToWriter(t *testing.T) {
	var out bytes.Buffer
	e := NewLengthEncoder[string](NewUtf8Encoder(), 5)

	n, err := EncodeToWriter[string](e, "hello", &out)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	assert.Equal(t, "hello", out.String())
}

func TestEncodeToWriterError(t *testing.T) {
	boom := errors.New("boom")
	e := NewLengthEncoder[string](NewUtf8Encoder(), 5)

	_, err := EncodeToWriter[string](e, "hello", errWriter{err: boom})
	assert.ErrorIs(t, err, boom)
}

type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestDecodeFromReader(t *testing.T) {
	// One byte per Read exercises every chunk boundary.
	r := iotest.OneByteReader(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))

	item, err := DecodeFromReader[uint32](NewFixedDecoder[uint32](), r)
	require.NoError(t, err)
	assert.EqualValues(t, 0xdeadbeef, item)
}

func TestDecodeFromReaderTruncated(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2})
	_, err := DecodeFromReader[uint32](NewFixedDecoder[uint32](), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOS)
}

func TestDecodeFromBytesInsufficient(t *testing.T) {
	_, err := DecodeFromBytes[uint32](NewFixedDecoder[uint32](), []byte{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOS)
}

func TestEncodeAllShortBuffer(t *testing.T) {
	e := NewUtf8Encoder()
	require.NoError(t, e.StartEncoding("hello"))

	_, err := EncodeAll[string](e, make([]byte, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOS)
}

func TestEncodeToBytesUnbounded(t *testing.T) {
	// Padding never reaches idle without a bounded stream, so running it
	// to completion in memory must fail instead of growing forever.
	e := NewPaddingEncoder[uint8](NewFixedEncoder[uint8](), 0xff)
	_, err := EncodeToBytes[uint8](e, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOther)
}

func TestDecodeFromBytesBufferedItem(t *testing.T) {
	// A decoder that only yields at end of stream still produces its item
	// from a plain byte slice.
	item, err := DecodeFromBytes[string](NewUtf8Decoder(), []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", item)
}

package bytecodec

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBufConsume(t *testing.T) {
	buf := NewDecodeBuf([]byte{1, 2, 3})
	require.NoError(t, buf.Consume(2))
	assert.Equal(t, []byte{3}, buf.Bytes())
	assert.Equal(t, 1, buf.Len())

	err := buf.Consume(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	buf.ConsumeAll()
	assert.True(t, buf.IsEmpty())
}

func TestDecodeBufRemaining(t *testing.T) {
	unknown := NewDecodeBuf(nil)
	assert.True(t, unknown.RemainingBytes().IsUnknown())
	assert.False(t, unknown.IsEOS())

	eos := NewEOSBuf()
	assert.True(t, eos.IsEOS())
	assert.True(t, eos.IsEmpty())

	more := NewDecodeBufRemaining([]byte{1}, 5)
	assert.False(t, more.IsEOS())
	n, ok := more.RemainingBytes().U64()
	require.True(t, ok)
	assert.EqualValues(t, 5, n)
}

func TestDecodeBufRead(t *testing.T) {
	buf := NewDecodeBufRemaining([]byte("abcd"), 0)
	p := make([]byte, 3)

	n, err := buf.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("abc"), p[:n])

	n, err = buf.Read(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), p[:n])

	_, err = buf.Read(p)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeBufView(t *testing.T) {
	buf := NewDecodeBufRemaining([]byte("abcdef"), 0)

	sub := buf.view(3, FiniteBytes(3))
	assert.Equal(t, 3, sub.Len())
	assert.False(t, sub.IsEOS())
	require.NoError(t, sub.Consume(2))

	buf.absorb(&sub)
	assert.Equal(t, []byte("cdef"), buf.Bytes())
}

func TestEOSMarker(t *testing.T) {
	assert.True(t, NewEOS(true).Reached())
	assert.False(t, NewEOS(false).Reached())

	// Reserving trailing bytes pushes the end of stream away.
	backed := NewEOS(true).Back(4)
	assert.False(t, backed.Reached())
	n, ok := backed.Remaining().U64()
	require.True(t, ok)
	assert.EqualValues(t, 4, n)

	assert.True(t, NewEOS(true).Back(0).Reached())
	assert.False(t, NewEOS(false).Back(4).Reached())
}

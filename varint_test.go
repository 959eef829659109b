package bytecodec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 32, 1 << 63, math.MaxUint64}
	for _, v := range values {
		data, err := EncodeToBytes[uint64](NewVarintEncoder[uint64](), v)
		require.NoError(t, err)

		got, err := DecodeFromBytes[uint64](NewVarintDecoder[uint64](), data)
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestVarintEncoding(t *testing.T) {
	data, err := EncodeToBytes[uint64](NewVarintEncoder[uint64](), 300)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xac, 0x02}, data)
}

func TestVarintChunked(t *testing.T) {
	d := NewVarintDecoder[uint64]()

	first := NewDecodeBuf([]byte{0xac})
	_, ok, err := d.Decode(&first)
	require.NoError(t, err)
	require.False(t, ok)
	assert.False(t, d.IsIdle())

	second := NewDecodeBuf([]byte{0x02})
	item, ok, err := d.Decode(&second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 300, item)
	assert.True(t, d.IsIdle())
}

func TestVarintValueOverflow(t *testing.T) {
	// 300 does not fit in a uint8.
	d := NewVarintDecoder[uint8]()
	buf := NewDecodeBuf([]byte{0xac, 0x02})
	_, _, err := d.Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVarint64BitOverflow(t *testing.T) {
	d := NewVarintDecoder[uint64]()
	buf := NewDecodeBuf(append(bytes.Repeat([]byte{0x80}, 10), 0x01))
	_, _, err := d.Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVarintTruncated(t *testing.T) {
	d := NewVarintDecoder[uint64]()
	buf := NewDecodeBufRemaining([]byte{0x80}, 0)
	_, _, err := d.Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOS)
}

func TestVarintStream(t *testing.T) {
	// Back to back varints decode from one window without separators.
	d := NewVarintDecoder[uint64]()
	buf := NewDecodeBufRemaining([]byte{0x00, 0x7f, 0xac, 0x02}, 0)

	var got []uint64
	for !buf.IsEmpty() {
		item, ok, err := d.Decode(&buf)
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, item)
	}
	assert.Equal(t, []uint64{0, 127, 300}, got)
}

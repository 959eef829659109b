package bytecodec

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHeader struct {
	Version uint8
	Flags   uint8
	Length  uint16
	Crc     uint32
}

func TestFixedRoundTrip(t *testing.T) {
	want := testHeader{Version: 1, Flags: 2, Length: 0x0304, Crc: 0x05060708}

	data, err := EncodeToBytes[testHeader](NewFixedEncoder[testHeader](), want)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, data)

	got, err := DecodeFromBytes[testHeader](NewFixedDecoder[testHeader](), data)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded header mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedByteOrder(t *testing.T) {
	be, err := EncodeToBytes[uint32](NewFixedEncoder[uint32](), 0x01020304)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, be)

	le, err := EncodeToBytes[uint32](NewFixedEncoder[uint32]().WithByteOrder(LE), 0x01020304)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 3, 2, 1}, le)

	got, err := DecodeFromBytes[uint32](NewFixedDecoder[uint32]().WithByteOrder(LE), le)
	require.NoError(t, err)
	assert.EqualValues(t, 0x01020304, got)
}

func TestFixedChunked(t *testing.T) {
	d := NewFixedDecoder[uint32]()
	data := []byte{0xde, 0xad, 0xbe, 0xef}

	for i := range data[:3] {
		buf := NewDecodeBufRemaining(data[i:i+1], uint64(len(data)-i-1))
		_, ok, err := d.Decode(&buf)
		require.NoError(t, err)
		require.False(t, ok)
		assert.False(t, d.IsIdle())

		hint, hok := d.RequiringBytesHint().U64()
		require.True(t, hok)
		assert.EqualValues(t, len(data)-i-1, hint)
	}

	last := NewDecodeBufRemaining(data[3:], 0)
	item, ok, err := d.Decode(&last)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 0xdeadbeef, item)
	assert.True(t, d.IsIdle())
}

func TestFixedPartialAtEOS(t *testing.T) {
	d := NewFixedDecoder[uint32]()
	buf := NewDecodeBufRemaining([]byte{1, 2}, 0)

	_, _, err := d.Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOS)
}

func TestFixedVariableSizeType(t *testing.T) {
	type bad struct{ Name string }

	e := NewFixedEncoder[bad]()
	assert.ErrorIs(t, e.StartEncoding(bad{Name: "x"}), ErrInvalidInput)

	d := NewFixedDecoder[bad]()
	buf := NewDecodeBuf([]byte{1})
	_, _, err := d.Decode(&buf)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFixedEncoderBackPressure(t *testing.T) {
	e := NewFixedEncoder[uint16]()
	require.NoError(t, e.StartEncoding(0x0102))
	assert.ErrorIs(t, e.StartEncoding(0x0304), ErrEncoderFull)

	// A one byte output buffer drains the value across two calls.
	out := make([]byte, 1)
	n, err := e.Encode(out, NewEOS(false))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, e.IsIdle())
	assert.EqualValues(t, 1, e.RequiringBytes())

	n, err = e.Encode(out, NewEOS(true))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, e.IsIdle())
}

func TestFixedSizeCacheConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				data, err := EncodeToBytes[uint64](NewFixedEncoder[uint64](), uint64(i))
				assert.NoError(t, err)
				assert.Len(t, data, 8)
			}
		}()
	}
	wg.Wait()
}

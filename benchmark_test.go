package bytecodec

import "testing"

func BenchmarkFixedEncode(b *testing.B) {
	e := NewFixedEncoder[uint64]()
	out := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.StartEncoding(uint64(i))
		_, _ = EncodeAll[uint64](e, out)
	}
}

func BenchmarkFixedDecode(b *testing.B) {
	d := NewFixedDecoder[uint64]()
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := NewDecodeBufRemaining(data, 0)
		_, _, _ = d.Decode(&buf)
	}
}

func BenchmarkVarintEncode(b *testing.B) {
	e := NewVarintEncoder[uint64]()
	out := make([]byte, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.StartEncoding(1 << 42)
		_, _ = EncodeAll[uint64](e, out)
	}
}

func BenchmarkVarintDecode(b *testing.B) {
	d := NewVarintDecoder[uint64]()
	data := []byte{0xac, 0x02}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := NewDecodeBufRemaining(data, 0)
		_, _, _ = d.Decode(&buf)
	}
}

func BenchmarkLengthFrameDecode(b *testing.B) {
	d := NewLengthDecoder[string](NewUtf8Decoder(), 16)
	data := []byte("0123456789abcdef")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := NewDecodeBufRemaining(data, 0)
		_, _, _ = d.Decode(&buf)
	}
}

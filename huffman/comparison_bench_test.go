package huffman

import (
	"bytes"
	"compress/flate"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/huff0"
)

// comparisonCorpus returns English-like text well below huff0's block limit.
func comparisonCorpus() []byte {
	const passage = "It is a truth universally acknowledged, that a single man in " +
		"possession of a good fortune, must be in want of a wife. However little " +
		"known the feelings or views of such a man may be on his first entering " +
		"a neighbourhood, this truth is so well fixed in the minds of the " +
		"surrounding families, that he is considered the rightful property of " +
		"some one or other of their daughters.\n"
	return bytes.Repeat([]byte(passage), 40)
}

func flateCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.HuffmanOnly)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func TestEncodedSize(t *testing.T) {
	input := comparisonCorpus()
	codec := NewCodec()

	encoded, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// Frame bits plus the weighted code lengths, rounded up to bytes.
	table := codec.CodeTable()
	bits := 2
	for _, b := range input {
		code, _ := table.code(b)
		bits += len(code)
	}
	if want := (bits + 7) / 8; len(encoded) != want {
		t.Errorf("Expected %d bytes, got %d", want, len(encoded))
	}
	if len(encoded) >= len(input) {
		t.Errorf("Expected compression, got %d bytes from %d", len(encoded), len(input))
	}

	huff, _, err := huff0.Compress1X(input, nil)
	if err != nil {
		t.Fatalf("huff0 error: %v", err)
	}
	fl, err := flateCompress(input)
	if err != nil {
		t.Fatalf("flate error: %v", err)
	}
	packed, err := Compress(input)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	t.Logf("input %d bytes: bare %d, container %d, huff0 %d, flate(huffman-only) %d",
		len(input), len(encoded), len(packed), len(huff), len(fl))
}

func BenchmarkEncode(b *testing.B) {
	input := comparisonCorpus()

	b.Run("huffman", func(b *testing.B) {
		codec := NewCodec(WithCodeTable(GenerateCodeTable(input)))
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, err = codec.Encode(input)
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(input))/float64(len(out)), "ratio")
	})

	b.Run("huff0", func(b *testing.B) {
		var s huff0.Scratch
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, _, err = huff0.Compress1X(input, &s)
			if errors.Is(err, huff0.ErrIncompressible) || errors.Is(err, huff0.ErrUseRLE) {
				b.Skipf("huff0: %v", err)
			}
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(input))/float64(len(out)), "ratio")
	})

	b.Run("flate", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		var out []byte
		for i := 0; i < b.N; i++ {
			var err error
			out, err = flateCompress(input)
			if err != nil {
				b.Fatal(err)
			}
		}
		b.ReportMetric(float64(len(input))/float64(len(out)), "ratio")
	})
}

func BenchmarkDecode(b *testing.B) {
	input := comparisonCorpus()

	b.Run("huffman", func(b *testing.B) {
		codec := NewCodec()
		encoded, err := codec.Encode(input)
		if err != nil {
			b.Fatal(err)
		}
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := codec.Decode(encoded); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("huff0", func(b *testing.B) {
		compressed, _, err := huff0.Compress1X(input, nil)
		if err != nil {
			b.Skipf("huff0: %v", err)
		}
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			s, remain, err := huff0.ReadTable(compressed, nil)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := s.Decompress1X(remain); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("flate", func(b *testing.B) {
		compressed, err := flateCompress(input)
		if err != nil {
			b.Fatal(err)
		}
		b.SetBytes(int64(len(input)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			r := flate.NewReader(bytes.NewReader(compressed))
			if _, err := io.Copy(io.Discard, r); err != nil {
				b.Fatal(err)
			}
			r.Close()
		}
	})
}

func BenchmarkGenerate(b *testing.B) {
	input := comparisonCorpus()
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		GenerateCodeTable(input)
	}
}

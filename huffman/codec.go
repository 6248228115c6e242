package huffman

import (
	"fmt"
	"math/bits"
)

// Codec encodes byte strings with a CodeTable and decodes them again.
//
// An encoded block is the concatenated codes of its symbols framed by a
// leading and a trailing 1 bit, packed MSB-first into bytes with the last
// byte zero-padded. The block does not contain the table.
type Codec struct {
	table *CodeTable
}

// Option configures a Codec.
type Option func(*Codec)

// WithCodeTable makes the codec use table instead of generating one from
// the first input it encodes. Use it to decode data encoded elsewhere.
func WithCodeTable(table *CodeTable) Option {
	return func(c *Codec) {
		c.table = table
	}
}

// NewCodec creates a codec with the given options.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CodeTable returns the table in use, or nil if none has been set or
// generated yet.
func (c *Codec) CodeTable() *CodeTable {
	return c.table
}

// Encode encodes source.
//
// Without a table, one is generated from source and kept for later calls.
// Empty input encodes to empty output without touching the table. A symbol
// missing from the table fails with ErrUnknownSymbol.
func (c *Codec) Encode(source []byte) ([]byte, error) {
	if len(source) == 0 {
		return []byte{}, nil
	}
	if c.table == nil {
		c.table = GenerateCodeTable(source)
	}

	bb := NewBitBuffer()
	bb.AppendBit(1)
	for i, sym := range source {
		code, err := c.table.code(sym)
		if err != nil {
			return nil, fmt.Errorf("encode byte %d: %w", i, err)
		}
		bb.AppendCode(code)
	}
	bb.AppendBit(1)

	return bb.ToBytes(), nil
}

// Decode decodes raw, which must have been encoded with an identical table.
//
// Empty input decodes to empty output. Missing framing bits, a missing
// table, or bits that match no code fail with ErrCorruptStream.
func (c *Codec) Decode(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return []byte{}, nil
	}

	start, end, err := payloadRange(raw)
	if err != nil {
		return nil, err
	}
	if start == end {
		return []byte{}, nil
	}
	if c.table == nil || c.table.Len() == 0 {
		return nil, fmt.Errorf("%w: no code table", ErrCorruptStream)
	}

	br := NewBitReaderWithBits(raw, end)
	if err := br.Skip(start); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}

	out := make([]byte, 0, len(raw)*2)
	path := make([]byte, 0, c.table.MaxLen())
	for br.Remaining() > 0 {
		pos := br.Position()
		sym, ok := c.table.matchReader(br, path)
		if !ok {
			return nil, fmt.Errorf("%w: no code matches at bit %d", ErrCorruptStream, pos-start)
		}
		out = append(out, sym)
	}

	return out, nil
}

// payloadRange returns the bit range [start, end) of raw that lies between
// the leading and the trailing frame bit. The trailing frame bit is the
// last set bit of the block, so the zero padding after it is dropped too.
func payloadRange(raw []byte) (start, end int, err error) {
	first := bits.LeadingZeros8(raw[0])
	if first == 8 {
		return 0, 0, fmt.Errorf("%w: missing leading frame bit", ErrCorruptStream)
	}
	start = first + 1

	last := raw[len(raw)-1]
	if len(raw) == 1 {
		// Both frame bits share the byte; look past the leading one.
		last &= 0xFF >> start
	}
	if last == 0 {
		return 0, 0, fmt.Errorf("%w: missing trailing frame bit", ErrCorruptStream)
	}
	end = (len(raw)-1)*8 + 7 - bits.TrailingZeros8(last)

	return start, end, nil
}

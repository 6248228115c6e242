package huffman

// BitBuffer is a variable-length bit buffer for building encoded output.
//
// Bits are appended sequentially using MSB-first ordering:
//   - First bit appended goes to bit position 7
//   - Second bit goes to position 6, etc.
//
// Unused low bits of the final byte stay zero, which is the padding the
// codec's framing relies on.
type BitBuffer struct {
	data    []byte
	numBits int
}

// NewBitBuffer creates a new empty bit buffer.
func NewBitBuffer() *BitBuffer {
	return &BitBuffer{
		data:    make([]byte, 0, 256),
		numBits: 0,
	}
}

// Reset empties the buffer, keeping its capacity.
func (bb *BitBuffer) Reset() {
	bb.data = bb.data[:0]
	bb.numBits = 0
}

// NumBits returns the number of bits in the buffer.
func (bb *BitBuffer) NumBits() int {
	return bb.numBits
}

// AppendBit appends a single bit to the buffer.
func (bb *BitBuffer) AppendBit(bit int) {
	byteIndex := bb.numBits / 8
	bitIndex := bb.numBits % 8

	if byteIndex >= len(bb.data) {
		bb.data = append(bb.data, 0)
	}

	if bit != 0 {
		bb.data[byteIndex] |= 1 << (7 - bitIndex)
	}

	bb.numBits++
}

// AppendCode appends the bits of a code written as a string of '0' and '1'.
// Any character other than '0' is taken as a set bit; callers pass codes
// that were validated when they were registered.
func (bb *BitBuffer) AppendCode(code string) {
	for i := 0; i < len(code); i++ {
		if code[i] == '0' {
			bb.AppendBit(0)
		} else {
			bb.AppendBit(1)
		}
	}
}

// String renders the buffered bits as '0' and '1' characters.
func (bb *BitBuffer) String() string {
	out := make([]byte, bb.numBits)
	for i := 0; i < bb.numBits; i++ {
		out[i] = '0' + (bb.data[i/8]>>(7-i%8))&1
	}
	return string(out)
}

// ToBytes converts buffer contents to bytes. The last byte is zero-padded.
func (bb *BitBuffer) ToBytes() []byte {
	if bb.numBits == 0 {
		return []byte{}
	}

	numBytes := (bb.numBits + 7) / 8
	result := make([]byte, numBytes)
	copy(result, bb.data[:numBytes])
	return result
}

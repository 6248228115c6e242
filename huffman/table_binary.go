package huffman

import (
	"bytes"
	"fmt"
	"hash/crc32"

	"github.com/icza/bitio"
)

// Field widths of the serialized table.
const (
	countBits  = 16
	lengthBits = 16
	maxCodeLen = 1<<lengthBits - 1
)

var crcTable = crc32.MakeTable(crc32.IEEE)

// MarshalBinary serializes the table.
//
// Layout, bit-packed MSB-first: a 16-bit entry count, then per entry in
// ascending symbol order the 8-bit symbol, the 16-bit code length and the
// code bits. The last byte is zero-padded.
func (t *CodeTable) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	syms := t.Symbols()
	w.TryWriteBits(uint64(len(syms)), countBits)
	for _, sym := range syms {
		code := t.codes[sym]
		if len(code) > maxCodeLen {
			return nil, fmt.Errorf("code for 0x%02X is %d bits, limit is %d", sym, len(code), maxCodeLen)
		}
		w.TryWriteByte(sym)
		w.TryWriteBits(uint64(len(code)), lengthBits)
		for i := 0; i < len(code); i++ {
			w.TryWriteBool(code[i] == '1')
		}
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the table with one read from data, as written
// by MarshalBinary. The decoded codes must be prefix-free.
func (t *CodeTable) UnmarshalBinary(data []byte) error {
	r := bitio.NewReader(bytes.NewReader(data))

	count := int(r.TryReadBits(countBits))
	nt := NewCodeTable()
	code := make([]byte, 0, 64)
	for i := 0; i < count && r.TryError == nil; i++ {
		sym := r.TryReadByte()
		n := int(r.TryReadBits(lengthBits))
		code = code[:0]
		for j := 0; j < n && r.TryError == nil; j++ {
			if r.TryReadBool() {
				code = append(code, '1')
			} else {
				code = append(code, '0')
			}
		}
		if r.TryError != nil {
			break
		}
		if err := nt.setSymbol(sym, string(code)); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	if r.TryError != nil {
		return fmt.Errorf("read code table: %w", r.TryError)
	}
	if err := nt.Validate(); err != nil {
		return err
	}

	*t = *nt
	return nil
}

// Fingerprint returns the CRC-32 (IEEE) of the serialized table. Tables
// with the same entries have the same fingerprint.
func (t *CodeTable) Fingerprint() (uint32, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return crc32.Checksum(b, crcTable), nil
}

package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// ErrBadContainer is returned when packed data is truncated, has a bad
// header, or does not decode to the recorded length and checksum.
var ErrBadContainer = errors.New("bad container")

const (
	containerMagic = "HUF1"

	// flagEmbeddedTable marks a container that carries its code table.
	// Without it the container holds the table's fingerprint.
	flagEmbeddedTable = 1 << 0

	// magic, flags, original size, checksum, table length or fingerprint
	headerSize = 4 + 1 + 4 + 4 + 4
)

// Compress encodes data with a table generated from it and packs the
// result together with the table.
func Compress(data []byte) ([]byte, error) {
	return Pack(NewCodec(), data, nil)
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	return Unpack(data, nil)
}

// Pack encodes data with codec and wraps the encoded block in a container.
//
// Container layout (integers big-endian):
//   - "HUF1" magic (4 bytes)
//   - flags (1 byte)
//   - original length (4 bytes)
//   - CRC-32 of the original data (4 bytes)
//   - embedded table: table length (4 bytes) and MarshalBinary output,
//     otherwise the table fingerprint (4 bytes)
//   - the encoded block
//
// With a nil store the table is embedded. Otherwise the table is added to
// store and only its fingerprint is written. Empty input packs to empty
// output.
func Pack(codec *Codec, data []byte, store *TableStore) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if uint64(len(data)) > 0xFFFFFFFF {
		return nil, fmt.Errorf("input of %d bytes is too large", len(data))
	}

	payload, err := codec.Encode(data)
	if err != nil {
		return nil, err
	}
	table := codec.CodeTable()

	var flags byte
	var tableBytes []byte
	if store == nil {
		flags |= flagEmbeddedTable
		if tableBytes, err = table.MarshalBinary(); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, headerSize+len(tableBytes)+len(payload))
	out = append(out, containerMagic...)
	out = append(out, flags)
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = binary.BigEndian.AppendUint32(out, crc32.Checksum(data, crcTable))

	if store == nil {
		out = binary.BigEndian.AppendUint32(out, uint32(len(tableBytes)))
		out = append(out, tableBytes...)
	} else {
		fp, err := store.Put(table)
		if err != nil {
			return nil, err
		}
		out = binary.BigEndian.AppendUint32(out, fp)
	}

	return append(out, payload...), nil
}

// Unpack reverses Pack. A container that references its table by
// fingerprint needs the store the table was put into; ErrTableNotFound is
// returned when it is missing.
func Unpack(data []byte, store *TableStore) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrBadContainer, len(data))
	}
	if string(data[:4]) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadContainer, data[:4])
	}

	flags := data[4]
	if flags&^flagEmbeddedTable != 0 {
		return nil, fmt.Errorf("%w: unknown flags 0x%02X", ErrBadContainer, flags)
	}
	size := binary.BigEndian.Uint32(data[5:9])
	sum := binary.BigEndian.Uint32(data[9:13])
	ref := binary.BigEndian.Uint32(data[13:17])
	rest := data[headerSize:]

	var table *CodeTable
	if flags&flagEmbeddedTable != 0 {
		if uint64(ref) > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: table of %d bytes is truncated", ErrBadContainer, ref)
		}
		table = NewCodeTable()
		if err := table.UnmarshalBinary(rest[:ref]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadContainer, err)
		}
		rest = rest[ref:]
	} else {
		var ok bool
		if store != nil {
			table, ok = store.Get(ref)
		}
		if !ok {
			return nil, fmt.Errorf("%w: fingerprint %08x", ErrTableNotFound, ref)
		}
	}

	out, err := NewCodec(WithCodeTable(table)).Decode(rest)
	if err != nil {
		return nil, err
	}
	if uint32(len(out)) != size {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrBadContainer, len(out), size)
	}
	if crc32.Checksum(out, crcTable) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrBadContainer)
	}
	return out, nil
}

// Package huffman implements a lossless prefix-code (Huffman) codec for
// byte strings.
//
// A CodeTable assigns every distinct byte of a source a variable-length
// binary code, shorter codes going to more frequent bytes. No code is a
// prefix of another, so a bitstream built from the codes decodes
// unambiguously. A Codec uses a CodeTable to pack that bitstream into bytes
// and to unpack it again.
//
// Basic usage:
//
//	// Encode with a table built from the input itself
//	codec := huffman.NewCodec()
//	encoded, err := codec.Encode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode with the same table
//	decoded, err := codec.Decode(encoded)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The bare encoding does not carry its CodeTable. A decoder in another
// process needs an identical table, either generated from the same source
// or shared out of band. Pack and Unpack (and the Compress / Decompress
// shortcuts) wrap the bare encoding in a small container that embeds the
// table or references it by fingerprint in a TableStore.
package huffman

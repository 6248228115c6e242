package huffman

import "errors"

// Version is the library version.
const Version = "0.1.0"

var (
	// ErrInvalidEntry is returned when a symbol argument is not exactly one byte.
	ErrInvalidEntry = errors.New("entry must be exactly one symbol")

	// ErrDuplicateEntry is returned when a symbol already has a code.
	ErrDuplicateEntry = errors.New("symbol already has a code")

	// ErrMalformedCode is returned when a code is empty or contains
	// characters other than '0' and '1'.
	ErrMalformedCode = errors.New("code must be a non-empty string of '0' and '1'")

	// ErrUnknownSymbol is returned when a symbol has no registered code.
	ErrUnknownSymbol = errors.New("no code registered for symbol")

	// ErrCorruptStream is returned when encoded data cannot be decoded with
	// the codec's table.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrNotPrefixFree is returned by Validate when one code is a prefix of
	// another.
	ErrNotPrefixFree = errors.New("code table is not prefix-free")
)

package huffman

import (
	"fmt"
	"sort"
	"strings"
)

// CodeTable maps byte symbols to prefix-free binary codes.
//
// Codes are strings of '0' and '1'. A table is filled either by Generate,
// from the symbol frequencies of a source, or one symbol at a time with Set.
// Entries are never removed except by regenerating the whole table.
//
// A CodeTable is not safe for concurrent mutation. Concurrent reads (Get,
// MatchPrefix, encoding and decoding) are fine while nothing writes.
type CodeTable struct {
	codes   map[byte]string
	symbols map[string]byte
	minLen  int
	maxLen  int
}

// NewCodeTable creates an empty code table.
func NewCodeTable() *CodeTable {
	return &CodeTable{
		codes:   make(map[byte]string),
		symbols: make(map[string]byte),
	}
}

// GenerateCodeTable creates a code table from the symbol frequencies of
// source.
func GenerateCodeTable(source []byte) *CodeTable {
	t := NewCodeTable()
	t.Generate(source)
	return t
}

// Generate replaces the table contents with codes built from the symbol
// frequencies of source.
//
// Leaves are queued in ascending symbol order. The two lightest nodes are
// merged until a single tree remains, the earlier-queued node winning ties,
// and the first node popped becomes the '0' branch. A source with one
// distinct symbol gets the 1-bit code "0". An empty source leaves the table
// empty.
func (t *CodeTable) Generate(source []byte) {
	t.reset()

	var freq [256]uint64
	for _, b := range source {
		freq[b]++
	}

	leaves := make([]*leaf, 0, 256)
	for sym, f := range freq {
		if f > 0 {
			leaves = append(leaves, &leaf{symbol: byte(sym), w: f})
		}
	}

	root := buildTree(leaves)
	if root == nil {
		return
	}
	walkCodes(root, make([]byte, 0, len(leaves)), t.register)
}

// Set registers code for the single symbol entry.
//
// It fails with ErrInvalidEntry when entry is not exactly one byte, with
// ErrDuplicateEntry when the symbol already has a code, and with
// ErrMalformedCode when code is empty or holds anything but '0' and '1'.
// Prefix-freedom against the existing codes is not checked; see Validate.
func (t *CodeTable) Set(entry, code string) error {
	if len(entry) != 1 {
		return fmt.Errorf("set %q: %w", entry, ErrInvalidEntry)
	}
	return t.setSymbol(entry[0], code)
}

func (t *CodeTable) setSymbol(sym byte, code string) error {
	if _, ok := t.codes[sym]; ok {
		return fmt.Errorf("set 0x%02X: %w", sym, ErrDuplicateEntry)
	}
	if !isBinary(code) {
		return fmt.Errorf("set 0x%02X to %q: %w", sym, code, ErrMalformedCode)
	}
	t.register(sym, code)
	return nil
}

// Get returns the code registered for the single symbol entry.
func (t *CodeTable) Get(entry string) (string, error) {
	if len(entry) != 1 {
		return "", fmt.Errorf("get %q: %w", entry, ErrInvalidEntry)
	}
	return t.code(entry[0])
}

func (t *CodeTable) code(sym byte) (string, error) {
	code, ok := t.codes[sym]
	if !ok {
		return "", fmt.Errorf("symbol 0x%02X: %w", sym, ErrUnknownSymbol)
	}
	return code, nil
}

// MatchPrefix looks for a symbol whose code is a prefix of buffer, trying
// prefix lengths from MinLen up to MaxLen. On a match it returns the symbol
// and the rest of buffer after the code. Otherwise ok is false and rest is
// buffer unchanged.
func (t *CodeTable) MatchPrefix(buffer string) (sym byte, rest string, ok bool) {
	if t.maxLen == 0 || len(buffer) < t.minLen {
		return 0, buffer, false
	}
	for length := t.minLen; length <= t.maxLen && length <= len(buffer); length++ {
		if sym, ok := t.symbols[buffer[:length]]; ok {
			return sym, buffer[length:], true
		}
	}
	return 0, buffer, false
}

// matchReader is MatchPrefix over a bit cursor. The bits of a match are
// consumed from br; on no match br is left where it was. path is scratch
// space for the candidate code.
func (t *CodeTable) matchReader(br *BitReader, path []byte) (byte, bool) {
	if t.maxLen == 0 || br.Remaining() < t.minLen {
		return 0, false
	}
	path = path[:0]
	for length := 1; length <= t.maxLen; length++ {
		bit, err := br.PeekBitAt(length - 1)
		if err != nil {
			return 0, false
		}
		path = append(path, '0'+byte(bit))
		if length < t.minLen {
			continue
		}
		if sym, ok := t.symbols[string(path)]; ok {
			_ = br.Skip(length)
			return sym, true
		}
	}
	return 0, false
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	return len(t.codes)
}

// MinLen returns the length of the shortest code, or 0 for an empty table.
func (t *CodeTable) MinLen() int {
	return t.minLen
}

// MaxLen returns the length of the longest code, or 0 for an empty table.
func (t *CodeTable) MaxLen() int {
	return t.maxLen
}

// Symbols returns the symbols of the table in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, len(t.codes))
	for sym := range t.codes {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Validate reports ErrNotPrefixFree if a code is a prefix of (or equal to)
// the code of another symbol.
func (t *CodeTable) Validate() error {
	type entry struct {
		sym  byte
		code string
	}
	entries := make([]entry, 0, len(t.codes))
	for sym, code := range t.codes {
		entries = append(entries, entry{sym, code})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].code != entries[j].code {
			return entries[i].code < entries[j].code
		}
		return entries[i].sym < entries[j].sym
	})

	// In sorted order a code that prefixes any later code also prefixes
	// its immediate successor.
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if strings.HasPrefix(cur.code, prev.code) {
			return fmt.Errorf("0x%02X %q prefixes 0x%02X %q: %w",
				prev.sym, prev.code, cur.sym, cur.code, ErrNotPrefixFree)
		}
	}
	return nil
}

// Clone returns an independent copy of the table.
func (t *CodeTable) Clone() *CodeTable {
	c := NewCodeTable()
	for sym, code := range t.codes {
		c.register(sym, code)
	}
	return c
}

// String lists the table one symbol per line, in ascending symbol order.
func (t *CodeTable) String() string {
	var sb strings.Builder
	for _, sym := range t.Symbols() {
		fmt.Fprintf(&sb, "0x%02X %s\n", sym, t.codes[sym])
	}
	return sb.String()
}

func (t *CodeTable) reset() {
	t.codes = make(map[byte]string)
	t.symbols = make(map[string]byte)
	t.minLen = 0
	t.maxLen = 0
}

func (t *CodeTable) register(sym byte, code string) {
	if t.codes == nil {
		t.reset()
	}
	t.codes[sym] = code
	t.symbols[code] = sym

	n := len(code)
	if len(t.codes) == 1 || n < t.minLen {
		t.minLen = n
	}
	if n > t.maxLen {
		t.maxLen = n
	}
}

func isBinary(code string) bool {
	if code == "" {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] != '0' && code[i] != '1' {
			return false
		}
	}
	return true
}

package huffman

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestNewTableStoreInvalidSize(t *testing.T) {
	if _, err := NewTableStore(0); err == nil {
		t.Error("Expected error for zero size")
	}
}

func TestTableStorePutGet(t *testing.T) {
	store, err := NewTableStore(2)
	if err != nil {
		t.Fatalf("NewTableStore error: %v", err)
	}

	table := GenerateCodeTable([]byte("aaabbc"))
	fp, err := store.Put(table)
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	want, _ := table.Fingerprint()
	if fp != want {
		t.Errorf("Expected fingerprint %08x, got %08x", want, fp)
	}

	got, ok := store.Get(fp)
	if !ok {
		t.Fatal("Expected stored table")
	}
	if got.String() != table.String() {
		t.Errorf("Stored table differs:\n%s\nvs\n%s", got, table)
	}

	// The store keeps its own copy.
	table.Set("z", "111")
	got, _ = store.Get(fp)
	if got.Len() != 3 {
		t.Errorf("Stored table changed with the original, %d entries", got.Len())
	}
}

func TestTableStoreDeduplicates(t *testing.T) {
	store, _ := NewTableStore(4)

	fp1, _ := store.Put(GenerateCodeTable([]byte("aaabbc")))
	fp2, _ := store.Put(GenerateCodeTable([]byte("abcaba")))
	if fp1 != fp2 {
		t.Errorf("Expected equal fingerprints, got %08x and %08x", fp1, fp2)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored table, got %d", store.Len())
	}
}

func TestTableStoreEviction(t *testing.T) {
	store, _ := NewTableStore(2)

	fpA, _ := store.Put(GenerateCodeTable([]byte("ab")))
	fpB, _ := store.Put(GenerateCodeTable([]byte("abbccc")))

	// Touch A so B becomes the least recently used.
	store.Get(fpA)
	fpC, _ := store.Put(GenerateCodeTable([]byte("xyz")))

	if store.Len() != 2 {
		t.Errorf("Expected 2 stored tables, got %d", store.Len())
	}
	if _, ok := store.Get(fpB); ok {
		t.Error("Expected least recently used table to be evicted")
	}
	if _, ok := store.Get(fpA); !ok {
		t.Error("Expected recently used table to stay")
	}
	if _, ok := store.Get(fpC); !ok {
		t.Error("Expected newest table to stay")
	}
}

func TestTableStoreConcurrentUnpack(t *testing.T) {
	store, _ := NewTableStore(16)

	inputs := make([][]byte, 8)
	packed := make([][]byte, len(inputs))
	for i := range inputs {
		inputs[i] = []byte(fmt.Sprintf("block %d: %s", i, bytes.Repeat([]byte{'a' + byte(i)}, i+3)))
		p, err := Pack(NewCodec(), inputs[i], store)
		if err != nil {
			t.Fatalf("Pack %d error: %v", i, err)
		}
		packed[i] = p
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(inputs)*4)
	for r := 0; r < 4; r++ {
		for i := range packed {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				out, err := Unpack(packed[i], store)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(out, inputs[i]) {
					errs <- fmt.Errorf("block %d: round trip mismatch", i)
				}
			}(i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

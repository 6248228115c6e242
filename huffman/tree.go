package huffman

import "container/heap"

// node is one vertex of the merge tree: either a *leaf or an *internal.
// Each internal node owns its two children; the tree is thrown away once
// codes have been assigned.
type node interface {
	weight() uint64
}

type leaf struct {
	symbol byte
	w      uint64
}

func (l *leaf) weight() uint64 { return l.w }

type internal struct {
	w             uint64
	first, second node
}

func (n *internal) weight() uint64 { return n.w }

// queued pairs a node with its insertion sequence. Among equal weights the
// node inserted first is popped first.
type queued struct {
	n   node
	seq int
}

type nodeHeap []queued

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	wi, wj := h[i].n.weight(), h[j].n.weight()
	if wi != wj {
		return wi < wj
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(queued)) }

func (h *nodeHeap) Pop() any {
	old := *h
	q := old[len(old)-1]
	*h = old[:len(old)-1]
	return q
}

// buildTree merges the two lightest nodes until one remains and returns
// the root. Leaves are queued in the order given. A single leaf still goes
// through one merge step so that it ends up one level below the root.
// Returns nil for no leaves.
func buildTree(leaves []*leaf) node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return &internal{w: leaves[0].w, first: leaves[0]}
	}

	h := make(nodeHeap, 0, len(leaves))
	for i, l := range leaves {
		h = append(h, queued{n: l, seq: i})
	}
	heap.Init(&h)

	seq := len(leaves)
	for h.Len() > 1 {
		a := heap.Pop(&h).(queued)
		b := heap.Pop(&h).(queued)
		heap.Push(&h, queued{
			n:   &internal{w: a.n.weight() + b.n.weight(), first: a.n, second: b.n},
			seq: seq,
		})
		seq++
	}
	return heap.Pop(&h).(queued).n
}

// walkCodes visits every leaf below n with its root-to-leaf path: '0' for a
// first child, '1' for a second child.
func walkCodes(n node, path []byte, visit func(symbol byte, code string)) {
	switch n := n.(type) {
	case *leaf:
		visit(n.symbol, string(path))
	case *internal:
		if n.first != nil {
			walkCodes(n.first, append(path, '0'), visit)
		}
		if n.second != nil {
			walkCodes(n.second, append(path, '1'), visit)
		}
	}
}

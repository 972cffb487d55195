package board

import "fmt"

// Perft counts the leaf nodes of the legal move tree to the given
// depth. It is the canonical correctness check for move generation and
// make/unmake: any legality bug shifts the count.

// perftEntry caches a subtree count. The depth is part of the match
// since one position contributes different counts at different depths.
type perftEntry struct {
	hash  uint64
	nodes uint64
	depth uint8
}

// PerftTable is a fixed-size transposition table for perft runs.
type PerftTable struct {
	entries []perftEntry
	mask    uint64
}

// NewPerftTable sizes the table to at most megabytes MB, rounded down
// to a power of two entries for masked indexing.
func NewPerftTable(megabytes int) *PerftTable {
	const entrySize = 24
	n := megabytes << 20 / entrySize
	size := 1
	for size*2 <= n {
		size *= 2
	}
	return &PerftTable{
		entries: make([]perftEntry, size),
		mask:    uint64(size - 1),
	}
}

func (t *PerftTable) probe(hash uint64, depth uint8) (uint64, bool) {
	e := &t.entries[hash&t.mask]
	if e.hash == hash && e.depth == depth {
		return e.nodes, true
	}
	return 0, false
}

func (t *PerftTable) store(hash uint64, depth uint8, nodes uint64) {
	e := &t.entries[hash&t.mask]
	if depth >= e.depth {
		*e = perftEntry{hash: hash, nodes: nodes, depth: depth}
	}
}

// Perft returns the node count at the given depth, using tt to reuse
// transposed subtrees. tt may be nil.
func Perft(p *Position, depth int, tt *PerftTable) uint64 {
	if depth <= 0 {
		return 1
	}

	if tt != nil {
		if nodes, ok := tt.probe(p.Hash, uint8(depth)); ok {
			return nodes
		}
	}

	ml := p.GenerateMoves()
	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		nodes += Perft(p, depth-1, tt)
		p.UnmakeMove(m, undo)
	}

	if tt != nil {
		tt.store(p.Hash, uint8(depth), nodes)
	}
	return nodes
}

// Divide prints each root move with its subtree count, the standard
// format for pinpointing which move a perft mismatch hides behind.
func Divide(p *Position, depth int, tt *PerftTable) uint64 {
	var total uint64
	ml := p.GenerateMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		nodes := Perft(p, depth-1, tt)
		p.UnmakeMove(m, undo)
		fmt.Printf("%v: %d\n", m, nodes)
		total += nodes
	}
	return total
}

package engine

import (
	"testing"

	"github.com/p1x3r/sand/internal/board"
)

func TestTTStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.StartingPosition()
	m, _ := board.ParseMove("e2e4", pos)

	tt.Store(pos.Hash, 7, 42, TTExact, m)

	entry, ok := tt.Probe(pos.Hash)
	if !ok {
		t.Fatal("probe after store found nothing")
	}
	if entry.Move != m || entry.Score != 42 || entry.Depth != 7 || entry.Flag != TTExact {
		t.Errorf("probe returned %+v", entry)
	}
}

func TestTTNegativeProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0xDEADBEEF, 5, 10, TTLower, board.NoMove)

	if _, ok := tt.Probe(0xCAFEBABE); ok {
		t.Error("probe of unknown hash reported a hit")
	}
	if _, ok := tt.Probe(0); ok {
		t.Error("probe of zero hash on empty slot reported a hit")
	}
}

func TestTTReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	deep := uint64(0x1111)
	// A shallower entry for a different position mapping to the same
	// slot must not evict a same-generation deeper one.
	shallowSameSlot := deep + uint64(len(tt.entries))

	tt.Store(deep, 10, 50, TTExact, board.NoMove)
	tt.Store(shallowSameSlot, 3, -20, TTUpper, board.NoMove)

	if entry, ok := tt.Probe(deep); !ok || entry.Depth != 10 {
		t.Errorf("deep entry was evicted by a shallow same-age store: ok=%v entry=%+v", ok, entry)
	}

	// After a generation bump the shallow store wins.
	tt.NewSearch()
	tt.Store(shallowSameSlot, 3, -20, TTUpper, board.NoMove)
	if _, ok := tt.Probe(deep); ok {
		t.Error("stale entry survived a new-generation store")
	}
	if _, ok := tt.Probe(shallowSameSlot); !ok {
		t.Error("new-generation entry missing")
	}
}

func TestTTKeepsKnownMove(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.StartingPosition()
	m, _ := board.ParseMove("g1f3", pos)

	tt.Store(pos.Hash, 4, 10, TTExact, m)
	// A re-store for the same position without a best move keeps it.
	tt.Store(pos.Hash, 6, 15, TTUpper, board.NoMove)

	entry, ok := tt.Probe(pos.Hash)
	if !ok {
		t.Fatal("probe found nothing")
	}
	if entry.Move != m {
		t.Errorf("stored move lost on moveless re-store: %v", entry.Move)
	}
	if entry.Depth != 6 || entry.Score != 15 {
		t.Errorf("re-store did not update depth/score: %+v", entry)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x42, 5, 1, TTExact, board.NoMove)
	tt.Clear()
	if _, ok := tt.Probe(0x42); ok {
		t.Error("entry survived Clear")
	}
}

func TestMateScoreAdjustment(t *testing.T) {
	// A mate score stored at ply 4 and probed at ply 2 must still mean
	// the same mate distance from the probing node.
	rootRelative := MateScore - 9
	stored := scoreToTT(rootRelative, 4)
	if got := scoreFromTT(stored, 4); got != rootRelative {
		t.Errorf("round trip at same ply: %d, want %d", got, rootRelative)
	}

	// Node-relative form is ply-independent.
	if scoreToTT(rootRelative, 4) != scoreToTT(MateScore-7, 2) {
		t.Error("same node-distance mates stored differently at different plies")
	}

	if s := scoreToTT(100, 30); s != 100 {
		t.Errorf("positional score adjusted: %d", s)
	}
}

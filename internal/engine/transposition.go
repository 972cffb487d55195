package engine

import (
	"math/bits"

	"github.com/p1x3r/sand/internal/board"
)

// TTFlag classifies what a stored score proves about the true value.
type TTFlag uint8

const (
	TTExact TTFlag = iota // searched with a full window, score is exact
	TTLower               // fail high: true score >= stored score
	TTUpper               // fail low: true score <= stored score
)

// TTEntry is one transposition-table slot. The full 64-bit key is kept
// so an index collision can never masquerade as a hit; the stored move
// is still legality-checked by the search before use, guarding against
// two positions sharing the whole key.
type TTEntry struct {
	Key   uint64
	Move  board.Move
	Score int16
	Depth int8
	Flag  TTFlag
	Age   uint8
}

// TranspositionTable caches search results keyed by zobrist hash. A
// single search thread owns it, so there is no locking; entries are
// best-effort and may be overwritten at any time.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
	age     uint8
}

// NewTranspositionTable sizes the table to at most sizeMB megabytes,
// rounded down to a power of two entries for masked indexing.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 24
	n := uint64(sizeMB) << 20 / entrySize
	if n == 0 {
		n = 1
	}
	n = 1 << (63 - bits.LeadingZeros64(n))
	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

// Probe returns the entry stored for hash, if any.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	e := tt.entries[hash&tt.mask]
	if e.Key == hash && e != (TTEntry{}) {
		return e, true
	}
	return TTEntry{}, false
}

// Store writes an entry for hash. An incumbent from the current search
// generation survives only if it is deeper; older generations are
// always overwritten, since a stale deep entry is worth less than a
// fresh shallow one.
func (tt *TranspositionTable) Store(hash uint64, depth, score int, flag TTFlag, move board.Move) {
	e := &tt.entries[hash&tt.mask]
	if e.Age == tt.age && int(e.Depth) > depth && e.Key != hash {
		return
	}
	// Keep a known best move if the new result has none.
	if move == board.NoMove && e.Key == hash {
		move = e.Move
	}
	*e = TTEntry{
		Key:   hash,
		Move:  move,
		Score: int16(score),
		Depth: int8(depth),
		Flag:  flag,
		Age:   tt.age,
	}
}

// NewSearch advances the generation counter; replacement decisions
// treat entries from earlier searches as expendable.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear wipes the table, as on a new-game signal.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
}

// HashFull estimates table occupancy in permille from a fixed sample,
// for the protocol's hashfull info field.
func (tt *TranspositionTable) HashFull() int {
	sample := 1000
	if uint64(sample) > tt.mask+1 {
		sample = int(tt.mask + 1)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i] != (TTEntry{}) && tt.entries[i].Age == tt.age {
			used++
		}
	}
	return used * 1000 / sample
}

// Mate scores are stored relative to the probing node rather than the
// root, so a cached "mate in N from here" stays true wherever the
// position transposes to. The two adjusters convert between the forms.

// scoreToTT converts a root-relative score for storage at the given
// ply.
func scoreToTT(score, ply int) int {
	switch {
	case score >= MateInMaxPly:
		return score + ply
	case score <= -MateInMaxPly:
		return score - ply
	}
	return score
}

// scoreFromTT converts a stored score back to root-relative at the
// given ply.
func scoreFromTT(score, ply int) int {
	switch {
	case score >= MateInMaxPly:
		return score - ply
	case score <= -MateInMaxPly:
		return score + ply
	}
	return score
}

package engine

import (
	"sync/atomic"

	"github.com/p1x3r/sand/internal/board"
)

// Engine owns the state that persists across searches: the
// transposition table, the ordering heuristics, and the search mode
// atomic the protocol adapter pokes from its own goroutine.
type Engine struct {
	tt      *TranspositionTable
	orderer *MoveOrderer
	mode    atomic.Int32

	// OnInfo, if set, receives a report after every completed depth.
	// The engine itself does no I/O.
	OnInfo func(Info)
}

// NewEngine creates an engine with a hash table of the given size in
// megabytes.
func NewEngine(hashMB int) *Engine {
	return &Engine{
		tt:      NewTranspositionTable(hashMB),
		orderer: NewMoveOrderer(),
	}
}

// NewGame discards state from the previous game: the hash table is
// cleared and the history heuristic halved.
func (e *Engine) NewGame() {
	e.tt.Clear()
	e.orderer.NewGame()
}

// Search runs a full search and blocks until it finishes; the adapter
// calls it from a goroutine. history holds the game's zobrist hashes
// up to and including pos, for repetition detection across the root.
func (e *Engine) Search(pos *board.Position, history []uint64, limits Limits) Result {
	if limits.Ponder {
		e.mode.Store(int32(ModePonder))
	} else {
		e.mode.Store(int32(ModeNormal))
	}
	e.tt.NewSearch()
	e.orderer.NewSearch()

	s := NewSearcher(e.tt, e.orderer, &e.mode)
	result := s.Search(pos, history, limits, e.OnInfo)

	e.mode.Store(int32(ModeNormal))
	return result
}

// Stop asks the running search to abort; it returns immediately.
func (e *Engine) Stop() {
	e.mode.Store(int32(ModeStop))
}

// PonderHit converts a pondering search into a normal timed one. A
// no-op unless the engine is actually pondering.
func (e *Engine) PonderHit() {
	e.mode.CompareAndSwap(int32(ModePonder), int32(ModePonderHit))
}

package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/p1x3r/sand/internal/board"
)

// refMinimax is a plain fixed-depth negamax with no pruning, no
// quiescence, and no caching. Slow but obviously correct, it serves as
// the oracle for the real search on forced-mate positions.
func refMinimax(pos *board.Position, depth, ply int) int {
	moves := pos.GenerateMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	if depth == 0 {
		return Evaluate(pos)
	}
	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -refMinimax(pos, depth-1, ply+1)
		pos.UnmakeMove(m, undo)
		if score > best {
			best = score
		}
	}
	return best
}

// refAlphaBeta is refMinimax plus a textbook alpha-beta window and
// nothing else, so the two must agree exactly.
func refAlphaBeta(pos *board.Position, depth, ply, alpha, beta int) int {
	moves := pos.GenerateMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	if depth == 0 {
		return Evaluate(pos)
	}
	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -refAlphaBeta(pos, depth-1, ply+1, -beta, -alpha)
		pos.UnmakeMove(m, undo)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos := mustParseFEN(t, fen)
		want := refMinimax(pos, 3, 0)
		got := refAlphaBeta(pos, 3, 0, -Infinity, Infinity)
		if got != want {
			t.Errorf("%s: alpha-beta %d, minimax %d", fen, got, want)
		}
	}
}

func runSearch(t *testing.T, fen string, limits Limits) Result {
	t.Helper()
	e := NewEngine(16)
	return e.Search(mustParseFEN(t, fen), nil, limits)
}

func TestMateInOne(t *testing.T) {
	// The a7 rook seals the seventh rank, so Rb8 mates on the back
	// rank.
	const fen = "7k/R7/8/8/8/8/8/1R4K1 w - - 0 1"
	res := runSearch(t, fen, Limits{Depth: 3})
	if res.Score != MateScore-1 {
		t.Errorf("score %d, want %d", res.Score, MateScore-1)
	}
	if want := mustParseMove(t, mustParseFEN(t, fen), "b1b8"); res.Best != want {
		t.Errorf("best %v, want %v", res.Best, want)
	}
}

func TestMateInTwo(t *testing.T) {
	// 1.Ra7 forces Kg8, then 2.Rb8 mates; nothing mates in one.
	const fen = "7k/8/R7/8/8/8/8/1R4K1 w - - 0 1"
	res := runSearch(t, fen, Limits{Depth: 5})
	if res.Score != MateScore-3 {
		t.Errorf("score %d, want %d", res.Score, MateScore-3)
	}
	if want := refMinimax(mustParseFEN(t, fen), 5, 0); res.Score != want {
		t.Errorf("search found %d, oracle says %d", res.Score, want)
	}
}

func TestMatedInOne(t *testing.T) {
	// Black's only move, Kg8, walks into Rb8 mate.
	res := runSearch(t, "7k/R7/8/8/8/8/8/1R4K1 b - - 0 1", Limits{Depth: 4})
	if res.Score != -(MateScore - 2) {
		t.Errorf("score %d, want %d", res.Score, -(MateScore - 2))
	}
}

func TestStalemateIsDrawnAtRoot(t *testing.T) {
	res := runSearch(t, "k7/8/1Q6/8/8/8/8/K7 b - - 0 1", Limits{Depth: 3})
	if res.Score != 0 {
		t.Errorf("score %d, want 0", res.Score)
	}
	if res.Best != board.NoMove {
		t.Errorf("best %v in a stalemate", res.Best)
	}
}

func TestSearchWinsFreeQueen(t *testing.T) {
	const fen = "k7/8/8/3q4/8/8/3R4/K7 w - - 0 1"
	res := runSearch(t, fen, Limits{Depth: 4})
	if want := mustParseMove(t, mustParseFEN(t, fen), "d2d5"); res.Best != want {
		t.Errorf("best %v, want %v", res.Best, want)
	}
	if res.Score < board.PieceValue[board.Queen]-board.PieceValue[board.Rook]-100 {
		t.Errorf("score %d does not reflect the won queen", res.Score)
	}
}

func TestIsDrawRepetition(t *testing.T) {
	pos := mustParseFEN(t, "k7/8/8/8/8/8/8/K5R1 w - - 10 20")
	other := pos.Hash ^ 0x9E3779B97F4A7C15

	s := &Searcher{pos: pos, history: []uint64{pos.Hash, other, pos.Hash}}
	if !s.isDraw() {
		t.Error("repeated position not detected as a draw")
	}

	s.history = []uint64{other, other ^ 1, pos.Hash}
	if s.isDraw() {
		t.Error("unrepeated position reported drawn")
	}
}

func TestIsDrawRespectsHalfMoveClock(t *testing.T) {
	// The repetition happened before the last irreversible move, so it
	// cannot recur.
	pos := mustParseFEN(t, "k7/8/8/8/8/8/8/K5R1 w - - 0 20")
	other := pos.Hash ^ 0x9E3779B97F4A7C15
	s := &Searcher{pos: pos, history: []uint64{pos.Hash, other, pos.Hash}}
	if s.isDraw() {
		t.Error("repetition outside the reversible window counted")
	}
}

func TestIsDrawFiftyMoves(t *testing.T) {
	pos := mustParseFEN(t, "k7/8/8/8/8/8/8/K5R1 w - - 100 80")
	s := &Searcher{pos: pos, history: []uint64{pos.Hash}}
	if !s.isDraw() {
		t.Error("hundred-halfmove position not drawn")
	}
}

func TestStopReturnsLegalMove(t *testing.T) {
	e := NewEngine(16)
	pos := board.StartingPosition()

	done := make(chan Result, 1)
	go func() {
		done <- e.Search(pos, nil, Limits{Infinite: true})
	}()

	time.Sleep(50 * time.Millisecond)
	e.Stop()

	select {
	case res := <-done:
		if res.Best == board.NoMove {
			t.Fatal("no best move after stop")
		}
		if !pos.GenerateMoves().Contains(res.Best) {
			t.Errorf("best move %v is not legal", res.Best)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop")
	}
}

func TestNodeLimit(t *testing.T) {
	const limit = 20000
	var mode atomic.Int32
	s := NewSearcher(NewTranspositionTable(16), NewMoveOrderer(), &mode)
	s.Search(board.StartingPosition(), nil, Limits{Nodes: limit}, nil)
	if s.Nodes() > limit+4096 {
		t.Errorf("searched %d nodes, limit %d", s.Nodes(), limit)
	}
}

func TestLateMoveReductionTable(t *testing.T) {
	// Late, deep quiets must actually get reduced.
	if lmrTable[10][10] < 2 {
		t.Errorf("lmrTable[10][10] = %d, want a real reduction", lmrTable[10][10])
	}
	deepest := 0
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			r := lmrTable[d][m]
			if r < 0 {
				t.Fatalf("negative reduction lmrTable[%d][%d] = %d", d, m, r)
			}
			if r < lmrTable[d-1][m] || r < lmrTable[d][m-1] {
				t.Fatalf("lmrTable not monotonic at [%d][%d]", d, m)
			}
			if r > deepest {
				deepest = r
			}
		}
	}
	if deepest == 0 {
		t.Error("lmrTable is all zeros; reductions never happen")
	}
}

func TestStopKeepsLastCompletedDepthMove(t *testing.T) {
	const fen = "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"
	const depth = 5

	ref := runSearch(t, fen, Limits{Depth: depth})

	// Same position, but the search is stopped the moment depth 5
	// completes; the half-finished depth 6 must be discarded.
	var mode atomic.Int32
	s := NewSearcher(NewTranspositionTable(16), NewMoveOrderer(), &mode)
	res := s.Search(mustParseFEN(t, fen), nil, Limits{Infinite: true}, func(info Info) {
		if info.Depth == depth {
			mode.Store(int32(ModeStop))
		}
	})

	if res.Best != ref.Best {
		t.Errorf("stopped search played %v, depth-%d search played %v", res.Best, depth, ref.Best)
	}
	if res.Score != ref.Score {
		t.Errorf("stopped search score %d, depth-%d score %d", res.Score, depth, ref.Score)
	}
}

func TestMoveTimeRespected(t *testing.T) {
	start := time.Now()
	runSearch(t, board.StartFEN, Limits{MoveTime: 100 * time.Millisecond})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("movetime 100ms search ran %v", elapsed)
	}
}

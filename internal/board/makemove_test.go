package board

import "testing"

var symmetryFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
}

// Every legal move must unmake back to a bit-identical position:
// bitboards, mailbox, hash, castling, en passant, clocks, and the
// evaluation accumulators. Position is a comparable struct, so one
// equality check covers all of it.
func TestMakeUnmakeSymmetry(t *testing.T) {
	for _, fen := range symmetryFENs {
		pos := ParseFENOrDie(fen)
		before := *pos

		ml := pos.GenerateMoves()
		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			undo := pos.MakeMove(m)
			pos.UnmakeMove(m, undo)
			if *pos != before {
				t.Fatalf("%s: make/unmake of %v did not restore the position", fen, m)
			}
		}
	}
}

// Two plies deep, so unmake runs against positions it did not start
// from.
func TestMakeUnmakeSymmetryDeep(t *testing.T) {
	pos := ParseFENOrDie("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	root := *pos

	ml := pos.GenerateMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		u1 := pos.MakeMove(m)
		mid := *pos
		replies := pos.GenerateMoves()
		for j := 0; j < replies.Len(); j++ {
			r := replies.Get(j)
			u2 := pos.MakeMove(r)
			pos.UnmakeMove(r, u2)
			if *pos != mid {
				t.Fatalf("reply %v after %v did not unmake cleanly", r, m)
			}
		}
		pos.UnmakeMove(m, u1)
	}
	if *pos != root {
		t.Fatal("root position not restored")
	}
}

// The incremental hash and evaluation terms must track the from-scratch
// computation through an entire game line.
func TestIncrementalStateTracksScratch(t *testing.T) {
	pos := StartingPosition()
	line := []string{
		"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6",
		"b1c3", "a7a6", "c1e3", "e7e5", "d4b3", "c8e6", "f2f3", "f8e7",
		"d1d2", "e8g8", "e1c1", "b8d7",
	}
	for _, s := range line {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if !pos.IsPseudoLegalValid(m) {
			t.Fatalf("move %q not legal in line", s)
		}
		pos.MakeMove(m)

		if got := pos.computeHash(); got != pos.Hash {
			t.Fatalf("after %s: incremental hash %016x, scratch %016x", s, pos.Hash, got)
		}
		scratch := *pos
		scratch.recomputeEvalTerms()
		gm, gmg, geg, gph := scratch.EvalTerms()
		m0, mg, eg, ph := pos.EvalTerms()
		if m0 != gm || mg != gmg || eg != geg || ph != gph {
			t.Fatalf("after %s: incremental eval terms (%d,%d,%d,%d) != scratch (%d,%d,%d,%d)",
				s, m0, mg, eg, ph, gm, gmg, geg, gph)
		}
	}
}

func TestNullMoveSymmetry(t *testing.T) {
	pos := ParseFENOrDie("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := *pos
	undo := pos.MakeNullMove()
	if pos.SideToMove != Black {
		t.Error("null move did not pass the turn")
	}
	if pos.EnPassant != NoSquare {
		t.Error("null move must clear the en passant square")
	}
	pos.UnmakeNullMove(undo)
	if *pos != before {
		t.Error("null move did not unmake cleanly")
	}
}

func TestCastlingRightsUpdates(t *testing.T) {
	cases := []struct {
		fen  string
		move string
		want CastlingRights
	}{
		// King move forfeits both rights.
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1e2", BlackKingside | BlackQueenside},
		// Rook move forfeits one side.
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "h1h2", WhiteQueenside | BlackKingside | BlackQueenside},
		// Capturing a rook on its home square kills the right too.
		{"r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1", "g2a8", WhiteKingside | WhiteQueenside | BlackKingside},
		// Castling itself clears the mover's rights.
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", BlackKingside | BlackQueenside},
	}
	for _, tc := range cases {
		pos := ParseFENOrDie(tc.fen)
		m, err := ParseMove(tc.move, pos)
		if err != nil {
			t.Fatalf("%s: %v", tc.move, err)
		}
		pos.MakeMove(m)
		if pos.Castling != tc.want {
			t.Errorf("%s after %s: castling %v, want %v", tc.fen, tc.move, pos.Castling, tc.want)
		}
	}
}

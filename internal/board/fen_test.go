package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 37 112",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("round trip: got %q, want %q", got, fen)
		}
	}
}

func TestParseFENDefaultsClocks(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatal(err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",            // too few fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // seven ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank overflow
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", // bad ep square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",  // bad clock
		"8/8/8/8/8/8/8/8 w - - 0 1",                                 // no kings
		"rnbqkbnP/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",  // pawn on rank 8
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) accepted malformed input", fen)
		}
	}
}

func TestStartingPositionState(t *testing.T) {
	pos := StartingPosition()
	if pos.SideToMove != White || pos.Castling != AllCastling || pos.EnPassant != NoSquare {
		t.Fatalf("unexpected start state: %v", pos)
	}
	if pos.Occupied().Count() != 32 {
		t.Errorf("start position has %d pieces", pos.Occupied().Count())
	}
	if pos.Hash != pos.computeHash() {
		t.Error("incremental hash does not match scratch hash")
	}
	material, mg, eg, phase := pos.EvalTerms()
	if material != 0 || mg != 0 || eg != 0 {
		t.Errorf("start position eval terms not balanced: %d %d %d", material, mg, eg)
	}
	if phase != TotalPhase {
		t.Errorf("start phase = %d, want %d", phase, TotalPhase)
	}
	if pos.KingSquare(White) != E1 || pos.KingSquare(Black) != E8 {
		t.Error("kings misplaced")
	}
}

package board

import "testing"

func TestCheckmateDetection(t *testing.T) {
	cases := []struct {
		fen  string
		mate bool
	}{
		// Back-rank mate, black to move.
		{"R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true},
		// Smothered mate.
		{"6rk/5Npp/8/8/8/8/8/K7 b - - 0 1", true},
		// The checking rook hangs, so the king just takes it.
		{"6Rk/8/8/8/8/8/8/K7 b - - 0 1", false},
		// The rook check can be blocked by Re8.
		{"R5k1/5ppp/8/8/8/4r3/8/K7 b - - 0 1", false},
	}
	for _, tc := range cases {
		pos := ParseFENOrDie(tc.fen)
		if got := pos.IsCheckmate(); got != tc.mate {
			t.Errorf("%s: IsCheckmate = %v, want %v", tc.fen, got, tc.mate)
		}
	}
}

func TestStalemateDetection(t *testing.T) {
	// Classic corner stalemate: black king on a8, white king c7 and
	// queen b6 leave black no move while not in check.
	pos := ParseFENOrDie("k7/2K5/1Q6/8/8/8/8/8 b - - 0 1")
	if pos.InCheck() {
		t.Fatal("stalemate position must not be check")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate misclassified as mate")
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Knight on f6 and rook on e1 both check the e8 king.
	pos := ParseFENOrDie("4k3/8/5N2/8/8/8/8/4RK2 b - - 0 1")
	if !pos.Checkers.Several() {
		t.Fatal("expected double check")
	}
	ml := pos.GenerateMoves()
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).Piece().Type() != King {
			t.Errorf("non-king move %v generated in double check", ml.Get(i))
		}
	}
	if ml.Len() == 0 {
		t.Error("king should have escape squares")
	}
}

func TestPinnedPieceMoves(t *testing.T) {
	// The d2 rook is pinned by the d8 rook against the d1 king: it may
	// slide along the d-file but never leave it.
	pos := ParseFENOrDie("3rk3/8/8/8/8/8/3R4/3K4 w - - 0 1")
	if pinned := pos.Pinned(); !pinned.Has(D2) {
		t.Fatalf("d2 rook should be pinned, got %x", pinned)
	}
	ml := pos.GenerateMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() == D2 && m.To().File() != 3 {
			t.Errorf("pinned rook escaped the pin file: %v", m)
		}
	}
}

func TestCastlingThroughAttackForbidden(t *testing.T) {
	// A rook on f8 covers f1, so white may not castle kingside but may
	// castle queenside.
	pos := ParseFENOrDie("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	ml := pos.GenerateMoves()
	var sawShort, sawLong bool
	for i := 0; i < ml.Len(); i++ {
		switch ml.Get(i).Flag() {
		case FlagCastleKing:
			sawShort = true
		case FlagCastleQueen:
			sawLong = true
		}
	}
	if sawShort {
		t.Error("castling kingside through an attacked square was generated")
	}
	if !sawLong {
		t.Error("queenside castling should be available")
	}
}

func TestGenerateCapturesSubset(t *testing.T) {
	pos := ParseFENOrDie("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	all := pos.GenerateMoves()
	caps := pos.GenerateCaptures()
	for i := 0; i < caps.Len(); i++ {
		m := caps.Get(i)
		if !m.IsCapture() && !m.IsPromotion() {
			t.Errorf("GenerateCaptures produced quiet move %v", m)
		}
		if !all.Contains(m) {
			t.Errorf("capture %v missing from the full move list", m)
		}
	}
	// Cross-check the counts the other way.
	want := 0
	for i := 0; i < all.Len(); i++ {
		if m := all.Get(i); m.IsCapture() || m.IsPromotion() {
			want++
		}
	}
	if caps.Len() != want {
		t.Errorf("GenerateCaptures found %d moves, full list has %d tactical moves", caps.Len(), want)
	}
}

func TestIsPseudoLegalValidRejectsStale(t *testing.T) {
	pos := StartingPosition()
	good, _ := ParseMove("e2e4", pos)
	if !pos.IsPseudoLegalValid(good) {
		t.Error("e2e4 should validate in the starting position")
	}
	// A perfectly shaped move for the wrong position.
	stale := NewMove(E4, E5, WhitePawn, NoPiece, NoPiece, FlagQuiet)
	if pos.IsPseudoLegalValid(stale) {
		t.Error("move with no pawn on e4 should be rejected")
	}
	if pos.IsPseudoLegalValid(NoMove) {
		t.Error("NoMove should never validate")
	}
}

func TestQuietPromotionsInFullList(t *testing.T) {
	// A pawn on the seventh with an empty square ahead must promote in
	// the full legal list, not just among the tactical moves.
	pos := ParseFENOrDie("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	count := func(ml *MoveList) int {
		n := 0
		for i := 0; i < ml.Len(); i++ {
			if ml.Get(i).IsPromotion() {
				n++
			}
		}
		return n
	}

	if got := count(pos.GenerateMoves()); got != 4 {
		t.Errorf("full list has %d promotions, want 4", got)
	}
	if got := count(pos.GenerateCaptures()); got != 4 {
		t.Errorf("tactical list has %d promotions, want 4", got)
	}
}

package uci

import (
	"strings"
	"testing"

	"github.com/p1x3r/sand/internal/board"
	"github.com/p1x3r/sand/internal/engine"
)

func newTestUCI() *UCI {
	return New(engine.NewEngine(1))
}

func TestHandlePositionStartposMoves(t *testing.T) {
	u := newTestUCI()
	u.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})

	const want = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := u.position.FEN(); got != want {
		t.Errorf("position = %s, want %s", got, want)
	}
	if len(u.history) != 3 {
		t.Errorf("history has %d hashes, want 3", len(u.history))
	}
}

func TestHandlePositionFEN(t *testing.T) {
	u := newTestUCI()
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	u.handlePosition(append([]string{"fen"}, strings.Fields(fen)...))

	if got := u.position.FEN(); got != fen {
		t.Errorf("position = %s, want %s", got, fen)
	}
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	cases := [][]string{
		{"startpos", "moves", "e2e5"}, // pawn cannot jump three ranks
		{"startpos", "moves", "e2e4", "e8e7"}, // king blocked by own pawn
		{"startpos", "moves", "e4e5"}, // no piece on e4
	}
	for _, args := range cases {
		u := newTestUCI()
		u.handlePosition(args)

		// The illegal move and everything after it must not have been
		// applied; only the legal prefix stands.
		legal := u.position.GenerateMoves()
		if legal.Len() == 0 {
			t.Fatalf("%v left an unplayable position %s", args, u.position.FEN())
		}
		if got := u.position.HalfMoveClock; got != 0 {
			t.Errorf("%v: halfmove clock %d after rejection", args, got)
		}
	}

	u := newTestUCI()
	u.handlePosition([]string{"startpos", "moves", "e2e5"})
	if got := u.position.FEN(); got != board.StartFEN {
		t.Errorf("illegal first move mutated the position: %s", got)
	}
	if len(u.history) != 1 {
		t.Errorf("history has %d hashes after rejected setup, want 1", len(u.history))
	}
}

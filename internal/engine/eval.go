// Package engine implements the search: evaluation, transposition
// table, move ordering, and the iterative-deepening alpha-beta driver.
package engine

import (
	"github.com/p1x3r/sand/internal/board"
)

// Evaluate returns the static evaluation in centipawns from the side
// to move's point of view. Material, piece-square bonuses, and game
// phase are maintained incrementally by make/unmake, so this is a
// handful of integer operations per call.
func Evaluate(pos *board.Position) int {
	material, mg, eg, phase := pos.EvalTerms()

	// Linear blend between the midgame and endgame piece-square sums,
	// scaled to 0..256 with rounding.
	const scale = 256
	ratio := (phase*scale + board.TotalPhase/2) / board.TotalPhase
	positional := (mg*ratio + eg*(scale-ratio)) / scale

	score := material + positional
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// SEE estimates the material outcome of the capture sequence started
// by m on its destination square, in centipawns from the mover's point
// of view. It runs the swap algorithm: alternate least-valuable
// attackers capture on the square until one side has nothing left or
// standing pat is better, then the gain array is resolved backwards.
func SEE(pos *board.Position, m board.Move) int {
	from, to := m.From(), m.To()

	var gain [32]int
	d := 0
	if captured := m.Captured(); captured != board.NoPiece {
		gain[0] = captured.Value()
	}
	if m.IsPromotion() {
		gain[0] += m.Promotion().Value() - board.PieceValue[board.Pawn]
	}

	// The moved piece now stands on the target square; sliders behind
	// it see through the vacated origin.
	occupied := pos.Occupied() &^ board.SquareBB(from)
	attackerValue := m.Piece().Value()
	if m.IsPromotion() {
		attackerValue = m.Promotion().Value()
	}
	side := m.Piece().Color().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]

		// Neither continuing nor stopping can turn this exchange
		// around for the side to move.
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}

		sq, pc := leastValuableAttacker(pos, to, side, occupied)
		if sq == board.NoSquare {
			break
		}

		occupied &^= board.SquareBB(sq)
		attackerValue = pc.Value()
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of the given side
// attacking target under the reduced occupancy. Recomputing the slider
// rays against the current occupancy picks up x-ray attackers revealed
// by earlier captures.
func leastValuableAttacker(pos *board.Position, target board.Square, side board.Color, occupied board.Bitboard) (board.Square, board.Piece) {
	if a := pos.PieceBB(side, board.Pawn) & board.PawnAttacks(side.Other(), target) & occupied; a != 0 {
		return a.First(), board.MakePiece(board.Pawn, side)
	}
	if a := pos.PieceBB(side, board.Knight) & board.KnightAttacks(target) & occupied; a != 0 {
		return a.First(), board.MakePiece(board.Knight, side)
	}

	bishopRays := board.BishopAttacks(target, occupied)
	if a := pos.PieceBB(side, board.Bishop) & bishopRays & occupied; a != 0 {
		return a.First(), board.MakePiece(board.Bishop, side)
	}

	rookRays := board.RookAttacks(target, occupied)
	if a := pos.PieceBB(side, board.Rook) & rookRays & occupied; a != 0 {
		return a.First(), board.MakePiece(board.Rook, side)
	}
	if a := pos.PieceBB(side, board.Queen) & (bishopRays | rookRays) & occupied; a != 0 {
		return a.First(), board.MakePiece(board.Queen, side)
	}

	if a := pos.PieceBB(side, board.King) & board.KingAttacks(target) & occupied; a != 0 {
		return a.First(), board.MakePiece(board.King, side)
	}
	return board.NoSquare, board.NoPiece
}

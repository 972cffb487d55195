package board

// Leaper attack tables and the between/line geometry used by pin and
// check detection.
var (
	pawnAttackBB   [2][64]Bitboard
	knightAttackBB [64]Bitboard
	kingAttackBB   [64]Bitboard

	// betweenBB[a][b] holds the squares strictly between a and b when
	// they share a rank, file, or diagonal; lineBB[a][b] holds the
	// full line through both squares including the endpoints. Both are
	// empty for unaligned pairs.
	betweenBB [64][64]Bitboard
	lineBB    [64][64]Bitboard
)

func init() {
	initMagicTables()
	initLeaperTables()
	initLineTables()
}

func initLeaperTables() {
	for sq := A1; sq <= H8; sq++ {
		b := SquareBB(sq)

		pawnAttackBB[White][sq] = b.NorthEast() | b.NorthWest()
		pawnAttackBB[Black][sq] = b.SouthEast() | b.SouthWest()

		knightAttackBB[sq] = b.North().NorthEast() | b.North().NorthWest() |
			b.South().SouthEast() | b.South().SouthWest() |
			b.East().NorthEast() | b.East().SouthEast() |
			b.West().NorthWest() | b.West().SouthWest()

		kingAttackBB[sq] = b.North() | b.South() | b.East() | b.West() |
			b.NorthEast() | b.NorthWest() | b.SouthEast() | b.SouthWest()
	}
}

// initLineTables derives between/line from the ray-cast generators: two
// squares are aligned exactly when one slides to the other on an empty
// board, and the squares between them are those each one's ray reaches
// with the other square placed as a blocker.
func initLineTables() {
	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}
			ends := SquareBB(a) | SquareBB(b)
			switch {
			case SlowBishopAttacks(a, 0).Has(b):
				betweenBB[a][b] = SlowBishopAttacks(a, SquareBB(b)) & SlowBishopAttacks(b, SquareBB(a))
				lineBB[a][b] = (SlowBishopAttacks(a, 0) & SlowBishopAttacks(b, 0)) | ends
			case SlowRookAttacks(a, 0).Has(b):
				betweenBB[a][b] = SlowRookAttacks(a, SquareBB(b)) & SlowRookAttacks(b, SquareBB(a))
				lineBB[a][b] = (SlowRookAttacks(a, 0) & SlowRookAttacks(b, 0)) | ends
			}
		}
	}
}

// PawnAttacks returns the capture squares of a pawn of color c on sq.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttackBB[c][sq] }

// KnightAttacks returns the attack set of a knight on sq.
func KnightAttacks(sq Square) Bitboard { return knightAttackBB[sq] }

// KingAttacks returns the attack set of a king on sq.
func KingAttacks(sq Square) Bitboard { return kingAttackBB[sq] }

// PieceAttacks returns the attack set for a piece of type pt on sq
// under the given occupancy. Pawns are excluded since their attacks
// depend on color.
func PieceAttacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return knightAttackBB[sq]
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return kingAttackBB[sq]
	}
	return 0
}

// Between returns the squares strictly between a and b, or the empty
// set when they are not aligned.
func Between(a, b Square) Bitboard { return betweenBB[a][b] }

// Line returns the full rank, file, or diagonal through a and b
// including both squares, or the empty set when they are not aligned.
func Line(a, b Square) Bitboard { return lineBB[a][b] }

// Aligned reports whether c lies on the line through a and b.
func Aligned(a, b, c Square) bool { return lineBB[a][b].Has(c) }

// Attackers returns the pieces of color c attacking sq under the given
// occupancy.
func (p *Position) Attackers(c Color, sq Square, occupied Bitboard) Bitboard {
	diag := p.PieceBB(c, Bishop) | p.PieceBB(c, Queen)
	orth := p.PieceBB(c, Rook) | p.PieceBB(c, Queen)
	return pawnAttackBB[c.Other()][sq]&p.PieceBB(c, Pawn) |
		knightAttackBB[sq]&p.PieceBB(c, Knight) |
		kingAttackBB[sq]&p.PieceBB(c, King) |
		BishopAttacks(sq, occupied)&diag |
		RookAttacks(sq, occupied)&orth
}

// IsAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.Attackers(by, sq, p.Occupied()) != 0
}

// computeCheckers returns the enemy pieces giving check to the side to
// move.
func (p *Position) computeCheckers() Bitboard {
	king := p.KingSquare(p.SideToMove)
	if !king.IsValid() {
		return 0
	}
	return p.Attackers(p.SideToMove.Other(), king, p.Occupied())
}

package board

// Undo carries the irreversible state a move destroys. Everything else
// about the position is reversed incrementally by replaying the move's
// piece operations backwards, so make/unmake never copies bitboards.
type Undo struct {
	castling  CastlingRights
	enPassant Square
	halfMove  int
	hash      uint64
	checkers  Bitboard
}

// castlingMask[sq] holds the castling rights that die when any move
// touches sq: the king squares kill both rights of their side, the
// rook corners one each. Capturing a rook on its corner clears the
// right the same way moving it does.
var castlingMask [64]CastlingRights

func init() {
	castlingMask[E1] = WhiteKingside | WhiteQueenside
	castlingMask[H1] = WhiteKingside
	castlingMask[A1] = WhiteQueenside
	castlingMask[E8] = BlackKingside | BlackQueenside
	castlingMask[H8] = BlackKingside
	castlingMask[A8] = BlackQueenside
}

// rookCastleSquares returns the rook's from/to squares for a castling
// move of the king to kingTo.
func rookCastleSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic("rookCastleSquares: not a castling destination")
}

// epVictimSquare returns the square of the pawn removed by an en
// passant capture landing on to.
func epVictimSquare(us Color, to Square) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// MakeMove applies a pseudo-legal move. The caller is responsible for
// legality; the board state stays internally consistent either way.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		castling:  p.Castling,
		enPassant: p.EnPassant,
		halfMove:  p.HalfMoveClock,
		hash:      p.Hash,
		checkers:  p.Checkers,
	}

	us := p.SideToMove
	from, to := m.From(), m.To()
	piece := m.Piece()

	p.Hash ^= castlingKey(p.Castling)
	p.Hash ^= epKey(p.EnPassant)
	p.EnPassant = NoSquare

	if piece.Type() == Pawn || m.IsCapture() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	switch m.Flag() {
	case FlagEnPassant:
		p.removePiece(m.Captured(), epVictimSquare(us, to))
		p.movePiece(piece, from, to)

	case FlagCastleKing, FlagCastleQueen:
		p.movePiece(piece, from, to)
		rf, rt := rookCastleSquares(to)
		p.movePiece(MakePiece(Rook, us), rf, rt)

	case FlagDoublePush:
		p.movePiece(piece, from, to)
		ep := (from + to) / 2
		p.EnPassant = ep
		p.Hash ^= epKey(ep)

	default:
		if cap := m.Captured(); cap != NoPiece {
			p.removePiece(cap, to)
		}
		p.movePiece(piece, from, to)
	}

	if promo := m.Promotion(); promo != NoPiece {
		p.removePiece(piece, to)
		p.putPiece(promo, to)
	}

	p.Castling &^= castlingMask[from] | castlingMask[to]
	p.Hash ^= castlingKey(p.Castling)

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
	p.Hash ^= zobristSide
	p.Checkers = p.computeCheckers()

	return undo
}

// UnmakeMove reverses the most recent MakeMove(m). It replays the
// piece operations backwards, which restores the bitboards, mailbox,
// and evaluation accumulators exactly, then reinstates the saved
// irreversible state.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	from, to := m.From(), m.To()

	if promo := m.Promotion(); promo != NoPiece {
		p.removePiece(promo, to)
		p.putPiece(m.Piece(), to)
	}

	switch m.Flag() {
	case FlagEnPassant:
		p.movePiece(m.Piece(), to, from)
		p.putPiece(m.Captured(), epVictimSquare(us, to))

	case FlagCastleKing, FlagCastleQueen:
		rf, rt := rookCastleSquares(to)
		p.movePiece(MakePiece(Rook, us), rt, rf)
		p.movePiece(m.Piece(), to, from)

	default:
		p.movePiece(m.Piece(), to, from)
		if cap := m.Captured(); cap != NoPiece {
			p.putPiece(cap, to)
		}
	}

	if us == Black {
		p.FullMoveNumber--
	}
	p.Castling = undo.castling
	p.EnPassant = undo.enPassant
	p.HalfMoveClock = undo.halfMove
	p.Hash = undo.hash
	p.Checkers = undo.checkers
}

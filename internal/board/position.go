package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a four-bit set of the still-available castlings.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// String renders the rights in FEN form ("KQkq", "-" when empty).
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range []byte{'K', 'Q', 'k', 'q'} {
		if cr&(1<<i) != 0 {
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// Has reports whether every right in want is present.
func (cr CastlingRights) Has(want CastlingRights) bool { return cr&want == want }

// Position is the complete game state. The bitboards, mailbox, hash,
// and evaluation accumulators are redundant views of the same piece
// placement; every mutation goes through putPiece/removePiece so they
// never drift apart.
type Position struct {
	byPiece  [12]Bitboard
	byColor  [2]Bitboard
	occupied Bitboard
	mailbox  [64]Piece

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int

	// Hash is the zobrist key of the current position. Checkers holds
	// the enemy pieces giving check to the side to move, refreshed at
	// the end of every make/unmake.
	Hash     uint64
	Checkers Bitboard

	// Incremental tapered-evaluation terms, per color.
	material [2]int
	mgBonus  [2]int32
	egBonus  [2]int32
	phase    int
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clear empties the board and resets all state.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for sq := range p.mailbox {
		p.mailbox[sq] = NoPiece
	}
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// PieceBB returns the bitboard of pieces of type pt belonging to c.
func (p *Position) PieceBB(c Color, pt PieceType) Bitboard {
	return p.byPiece[MakePiece(pt, c)]
}

// ColorBB returns the occupancy of all pieces of color c.
func (p *Position) ColorBB(c Color) Bitboard { return p.byColor[c] }

// Occupied returns the occupancy of the whole board.
func (p *Position) Occupied() Bitboard { return p.occupied }

// PieceAt returns the piece standing on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.mailbox[sq] }

// IsEmpty reports whether sq is unoccupied.
func (p *Position) IsEmpty(sq Square) bool { return p.mailbox[sq] == NoPiece }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.byPiece[MakePiece(King, c)].First()
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.Checkers != 0 }

// putPiece places pc on the empty square sq, updating bitboards,
// mailbox, hash, and evaluation accumulators together.
func (p *Position) putPiece(pc Piece, sq Square) {
	b := SquareBB(sq)
	c := pc.Color()
	p.byPiece[pc] |= b
	p.byColor[c] |= b
	p.occupied |= b
	p.mailbox[sq] = pc
	p.Hash ^= pieceKey(pc, sq)

	p.material[c] += pc.Value()
	s := pst(pc, sq)
	p.mgBonus[c] += int32(s.Mg)
	p.egBonus[c] += int32(s.Eg)
	p.phase += phaseValue[pc.Type()]
}

// removePiece takes pc off sq, reversing everything putPiece did.
func (p *Position) removePiece(pc Piece, sq Square) {
	b := SquareBB(sq)
	c := pc.Color()
	p.byPiece[pc] &^= b
	p.byColor[c] &^= b
	p.occupied &^= b
	p.mailbox[sq] = NoPiece
	p.Hash ^= pieceKey(pc, sq)

	p.material[c] -= pc.Value()
	s := pst(pc, sq)
	p.mgBonus[c] -= int32(s.Mg)
	p.egBonus[c] -= int32(s.Eg)
	p.phase -= phaseValue[pc.Type()]
}

// movePiece slides pc from one square to an empty one.
func (p *Position) movePiece(pc Piece, from, to Square) {
	b := SquareBB(from) | SquareBB(to)
	c := pc.Color()
	p.byPiece[pc] ^= b
	p.byColor[c] ^= b
	p.occupied ^= b
	p.mailbox[from] = NoPiece
	p.mailbox[to] = pc
	p.Hash ^= pieceKey(pc, from) ^ pieceKey(pc, to)

	sf, st := pst(pc, from), pst(pc, to)
	p.mgBonus[c] += int32(st.Mg) - int32(sf.Mg)
	p.egBonus[c] += int32(st.Eg) - int32(sf.Eg)
}

// Pinned returns the pieces of the side to move that are pinned to
// their own king: any single friendly blocker standing between the
// king and an enemy slider aligned with it.
func (p *Position) Pinned() Bitboard {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare(us)

	snipers := RookAttacks(ksq, 0)&(p.PieceBB(them, Rook)|p.PieceBB(them, Queen)) |
		BishopAttacks(ksq, 0)&(p.PieceBB(them, Bishop)|p.PieceBB(them, Queen))

	var pinned Bitboard
	for snipers != 0 {
		sq := snipers.PopFirst()
		blockers := Between(sq, ksq) & p.occupied
		if !blockers.Several() && blockers&p.byColor[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

// HasNonPawnMaterial reports whether the side to move has any piece
// besides pawns and the king. Null-move pruning is skipped without it
// because pawn endgames are riddled with zugzwang.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.SideToMove
	return p.byColor[us]&^(p.PieceBB(us, Pawn)|p.PieceBB(us, King)) != 0
}

// NullUndo carries the state MakeNullMove destroys.
type NullUndo struct {
	enPassant Square
	checkers  Bitboard
	halfMove  int
}

// MakeNullMove passes the turn without moving, for null-move pruning.
func (p *Position) MakeNullMove() NullUndo {
	undo := NullUndo{
		enPassant: p.EnPassant,
		checkers:  p.Checkers,
		halfMove:  p.HalfMoveClock,
	}
	p.Hash ^= epKey(p.EnPassant)
	p.EnPassant = NoSquare
	p.HalfMoveClock++
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSide
	p.Checkers = p.computeCheckers()
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove(undo NullUndo) {
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSide
	p.EnPassant = undo.enPassant
	p.Hash ^= epKey(p.EnPassant)
	p.HalfMoveClock = undo.halfMove
	p.Checkers = undo.checkers
}

// computeHash rebuilds the zobrist key from scratch. make/unmake keep
// the key incrementally; this exists for FEN setup and for tests that
// assert the incremental key never drifts.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		if pc := p.mailbox[sq]; pc != NoPiece {
			h ^= pieceKey(pc, sq)
		}
	}
	h ^= castlingKey(p.Castling)
	h ^= epKey(p.EnPassant)
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// String draws the position with its state line, for debugging output.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.mailbox[SquareAt(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "%v to move, castling %v, ep %v, halfmove %d, move %d\n",
		p.SideToMove, p.Castling, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	fmt.Fprintf(&sb, "hash %016x\n", p.Hash)
	return sb.String()
}

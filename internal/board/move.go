package board

import "fmt"

// Move packs a complete move description into 32 bits:
//
//	bits 0-5   origin square
//	bits 6-11  destination square
//	bits 12-15 moved piece
//	bits 16-19 captured piece (NoPiece when quiet)
//	bits 20-23 promotion piece (NoPiece when not a promotion)
//	bits 24-26 special-move flag
//
// Carrying the moved and captured pieces in the move itself lets
// make/unmake and the move orderer avoid mailbox lookups.
type Move uint32

// Special-move flags. Captures and promotions are recognized from the
// captured/promotion fields; the flag marks moves whose board effect is
// not fully described by those fields.
type MoveFlag uint8

const (
	FlagQuiet MoveFlag = iota
	FlagDoublePush
	FlagEnPassant
	FlagCastleKing
	FlagCastleQueen
)

// NoMove is the zero Move, used as a sentinel for "no move known".
const NoMove Move = 0

// NewMove assembles a move from its components. For en-passant
// captures the captured pawn is recorded even though it does not stand
// on the destination square.
func NewMove(from, to Square, piece, captured, promo Piece, flag MoveFlag) Move {
	return Move(from) |
		Move(to)<<6 |
		Move(piece)<<12 |
		Move(captured)<<16 |
		Move(promo)<<20 |
		Move(flag)<<24
}

func (m Move) From() Square     { return Square(m & 0x3F) }
func (m Move) To() Square       { return Square(m >> 6 & 0x3F) }
func (m Move) Piece() Piece     { return Piece(m >> 12 & 0xF) }
func (m Move) Captured() Piece  { return Piece(m >> 16 & 0xF) }
func (m Move) Promotion() Piece { return Piece(m >> 20 & 0xF) }
func (m Move) Flag() MoveFlag   { return MoveFlag(m >> 24 & 0x7) }

// IsCapture reports whether the move takes a piece, including en
// passant.
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion() != NoPiece }

// IsQuiet reports whether the move is neither a capture nor a
// promotion. Quiet moves are the ones tracked by the killer and
// history heuristics.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// IsCastle reports whether the move castles on either side.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// String renders the move in UCI long algebraic form ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPiece {
		s += string(pieceChars[MakePiece(p.Type(), Black)])
	}
	return s
}

// promoTypeFromChar maps a UCI promotion letter to its piece type.
func promoTypeFromChar(c byte) (PieceType, bool) {
	switch c {
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	}
	return NoPieceType, false
}

// ParseMove interprets a UCI move string against pos, reconstructing
// the piece, capture, and special-move information the encoding needs.
// The result is not legality-checked.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("bad move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece on %v", from)
	}
	captured := pos.PieceAt(to)
	promo := NoPiece
	flag := FlagQuiet

	if len(s) == 5 {
		pt, ok := promoTypeFromChar(s[4])
		if !ok {
			return NoMove, fmt.Errorf("bad promotion in %q", s)
		}
		promo = MakePiece(pt, piece.Color())
	}

	switch piece.Type() {
	case Pawn:
		if to == pos.EnPassant && captured == NoPiece {
			flag = FlagEnPassant
			captured = MakePiece(Pawn, piece.Color().Other())
		} else if from.Rank() == 1 && to.Rank() == 3 || from.Rank() == 6 && to.Rank() == 4 {
			flag = FlagDoublePush
		}
	case King:
		switch {
		case to == from+2:
			flag = FlagCastleKing
		case from == to+2:
			flag = FlagCastleQueen
		}
	}

	return NewMove(from, to, piece, captured, promo, flag), nil
}

// MoveList holds the moves generated at one node, with a parallel
// score slot per move filled in by the search's move orderer. The
// fixed backing array keeps generation allocation-free.
type MoveList struct {
	moves  [256]Move
	scores [256]int32
	count  int
}

// Add appends a move with a zero score.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves held.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Score returns the ordering score of the move at index i.
func (ml *MoveList) Score(i int) int32 { return ml.scores[i] }

// SetScore assigns the ordering score of the move at index i.
func (ml *MoveList) SetScore(i int, s int32) { ml.scores[i] = s }

// Swap exchanges two moves together with their scores.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
	ml.scores[i], ml.scores[j] = ml.scores[j], ml.scores[i]
}

// Clear empties the list for reuse.
func (ml *MoveList) Clear() { ml.count = 0 }

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

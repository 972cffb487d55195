package board

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "none"
	}
	return [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}[pt]
}

// PieceValue gives the material value of each piece type in centipawns,
// used for move ordering, exchange evaluation, and pruning margins.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece is a colored piece, encoded as type + 6*color so that it fits
// in the four-bit fields of a Move. NoPiece marks an empty square.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// MakePiece combines a piece type and color.
func MakePiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + 6*Piece(c)
}

// Type returns the colorless kind of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	if p >= BlackPawn {
		return PieceType(p - 6)
	}
	return PieceType(p)
}

// Color returns which side the piece belongs to.
func (p Piece) Color() Color {
	switch {
	case p >= NoPiece:
		return NoColor
	case p >= BlackPawn:
		return Black
	}
	return White
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int { return PieceValue[p.Type()] }

const pieceChars = "PNBRQKpnbrqk"

// String renders the piece as its FEN letter, uppercase for white.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return string(pieceChars[p])
}

// PieceFromChar maps a FEN letter to a Piece, or NoPiece when the
// letter names no piece.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}

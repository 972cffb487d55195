package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN describes the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Position from a FEN record. The halfmove clock and
// fullmove number may be omitted, as some GUIs do.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{}
	p.Clear()

	if err := p.parsePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.Castling |= WhiteKingside
			case 'Q':
				p.Castling |= WhiteQueenside
			case 'k':
				p.Castling |= BlackKingside
			case 'q':
				p.Castling |= BlackQueenside
			default:
				return nil, fmt.Errorf("fen %q: bad castling %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad en passant %q", fen, fields[3])
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("fen %q: bad halfmove clock %q", fen, fields[4])
		}
		p.HalfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fen %q: bad fullmove number %q", fen, fields[5])
		}
		p.FullMoveNumber = n
	}

	if p.PieceBB(White, King).Count() != 1 || p.PieceBB(Black, King).Count() != 1 {
		return nil, fmt.Errorf("fen %q: each side needs exactly one king", fen)
	}
	if (p.PieceBB(White, Pawn)|p.PieceBB(Black, Pawn))&(Rank1BB|Rank8BB) != 0 {
		return nil, fmt.Errorf("fen %q: pawn on a back rank", fen)
	}

	// putPiece accumulated the piece keys already; fold in the rest of
	// the state and the derived fields.
	p.Hash ^= castlingKey(p.Castling)
	p.Hash ^= epKey(p.EnPassant)
	if p.SideToMove == Black {
		p.Hash ^= zobristSide
	}
	p.Checkers = p.computeCheckers()

	return p, nil
}

func (p *Position) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("want 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc := PieceFromChar(c)
			if pc == NoPiece {
				return fmt.Errorf("bad piece letter %q", c)
			}
			if file > 7 {
				return fmt.Errorf("rank %d overflows", rank+1)
			}
			p.putPiece(pc, SquareAt(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d has %d squares", rank+1, file)
		}
	}
	return nil
}

// FEN renders the position as a FEN record.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.mailbox[SquareAt(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := " w "
	if p.SideToMove == Black {
		side = " b "
	}
	sb.WriteString(side)
	sb.WriteString(p.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}

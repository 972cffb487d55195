package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares packed into 64 bits, one bit per square
// in little-endian rank-file order: bit 0 is A1, bit 63 is H8.
type Bitboard uint64

const (
	FileABB Bitboard = 0x0101010101010101 << iota
	FileBBB
	FileCBB
	FileDBB
	FileEBB
	FileFBB
	FileGBB
	FileHBB
)

const (
	Rank1BB Bitboard = 0xFF << (8 * iota)
	Rank2BB
	Rank3BB
	Rank4BB
	Rank5BB
	Rank6BB
	Rank7BB
	Rank8BB
)

// SquareBB returns the bitboard with only sq set.
func SquareBB(sq Square) Bitboard { return 1 << sq }

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&(1<<sq) != 0 }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// IsEmpty reports whether no squares are set.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// Several reports whether more than one square is set.
func (b Bitboard) Several() bool { return b&(b-1) != 0 }

// First returns the lowest set square, or NoSquare for the empty set.
func (b Bitboard) First() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopFirst removes and returns the lowest set square.
func (b *Bitboard) PopFirst() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// Directional single-step shifts. East/west steps mask off the wrapped
// file so pieces never slide around the board edge.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return (b &^ FileHBB) << 1 }
func (b Bitboard) West() Bitboard  { return (b &^ FileABB) >> 1 }

func (b Bitboard) NorthEast() Bitboard { return (b &^ FileHBB) << 9 }
func (b Bitboard) NorthWest() Bitboard { return (b &^ FileABB) << 7 }
func (b Bitboard) SouthEast() Bitboard { return (b &^ FileHBB) >> 7 }
func (b Bitboard) SouthWest() Bitboard { return (b &^ FileABB) >> 9 }

// String draws the set as an 8x8 grid from white's point of view.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < 8; file++ {
			if b.Has(SquareAt(file, rank)) {
				sb.WriteString(" X")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

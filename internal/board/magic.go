package board

// Fancy magic bitboards for sliding-piece attacks. Each square has its
// own densely packed table region whose width depends on the number of
// relevant occupancy bits, so the bishop and rook tables together stay
// near 840KB instead of a fixed worst-case size per square.
//
// The magic multipliers are generated offline by cmd/sand-magics and
// embedded here; only the attack tables themselves are rebuilt at
// startup from the ray-cast reference generators.

// Magic holds the lookup parameters for one square.
type Magic struct {
	Mask   Bitboard // relevant blocker squares (board edges excluded)
	Magic  uint64   // multiplier mapping masked occupancy to an index
	Shift  uint8    // 64 minus the number of relevant bits
	Offset uint32   // start of this square's region in the shared table
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var (
	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirections   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
)

// SlowBishopAttacks walks the four diagonal rays from sq, stopping at
// the first blocker in each. It is the reference the magic tables are
// built from and verified against.
func SlowBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slowSlidingAttacks(sq, occupied, &bishopDirections)
}

// SlowRookAttacks walks the four orthogonal rays from sq.
func SlowRookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slowSlidingAttacks(sq, occupied, &rookDirections)
}

func slowSlidingAttacks(sq Square, occupied Bitboard, dirs *[4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			s := SquareAt(f, r)
			attacks |= SquareBB(s)
			if occupied.Has(s) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

// BishopMask returns the relevant blocker mask for a bishop on sq.
// Edge squares are dropped since a blocker there cannot shorten the
// attack ray any further.
func BishopMask(sq Square) Bitboard {
	return SlowBishopAttacks(sq, 0) &^ (Rank1BB | Rank8BB | FileABB | FileHBB)
}

// RookMask returns the relevant blocker mask for a rook on sq. The
// excluded edge square differs per ray, so each ray keeps all but its
// final square.
func RookMask(sq Square) Bitboard {
	mask := SlowRookAttacks(sq, 0)
	if sq.Rank() != 0 {
		mask &^= Rank1BB
	}
	if sq.Rank() != 7 {
		mask &^= Rank8BB
	}
	if sq.File() != 0 {
		mask &^= FileABB
	}
	if sq.File() != 7 {
		mask &^= FileHBB
	}
	return mask
}

// OccupancySubset expands subset index i over the set squares of mask:
// bit k of i decides whether the k-th lowest square of mask is
// occupied. Iterating i over [0, 2^popcount(mask)) enumerates every
// blocker arrangement.
func OccupancySubset(i int, mask Bitboard) Bitboard {
	var occ Bitboard
	for k := 0; mask != 0; k++ {
		sq := mask.PopFirst()
		if i&(1<<k) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

func initMagicTables() {
	fillMagicTable(&bishopMagics, &bishopMagicNumbers, bishopTable[:], BishopMask, SlowBishopAttacks)
	fillMagicTable(&rookMagics, &rookMagicNumbers, rookTable[:], RookMask, SlowRookAttacks)
}

func fillMagicTable(
	magics *[64]Magic,
	numbers *[64]uint64,
	table []Bitboard,
	mask func(Square) Bitboard,
	slow func(Square, Bitboard) Bitboard,
) {
	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		m := mask(sq)
		bits := m.Count()
		magics[sq] = Magic{
			Mask:   m,
			Magic:  numbers[sq],
			Shift:  uint8(64 - bits),
			Offset: offset,
		}
		for i := 0; i < 1<<bits; i++ {
			occ := OccupancySubset(i, m)
			idx := (uint64(occ) * numbers[sq]) >> (64 - bits)
			table[offset+uint32(idx)] = slow(sq, occ)
		}
		offset += 1 << bits
	}
}

// BishopAttacks returns the bishop attack set for sq under the given
// occupancy via magic lookup.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := (uint64(occupied&m.Mask) * m.Magic) >> m.Shift
	return bishopTable[m.Offset+uint32(idx)]
}

// RookAttacks returns the rook attack set for sq under the given
// occupancy via magic lookup.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := (uint64(occupied&m.Mask) * m.Magic) >> m.Shift
	return rookTable[m.Offset+uint32(idx)]
}

// QueenAttacks combines the rook and bishop attack sets.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

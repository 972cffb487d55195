package board

// Zobrist keys. Generated once at startup from a fixed seed so hashes
// are stable across runs, which the tests rely on.
var (
	zobristPiece    [12][64]uint64
	zobristCastling [16]uint64
	zobristEPFile   [8]uint64
	zobristSide     uint64
)

// zobristRand is an xorshift64* generator. The multiplier and shifts
// are the standard Vigna constants.
type zobristRand struct{ s uint64 }

func (r *zobristRand) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 0x2545F4914F6CDD1D
}

func init() {
	r := zobristRand{s: 0x9E3779B97F4A7C15}
	for p := WhitePawn; p < NoPiece; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = r.next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = r.next()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = r.next()
	}
	zobristSide = r.next()
}

// pieceKey returns the hash key for piece p standing on sq.
func pieceKey(p Piece, sq Square) uint64 { return zobristPiece[p][sq] }

// castlingKey returns the hash key for a castling-rights combination.
func castlingKey(cr CastlingRights) uint64 { return zobristCastling[cr&0xF] }

// epKey returns the hash key for an en-passant target square, keyed by
// file only since the rank is implied by the side to move.
func epKey(sq Square) uint64 {
	if !sq.IsValid() {
		return 0
	}
	return zobristEPFile[sq.File()]
}

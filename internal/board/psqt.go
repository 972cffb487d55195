package board

// Tapered-evaluation terms maintained incrementally on the Position.
// The tables live here rather than in the engine package because every
// putPiece/removePiece must touch the accumulators, and make/unmake is
// board code.

// taperedScore pairs a midgame and an endgame value in centipawns.
type taperedScore struct {
	Mg, Eg int16
}

// phaseValue weights each piece type's contribution to the game phase.
// The starting position sums to totalPhase; a bare-kings endgame is 0.
var phaseValue = [6]int{0, 1, 1, 2, 4, 0}

// TotalPhase is the phase of the starting position: four each of
// knights, bishops, and rooks plus two queens.
const TotalPhase = 4*1 + 4*1 + 4*2 + 2*4

// pstIndex maps a board square to its piece-square-table row. The
// tables are written eighth rank first, so white flips.
func pstIndex(c Color, sq Square) Square {
	if c == White {
		return sq.Flip()
	}
	return sq
}

// pst returns the piece-square bonus for piece p standing on sq.
func pst(p Piece, sq Square) taperedScore {
	return pieceSquareTable[p.Type()][pstIndex(p.Color(), sq)]
}

// EvalTerms exposes the incremental accumulators: material and
// piece-square sums from white's point of view, and the current phase
// clamped to [0, TotalPhase]. Promotions can push the raw phase above
// TotalPhase, which the clamp absorbs.
func (p *Position) EvalTerms() (material, mg, eg, phase int) {
	phase = p.phase
	if phase > TotalPhase {
		phase = TotalPhase
	}
	return p.material[White] - p.material[Black],
		int(p.mgBonus[White]) - int(p.mgBonus[Black]),
		int(p.egBonus[White]) - int(p.egBonus[Black]),
		phase
}

// recomputeEvalTerms rebuilds the accumulators from the piece
// placement. Used when setting up a position from FEN and by tests
// verifying the incremental updates.
func (p *Position) recomputeEvalTerms() {
	p.material = [2]int{}
	p.mgBonus = [2]int32{}
	p.egBonus = [2]int32{}
	p.phase = 0
	for sq := A1; sq <= H8; sq++ {
		pc := p.mailbox[sq]
		if pc == NoPiece {
			continue
		}
		c := pc.Color()
		p.material[c] += pc.Value()
		s := pst(pc, sq)
		p.mgBonus[c] += int32(s.Mg)
		p.egBonus[c] += int32(s.Eg)
		p.phase += phaseValue[pc.Type()]
	}
}

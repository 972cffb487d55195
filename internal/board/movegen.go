package board

// Legal move generation. Moves are generated pseudo-legally per piece
// and then filtered: with the pinned set and the checkers bitboard in
// hand almost every move can be proven legal without touching the
// board, and only the en-passant edge case falls back to make/unmake.

// GenerateMoves returns every legal move for the side to move.
func (p *Position) GenerateMoves() *MoveList {
	ml := &MoveList{}
	p.generatePseudoLegal(ml, false)
	return p.keepLegal(ml)
}

// GenerateCaptures returns the legal captures and promotions, the
// move set quiescence search explores.
func (p *Position) GenerateCaptures() *MoveList {
	ml := &MoveList{}
	p.generatePseudoLegal(ml, true)
	return p.keepLegal(ml)
}

// generatePseudoLegal fills ml with moves that respect piece movement
// but may leave the own king in check. With capturesOnly set, quiet
// moves other than promotions are skipped.
func (p *Position) generatePseudoLegal(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	occupied := p.occupied
	enemies := p.byColor[us.Other()]

	targets := ^p.byColor[us]
	if capturesOnly {
		targets = enemies
	}

	p.generatePawnMoves(ml, capturesOnly)

	for pt := Knight; pt <= Queen; pt++ {
		piece := MakePiece(pt, us)
		pieces := p.byPiece[piece]
		for pieces != 0 {
			from := pieces.PopFirst()
			attacks := PieceAttacks(pt, from, occupied) & targets
			for attacks != 0 {
				to := attacks.PopFirst()
				ml.Add(NewMove(from, to, piece, p.mailbox[to], NoPiece, FlagQuiet))
			}
		}
	}

	king := MakePiece(King, us)
	from := p.byPiece[king].First()
	attacks := KingAttacks(from) & targets
	for attacks != 0 {
		to := attacks.PopFirst()
		ml.Add(NewMove(from, to, king, p.mailbox[to], NoPiece, FlagQuiet))
	}

	if !capturesOnly {
		p.generateCastles(ml)
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	pawn := MakePiece(Pawn, us)
	pawns := p.byPiece[pawn]
	empty := ^p.occupied
	enemies := p.byColor[us.Other()]

	var push1, push2, capsWest, capsEast, lastRank Bitboard
	var up int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3BB).North() & empty
		capsWest = pawns.NorthWest() & enemies
		capsEast = pawns.NorthEast() & enemies
		lastRank = Rank8BB
		up = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6BB).South() & empty
		capsWest = pawns.SouthWest() & enemies
		capsEast = pawns.SouthEast() & enemies
		lastRank = Rank1BB
		up = -8
	}

	addPawn := func(from, to Square, flag MoveFlag) {
		captured := p.mailbox[to]
		if SquareBB(to)&lastRank != 0 {
			for pt := Queen; pt >= Knight; pt-- {
				promo := MakePiece(pt, us)
				ml.Add(NewMove(from, to, pawn, captured, promo, flag))
			}
			return
		}
		ml.Add(NewMove(from, to, pawn, captured, NoPiece, flag))
	}

	// Push promotions count as tactical even without a capture, so
	// they are emitted in both modes.
	for b := push1 & lastRank; b != 0; {
		to := b.PopFirst()
		addPawn(Square(int(to)-up), to, FlagQuiet)
	}

	if !capturesOnly {
		for b := push1 &^ lastRank; b != 0; {
			to := b.PopFirst()
			addPawn(Square(int(to)-up), to, FlagQuiet)
		}
		for b := push2; b != 0; {
			to := b.PopFirst()
			ml.Add(NewMove(Square(int(to)-2*up), to, pawn, NoPiece, NoPiece, FlagDoublePush))
		}
	}

	for b := capsWest; b != 0; {
		to := b.PopFirst()
		addPawn(Square(int(to)-up+1), to, FlagQuiet)
	}
	for b := capsEast; b != 0; {
		to := b.PopFirst()
		addPawn(Square(int(to)-up-1), to, FlagQuiet)
	}
	if p.EnPassant != NoSquare {
		victim := MakePiece(Pawn, us.Other())
		attackers := PawnAttacks(us.Other(), p.EnPassant) & pawns
		for attackers != 0 {
			from := attackers.PopFirst()
			ml.Add(NewMove(from, p.EnPassant, pawn, victim, NoPiece, FlagEnPassant))
		}
	}
}

// generateCastles emits castling moves with the path conditions fully
// checked here: rights intact, squares between king and rook empty,
// and no square the king crosses (including where it stands and where
// it lands) attacked.
func (p *Position) generateCastles(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	king := MakePiece(King, us)

	type castle struct {
		right      CastlingRights
		kFrom, kTo Square
		emptyBB    Bitboard
		flag       MoveFlag
	}
	var sides [2]castle
	if us == White {
		sides = [2]castle{
			{WhiteKingside, E1, G1, SquareBB(F1) | SquareBB(G1), FlagCastleKing},
			{WhiteQueenside, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), FlagCastleQueen},
		}
	} else {
		sides = [2]castle{
			{BlackKingside, E8, G8, SquareBB(F8) | SquareBB(G8), FlagCastleKing},
			{BlackQueenside, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), FlagCastleQueen},
		}
	}

	for _, c := range sides {
		if !p.Castling.Has(c.right) || p.occupied&c.emptyBB != 0 {
			continue
		}
		path := Between(c.kFrom, c.kTo) | SquareBB(c.kFrom) | SquareBB(c.kTo)
		attacked := false
		for b := path; b != 0; {
			if p.IsAttacked(b.PopFirst(), them) {
				attacked = true
				break
			}
		}
		if !attacked {
			ml.Add(NewMove(c.kFrom, c.kTo, king, NoPiece, NoPiece, c.flag))
		}
	}
}

// keepLegal filters ml in place down to the legal moves.
func (p *Position) keepLegal(ml *MoveList) *MoveList {
	pinned := p.Pinned()
	n := 0
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.isLegal(m, pinned) {
			ml.moves[n] = m
			n++
		}
	}
	ml.count = n
	return ml
}

// isLegal decides legality of a pseudo-legal move given the
// precomputed pinned set. Non-king, non-pinned, non-en-passant moves
// need no board mutation: out of check they are legal outright, and in
// single check it suffices that they land on the check ray or capture
// the checker.
func (p *Position) isLegal(m Move, pinned Bitboard) bool {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	ksq := p.KingSquare(us)

	if from == ksq {
		if m.IsCastle() {
			// Path attacks were checked at generation time.
			return p.Checkers == 0
		}
		occ := p.occupied &^ SquareBB(from)
		return p.Attackers(them, to, occ) == 0
	}

	if m.Flag() == FlagEnPassant {
		// Removing two pawns from one rank can uncover a rook or
		// queen behind them; only make/unmake sees that reliably.
		return p.isLegalEnPassant(m)
	}

	if p.Checkers != 0 {
		if p.Checkers.Several() {
			return false
		}
		checker := p.Checkers.First()
		if SquareBB(to)&(SquareBB(checker)|Between(checker, ksq)) == 0 {
			return false
		}
	}

	if pinned.Has(from) {
		return Aligned(from, to, ksq)
	}
	return true
}

func (p *Position) isLegalEnPassant(m Move) bool {
	us := p.SideToMove
	ksq := p.KingSquare(us)
	undo := p.MakeMove(m)
	legal := !p.IsAttacked(ksq, us.Other())
	p.UnmakeMove(m, undo)
	return legal
}

// IsPseudoLegalValid verifies that a move handed in from outside the
// generator (a transposition-table or killer suggestion) is in fact
// legal here. Reused move indices after a key collision make this
// check mandatory before trusting such a move.
func (p *Position) IsPseudoLegalValid(m Move) bool {
	if m == NoMove {
		return false
	}
	piece := m.Piece()
	if piece == NoPiece || piece.Color() != p.SideToMove || p.mailbox[m.From()] != piece {
		return false
	}
	return p.GenerateMoves().Contains(m)
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	ml := &MoveList{}
	p.generatePseudoLegal(ml, false)
	pinned := p.Pinned()
	for i := 0; i < ml.Len(); i++ {
		if p.isLegal(ml.Get(i), pinned) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveDraw reports whether the fifty-move counter has run out.
func (p *Position) IsFiftyMoveDraw() bool { return p.HalfMoveClock >= 100 }

// IsInsufficientMaterial reports whether neither side retains mating
// material: bare kings, or king and one minor piece against a king.
func (p *Position) IsInsufficientMaterial() bool {
	if p.PieceBB(White, Pawn)|p.PieceBB(Black, Pawn)|
		p.PieceBB(White, Rook)|p.PieceBB(Black, Rook)|
		p.PieceBB(White, Queen)|p.PieceBB(Black, Queen) != 0 {
		return false
	}
	wMinors := (p.PieceBB(White, Knight) | p.PieceBB(White, Bishop)).Count()
	bMinors := (p.PieceBB(Black, Knight) | p.PieceBB(Black, Bishop)).Count()
	return wMinors+bMinors <= 1
}

package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/p1x3r/sand/internal/board"
)

// Score bounds. Mate scores are encoded as MateScore minus the ply at
// which the mate is delivered, so shorter mates score higher.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128

	// MateInMaxPly separates mate scores from positional ones.
	MateInMaxPly = MateScore - 2*MaxPly
)

// SearchMode is the externally visible state of a running search,
// held in an atomic shared with the protocol adapter.
type SearchMode int32

const (
	ModeNormal    SearchMode = iota
	ModePonder               // clock suspended, thinking on the predicted move
	ModePonderHit            // prediction came true, start the clock
	ModeStop                 // abort as soon as possible
)

// Info reports one completed iteration of the deepening loop.
type Info struct {
	Depth    int
	SelDepth int
	Score    int
	Nodes    uint64
	Time     time.Duration
	HashFull int
	PV       []board.Move
}

// Result is the outcome of a finished search.
type Result struct {
	Best   board.Move
	Ponder board.Move
	Score  int
}

// lmpThreshold caps how many quiet moves are tried at shallow depths
// before the rest are skipped.
var lmpThreshold = [8]int{0, 3, 5, 9, 15, 23, 33, 45}

// lmrTable holds precomputed logarithmic late-move reductions indexed
// by depth and move number.
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int(0.75 + math.Log(float64(d))*math.Log(float64(m))/2.25)
		}
	}
}

// Searcher runs a single search on a private copy of the position. It
// is built fresh per search; the transposition table, orderer, and
// mode atomic are shared state owned by the Engine.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer
	mode    *atomic.Int32

	limits Limits
	tm     TimeManager
	us     board.Color
	onInfo func(Info)

	// Zobrist hashes of every position since game start, the current
	// one last. Repetition detection scans this stack.
	history []uint64

	pv       PVTable
	nodes    uint64
	seldepth int
	aborted  bool
}

// PVTable is the triangular principal-variation store: row ply holds
// the best line found from that ply.
type PVTable struct {
	length [MaxPly + 1]int
	moves  [MaxPly + 1][MaxPly]board.Move
}

// NewSearcher wires a searcher to the engine's shared state.
func NewSearcher(tt *TranspositionTable, orderer *MoveOrderer, mode *atomic.Int32) *Searcher {
	return &Searcher{tt: tt, orderer: orderer, mode: mode}
}

// Search runs iterative deepening on a copy of pos and returns the
// best move of the last fully completed iteration. history carries the
// game's zobrist hashes up to and including pos; onInfo, if non-nil,
// is called once per completed depth.
func (s *Searcher) Search(pos *board.Position, history []uint64, limits Limits, onInfo func(Info)) Result {
	s.pos = pos.Copy()
	s.limits = limits
	s.onInfo = onInfo
	s.nodes = 0
	s.seldepth = 0
	s.aborted = false

	s.history = make([]uint64, 0, len(history)+MaxPly)
	s.history = append(s.history, history...)
	if len(s.history) == 0 || s.history[len(s.history)-1] != s.pos.Hash {
		s.history = append(s.history, s.pos.Hash)
	}

	s.us = s.pos.SideToMove
	s.tm.Start(limits, s.us)

	maxDepth := MaxPly - 1
	if limits.Depth > 0 && limits.Depth < maxDepth {
		maxDepth = limits.Depth
	}

	// Something sane to play even if depth 1 gets aborted.
	result := Result{Best: firstLegalMove(s.pos), Score: -Infinity}

	const aspirationWindow = 50
	for depth := 1; depth <= maxDepth; depth++ {
		alpha, beta := -Infinity, Infinity
		if depth >= 5 {
			alpha = result.Score - aspirationWindow
			beta = result.Score + aspirationWindow
		}

		var score int
		for {
			score = s.negamax(depth, 0, alpha, beta)
			if s.aborted {
				break
			}
			// Fail soft out of the window: re-search with the failed
			// side opened fully.
			if score <= alpha {
				alpha = -Infinity
			} else if score >= beta {
				beta = Infinity
			} else {
				break
			}
		}
		if s.aborted {
			break
		}

		result.Score = score
		if s.pv.length[0] > 0 {
			result.Best = s.pv.moves[0][0]
			result.Ponder = board.NoMove
			if s.pv.length[0] > 1 {
				result.Ponder = s.pv.moves[0][1]
			}
		}
		s.report(depth, score)

		if score >= MateInMaxPly || score <= -MateInMaxPly {
			break
		}
		if s.softStop() {
			break
		}
	}

	return result
}

// Nodes returns the node count of the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

func (s *Searcher) report(depth, score int) {
	if s.onInfo == nil {
		return
	}
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	s.onInfo(Info{
		Depth:    depth,
		SelDepth: s.seldepth,
		Score:    score,
		Nodes:    s.nodes,
		Time:     s.tm.Elapsed(),
		HashFull: s.tt.HashFull(),
		PV:       pv,
	})
}

// stopNow is the per-node cancellation check, consulted every 4096
// nodes. While pondering the clock is suspended; a ponderhit restarts
// it from that instant.
func (s *Searcher) stopNow() bool {
	switch SearchMode(s.mode.Load()) {
	case ModeStop:
		return true
	case ModePonder:
		return false
	case ModePonderHit:
		s.tm.Start(s.limits, s.us)
		s.mode.Store(int32(ModeNormal))
	}
	if s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		return true
	}
	return s.tm.HardExpired()
}

// softStop decides between iterations whether starting another one is
// worthwhile.
func (s *Searcher) softStop() bool {
	mode := SearchMode(s.mode.Load())
	if mode == ModeStop {
		return true
	}
	if mode == ModePonder {
		return false
	}
	if s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		return true
	}
	return s.tm.SoftExpired()
}

// isDraw reports whether the current node is drawn by the fifty-move
// rule, insufficient material, or repetition. A single earlier
// occurrence counts: if a position repeats once inside the tree it can
// repeat forever.
func (s *Searcher) isDraw() bool {
	if s.pos.IsFiftyMoveDraw() || s.pos.IsInsufficientMaterial() {
		return true
	}
	hash := s.pos.Hash
	// Skip the current position (last element); only positions since
	// the last irreversible move can repeat.
	limit := len(s.history) - 1 - s.pos.HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(s.history) - 3; i >= limit; i -= 2 {
		if s.history[i] == hash {
			return true
		}
	}
	return false
}

func firstLegalMove(pos *board.Position) board.Move {
	moves := pos.GenerateMoves()
	if moves.Len() == 0 {
		return board.NoMove
	}
	return moves.Get(0)
}

// negamax is the alpha-beta search. Scores are from the side to move's
// point of view; an aborted subtree returns 0 and the caller must
// check s.aborted before trusting any score.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopNow() {
		s.aborted = true
	}
	if s.aborted {
		return 0
	}
	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}

	s.pv.length[ply] = ply

	if ply >= MaxPly-1 {
		return Evaluate(s.pos)
	}

	root := ply == 0
	if !root {
		if s.isDraw() {
			return 0
		}

		// Mate-distance pruning: no mate found from here can beat one
		// already proven closer to the root.
		if alpha < -MateScore+ply {
			alpha = -MateScore + ply
		}
		if beta > MateScore-ply {
			beta = MateScore - ply
		}
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := s.pos.InCheck()
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	var ttMove board.Move
	if entry, ok := s.tt.Probe(s.pos.Hash); ok {
		ttMove = entry.Move
		if ttMove != board.NoMove && !s.pos.IsPseudoLegalValid(ttMove) {
			ttMove = board.NoMove
		}
		if !root && int(entry.Depth) >= depth {
			score := scoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLower:
				alpha = max(alpha, score)
			case TTUpper:
				beta = min(beta, score)
			}
			if alpha >= beta {
				return score
			}
		}
	}

	staticEval := 0
	if !inCheck {
		staticEval = Evaluate(s.pos)
	}

	// Null-move pruning: hand the opponent a free move; if the
	// position still fails high at reduced depth, a real move will
	// too. Unsound in check and in pawn-only endgames, where zugzwang
	// is the point.
	if !root && !inCheck && depth >= 3 && staticEval >= beta &&
		beta > -MateInMaxPly && s.pos.HasNonPawnMaterial() {
		r := 2 + depth/4
		undo := s.pos.MakeNullMove()
		score := -s.negamax(depth-1-r, ply+1, -beta, -beta+1)
		s.pos.UnmakeNullMove(undo)
		if s.aborted {
			return 0
		}
		if score >= beta {
			if score >= MateInMaxPly {
				score = beta
			}
			return score
		}
	}

	// Futility: at shallow depth with the static eval hopelessly below
	// alpha, quiets cannot help.
	futile := false
	if !root && !inCheck && depth <= 3 {
		margins := [4]int{0, 200, 300, 500}
		futile = staticEval+margins[depth] <= alpha
	}

	moves := s.pos.GenerateMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}
	s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	var quietsTried [64]board.Move
	quietCount := 0

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpper
	searched := 0

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(moves, i)
		quiet := m.IsQuiet()

		// Shallow-depth quiet pruning, never before a move has been
		// searched so the node always has a real score, and never
		// inside a mate window where a skipped quiet could be the
		// mating move.
		if !root && quiet && !inCheck && searched > 0 && m != ttMove &&
			alpha > -MateInMaxPly && beta < MateInMaxPly {
			if futile {
				continue
			}
			if depth < len(lmpThreshold) && searched >= lmpThreshold[depth] {
				continue
			}
		}

		undo := s.pos.MakeMove(m)
		s.history = append(s.history, s.pos.Hash)
		searched++

		newDepth := depth - 1
		var score int
		if searched == 1 {
			score = -s.negamax(newDepth, ply+1, -beta, -alpha)
		} else {
			// Late-move reductions for quiets ordered far down the
			// list, then PVS: null-window first, full re-search only
			// if the move beats alpha.
			reduction := 0
			if quiet && !inCheck && depth >= 3 && searched > 4 {
				reduction = lmrTable[min(depth, 63)][min(searched, 63)]
				if reduction > newDepth-1 {
					reduction = newDepth - 1
				}
				if reduction < 0 {
					reduction = 0
				}
			}

			score = -s.negamax(newDepth-reduction, ply+1, -alpha-1, -alpha)
			if score > alpha && reduction > 0 {
				score = -s.negamax(newDepth, ply+1, -alpha-1, -alpha)
			}
			if score > alpha && score < beta {
				score = -s.negamax(newDepth, ply+1, -beta, -alpha)
			}
		}

		s.history = s.history[:len(s.history)-1]
		s.pos.UnmakeMove(m, undo)

		if s.aborted {
			return 0
		}

		if quiet && quietCount < len(quietsTried) {
			quietsTried[quietCount] = m
			quietCount++
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = TTExact

				s.pv.moves[ply][ply] = m
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			if quiet {
				s.orderer.UpdateKillers(m, ply)
				s.orderer.UpdateQuietHistory(s.pos.SideToMove, m, depth, true)
				// The quiets tried before the cutoff move failed to
				// produce it; push them down.
				for j := 0; j < quietCount-1; j++ {
					s.orderer.UpdateQuietHistory(s.pos.SideToMove, quietsTried[j], depth, false)
				}
			}
			s.tt.Store(s.pos.Hash, depth, scoreToTT(score, ply), TTLower, m)
			return score
		}
	}

	s.tt.Store(s.pos.Hash, depth, scoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// quiescence resolves captures until the position is quiet, so the
// evaluation is never taken in the middle of an exchange. In check it
// searches every evasion instead.
func (s *Searcher) quiescence(ply, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopNow() {
		s.aborted = true
	}
	if s.aborted {
		return 0
	}
	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}

	if ply >= MaxPly-1 {
		return Evaluate(s.pos)
	}

	inCheck := s.pos.InCheck()

	var moves *board.MoveList
	standPat := -Infinity
	bestScore := -Infinity

	if inCheck {
		moves = s.pos.GenerateMoves()
		if moves.Len() == 0 {
			return -MateScore + ply
		}
	} else {
		standPat = Evaluate(s.pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		bestScore = standPat

		// Delta pruning: even winning a queen cannot lift alpha.
		const deltaMargin = 75
		if standPat+board.PieceValue[board.Queen]+deltaMargin < alpha {
			return alpha
		}

		moves = s.pos.GenerateCaptures()
	}

	s.orderer.ScoreMoves(s.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(moves, i)

		if !inCheck {
			// Per-move delta: the captured material plus a safety
			// margin still leaves us below alpha.
			gain := 0
			if captured := m.Captured(); captured != board.NoPiece {
				gain = captured.Value()
			}
			if m.IsPromotion() {
				gain += m.Promotion().Value() - board.PieceValue[board.Pawn]
			}
			if standPat+gain+200 <= alpha {
				continue
			}
			if SEE(s.pos, m) < 0 {
				continue
			}
		}

		undo := s.pos.MakeMove(m)
		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if s.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return bestScore
}

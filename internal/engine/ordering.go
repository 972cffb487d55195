package engine

import (
	"github.com/p1x3r/sand/internal/board"
)

// Ordering buckets. The hash move is tried first, then captures and
// promotions that SEE says win or break even, then killers, then
// quiets by history. Losing captures sink below every quiet.
const (
	scoreTTMove      int32 = 2_000_000
	scoreGoodCapture int32 = 1_000_000
	scoreKiller1     int32 = 900_000
	scoreKiller2     int32 = 890_000
	scoreBadCapture  int32 = -100_000
)

// historyMax caps quiet history scores; the gravity update keeps them
// inside (-historyMax, historyMax).
const historyMax = 8192

// MoveOrderer holds the heuristic state used to sort moves: two killer
// slots per ply and a (side, piece, target) history table.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [2][6][64]int32
}

// NewMoveOrderer creates an orderer with empty heuristics.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// NewSearch resets the killer slots. History persists between searches
// of the same game; it keeps paying off in neighbouring positions.
func (mo *MoveOrderer) NewSearch() {
	for ply := range mo.killers {
		mo.killers[ply][0] = board.NoMove
		mo.killers[ply][1] = board.NoMove
	}
}

// NewGame resets killers and halves the history scores, so stale
// preferences fade without discarding everything learned.
func (mo *MoveOrderer) NewGame() {
	mo.NewSearch()
	for c := range mo.history {
		for pt := range mo.history[c] {
			for to := range mo.history[c][pt] {
				mo.history[c][pt][to] /= 2
			}
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) {
	for i := 0; i < moves.Len(); i++ {
		moves.SetScore(i, mo.scoreMove(pos, moves.Get(i), ply, ttMove))
	}
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int32 {
	if m == ttMove {
		return scoreTTMove
	}

	if m.IsCapture() || m.IsPromotion() {
		tactical := int32(0)
		if captured := m.Captured(); captured != board.NoPiece {
			// MVV-LVA: biggest victim first, cheapest attacker breaks
			// ties.
			tactical = int32(10*captured.Value() - m.Piece().Value())
		}
		if m.IsPromotion() {
			tactical += int32(m.Promotion().Value())
		}
		if SEE(pos, m) >= 0 {
			return scoreGoodCapture + tactical
		}
		return scoreBadCapture + tactical
	}

	if m == mo.killers[ply][0] {
		return scoreKiller1
	}
	if m == mo.killers[ply][1] {
		return scoreKiller2
	}
	return mo.history[pos.SideToMove][m.Piece().Type()][m.To()]
}

// PickMove selection-sorts lazily: it moves the best remaining move to
// index and leaves the rest unsorted. Most nodes cut off after a move
// or two, so fully sorting the list would be wasted work.
func PickMove(moves *board.MoveList, index int) board.Move {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if moves.Score(j) > moves.Score(best) {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
	}
	return moves.Get(index)
}

// UpdateKillers records a quiet move that caused a beta cutoff.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateQuietHistory rewards or punishes a quiet move with a
// depth-squared bonus. The gravity form pulls scores toward the cap
// proportionally to the remaining headroom, so the table saturates
// instead of overflowing.
func (mo *MoveOrderer) UpdateQuietHistory(c board.Color, m board.Move, depth int, good bool) {
	bonus := depth * depth
	if bonus > historyMax {
		bonus = historyMax
	}
	if !good {
		bonus = -bonus
	}

	h := &mo.history[c][m.Piece().Type()][m.To()]
	magnitude := bonus
	if magnitude < 0 {
		magnitude = -magnitude
	}
	*h += int32(bonus) - *h*int32(magnitude)/historyMax
}

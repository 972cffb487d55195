// Package uci speaks the Universal Chess Interface on stdin/stdout
// and drives the engine from it. It is the only package that does
// terminal I/O; the engine itself reports through a callback.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/p1x3r/sand/internal/board"
	"github.com/p1x3r/sand/internal/engine"
)

// UCI holds the adapter state between commands: the game position, its
// hash history for repetition detection, and the running search if
// any.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	history  []uint64

	// Closed when the search goroutine finishes; nil while idle.
	searchDone chan struct{}
}

// New creates an adapter around eng, set up at the starting position.
func New(eng *engine.Engine) *UCI {
	u := &UCI{engine: eng}
	u.setStartpos()
	u.engine.OnInfo = u.sendInfo
	return u
}

func (u *UCI) setStartpos() {
	u.position = board.StartingPosition()
	u.history = []uint64{u.position.Hash}
}

// Run reads commands until EOF or quit.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<20)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			fmt.Println("id name Sand")
			fmt.Println("id author P1x3r")
			fmt.Println()
			fmt.Println("option name Ponder type check default false")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "setoption":
			// No runtime-configurable options.
		case "ucinewgame":
			u.waitSearch()
			u.engine.NewGame()
			u.setStartpos()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "ponderhit":
			u.engine.PonderHit()
		case "stop":
			u.engine.Stop()
			u.waitSearch()
		case "d":
			fmt.Println(u.position.String())
		case "quit":
			u.engine.Stop()
			u.waitSearch()
			return
		default:
			fmt.Println("info string unknown command")
		}
	}
}

// waitSearch blocks until the search goroutine, if any, has printed
// its bestmove.
func (u *UCI) waitSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}

// handlePosition sets up the game position:
//
//	position startpos [moves e2e4 ...]
//	position fen <fen> [moves e2e4 ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.setStartpos()
	case "fen":
		pos, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		u.position = pos
		u.history = []uint64{pos.Hash}
	default:
		return
	}

	for _, s := range args[min(movesAt+1, len(args)):] {
		m, err := board.ParseMove(s, u.position)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid move %s: %v\n", s, err)
			return
		}
		// ParseMove only decodes; the move must also be legal here.
		if !u.position.GenerateMoves().Contains(m) {
			fmt.Fprintf(os.Stderr, "info string illegal move %s\n", s)
			return
		}
		u.position.MakeMove(m)
		u.history = append(u.history, u.position.Hash)
	}
}

// handleGo parses search limits and launches the search goroutine.
// "go perft N" runs a divide instead and never searches.
func (u *UCI) handleGo(args []string) {
	u.waitSearch()

	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		next := func() int {
			if i+1 < len(args) {
				i++
				n, _ := strconv.Atoi(args[i])
				return n
			}
			return 0
		}
		switch args[i] {
		case "perft":
			u.runPerft(next())
			return
		case "depth":
			limits.Depth = next()
		case "nodes":
			limits.Nodes = uint64(next())
		case "movetime":
			limits.MoveTime = time.Duration(next()) * time.Millisecond
		case "wtime":
			limits.Time[board.White] = time.Duration(next()) * time.Millisecond
		case "btime":
			limits.Time[board.Black] = time.Duration(next()) * time.Millisecond
		case "winc":
			limits.Inc[board.White] = time.Duration(next()) * time.Millisecond
		case "binc":
			limits.Inc[board.Black] = time.Duration(next()) * time.Millisecond
		case "movestogo":
			limits.MovesToGo = next()
		case "infinite":
			limits.Infinite = true
		case "ponder":
			limits.Ponder = true
		}
	}

	pos := u.position.Copy()
	history := make([]uint64, len(u.history))
	copy(history, u.history)

	done := make(chan struct{})
	u.searchDone = done

	go func() {
		defer close(done)
		result := u.engine.Search(pos, history, limits)
		u.printBestMove(pos, result)
	}()
}

// printBestMove emits the bestmove line, falling back to any legal
// move rather than ever sending an illegal one.
func (u *UCI) printBestMove(pos *board.Position, result engine.Result) {
	legal := pos.GenerateMoves()
	if legal.Len() == 0 {
		fmt.Println("bestmove 0000")
		return
	}

	best := result.Best
	if best == board.NoMove || !legal.Contains(best) {
		fmt.Fprintf(os.Stderr, "info string falling back from bestmove %v\n", best)
		best = legal.Get(0)
	}

	if result.Ponder != board.NoMove {
		fmt.Printf("bestmove %v ponder %v\n", best, result.Ponder)
	} else {
		fmt.Printf("bestmove %v\n", best)
	}
}

func (u *UCI) runPerft(depth int) {
	if depth <= 0 {
		return
	}
	start := time.Now()
	nodes := board.Divide(u.position.Copy(), depth, board.NewPerftTable(64))
	fmt.Printf("\nNodes searched: %d (%.3fs)\n", nodes, time.Since(start).Seconds())
}

// sendInfo formats one deepening iteration as a UCI info line.
func (u *UCI) sendInfo(info engine.Info) {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d seldepth %d", info.Depth, info.SelDepth)

	switch {
	case info.Score >= engine.MateInMaxPly:
		fmt.Fprintf(&b, " score mate %d", (engine.MateScore-info.Score+1)/2)
	case info.Score <= -engine.MateInMaxPly:
		fmt.Fprintf(&b, " score mate %d", -(engine.MateScore+info.Score+1)/2)
	default:
		fmt.Fprintf(&b, " score cp %d", info.Score)
	}

	ms := info.Time.Milliseconds()
	fmt.Fprintf(&b, " nodes %d time %d", info.Nodes, ms)
	if ms > 0 {
		fmt.Fprintf(&b, " nps %d", info.Nodes*1000/uint64(ms))
	}
	fmt.Fprintf(&b, " hashfull %d", info.HashFull)

	if len(info.PV) > 0 {
		b.WriteString(" pv")
		for _, m := range info.PV {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
	}

	fmt.Println(b.String())
}

// Command sand-perft counts move-generation nodes for one position or
// checks a whole suite against expected counts.
//
// A suite file holds one position per line, semicolon separated:
//
//	FEN;depth;expected nodes
//
// Blank lines and lines starting with # are skipped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/p1x3r/sand/internal/board"
)

var (
	fen    = flag.String("fen", board.StartFEN, "position to count from")
	file   = flag.String("file", "", "suite file of FEN;depth;expected lines")
	depth  = flag.Int("depth", 6, "perft depth")
	hashMB = flag.Int("hash", 64, "perft cache size in MB")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sand-perft: ")
	flag.Parse()

	tt := board.NewPerftTable(*hashMB)

	if *file != "" {
		if !runSuite(*file, tt) {
			os.Exit(1)
		}
		return
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid fen: %v", err)
	}

	start := time.Now()
	nodes := board.Divide(pos, *depth, tt)
	elapsed := time.Since(start)

	fmt.Printf("\nNodes searched: %d (%.3fs, %.0f Mnps)\n",
		nodes, elapsed.Seconds(), float64(nodes)/elapsed.Seconds()/1e6)
}

func runSuite(path string, tt *board.PerftTable) bool {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	pass := true
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			log.Fatalf("%s:%d: want FEN;depth;expected", path, lineNo)
		}
		pos, err := board.ParseFEN(strings.TrimSpace(parts[0]))
		if err != nil {
			log.Fatalf("%s:%d: %v", path, lineNo, err)
		}
		d, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Fatalf("%s:%d: bad depth: %v", path, lineNo, err)
		}
		want, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			log.Fatalf("%s:%d: bad node count: %v", path, lineNo, err)
		}

		start := time.Now()
		got := board.Perft(pos, d, tt)
		elapsed := time.Since(start)

		status := "ok"
		if got != want {
			status = fmt.Sprintf("FAIL want %d", want)
			pass = false
		}
		fmt.Printf("%-72s depth %d  %12d  %7.3fs  %s\n",
			parts[0], d, got, elapsed.Seconds(), status)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
	return pass
}

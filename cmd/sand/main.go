// Command sand is the UCI chess engine binary.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/p1x3r/sand/internal/engine"
	"github.com/p1x3r/sand/internal/uci"
)

var (
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sand: ")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	uci.New(engine.NewEngine(*hashMB)).Run()
}

// Command sand-magics searches for the magic multipliers embedded in
// internal/board. For every square it enumerates all relevant blocker
// subsets, computes the reference attack set for each by ray walking,
// and trials sparse random candidates until one hashes every subset
// without a destructive collision. Two subsets may share a slot when
// their attack sets are identical.
//
// The PRNG seed is fixed so reruns reproduce the committed constants.
// Output is a Go source fragment for pasting into magic.go.
package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/p1x3r/sand/internal/board"
)

const maxTries = 100_000_000

func main() {
	log.SetFlags(0)
	log.SetPrefix("sand-magics: ")

	fmt.Println("// Generated by cmd/sand-magics.")
	printArray("bishopMagicNumbers", findAll(board.BishopMask, board.SlowBishopAttacks))
	fmt.Println()
	printArray("rookMagicNumbers", findAll(board.RookMask, board.SlowRookAttacks))
}

func findAll(mask func(board.Square) board.Bitboard, slow func(board.Square, board.Bitboard) board.Bitboard) [64]uint64 {
	var magics [64]uint64
	for sq := board.A1; sq <= board.H8; sq++ {
		m, ok := findMagic(sq, mask(sq), slow)
		if !ok {
			log.Fatalf("no magic found for %v after %d tries", sq, maxTries)
		}
		magics[sq] = m
	}
	return magics
}

func findMagic(sq board.Square, mask board.Bitboard, slow func(board.Square, board.Bitboard) board.Bitboard) (uint64, bool) {
	bits := mask.Count()
	size := 1 << bits

	occupancies := make([]board.Bitboard, size)
	attacks := make([]board.Bitboard, size)
	for i := 0; i < size; i++ {
		occupancies[i] = board.OccupancySubset(i, mask)
		attacks[i] = slow(sq, occupancies[i])
	}

	rng := rand.New(rand.NewPCG(1, uint64(sq)))
	used := make([]board.Bitboard, size)

	for try := 0; try < maxTries; try++ {
		// Sparse candidates work far better than uniform ones; the
		// multiply needs high bits to clear the shift.
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()

		for i := range used {
			used[i] = 0
		}

		collided := false
		for i := 0; i < size; i++ {
			idx := uint64(occupancies[i]) * magic >> (64 - bits)
			switch used[idx] {
			case 0:
				used[idx] = attacks[i]
			case attacks[i]:
			default:
				collided = true
			}
			if collided {
				break
			}
		}
		if !collided {
			return magic, true
		}
	}
	return 0, false
}

func printArray(name string, magics [64]uint64) {
	fmt.Printf("var %s = [64]uint64{\n", name)
	for rank := 0; rank < 16; rank++ {
		fmt.Print("\t")
		for file := 0; file < 4; file++ {
			fmt.Printf("0x%016X,", magics[rank*4+file])
			if file < 3 {
				fmt.Print(" ")
			}
		}
		fmt.Println()
	}
	fmt.Println("}")
}

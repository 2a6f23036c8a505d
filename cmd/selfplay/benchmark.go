package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

const benchSamples = 200

// runBenchmark collects positions from random playouts and times legal move
// generation over them.
func runBenchmark(tables *sovereign.Tables, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	var samples []*sovereign.Position
	for len(samples) < benchSamples {
		pos := sovereign.NewInitialPositionWithTables(tables)
		opening := pos.LegalMoves()
		if err := pos.PlayMove(opening[rng.Intn(len(opening))]); err != nil {
			panic(err)
		}
		if err := pos.AcceptFirstMove(); err != nil {
			panic(err)
		}
		for i := 0; i < 120 && len(samples) < benchSamples; i++ {
			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			if i%6 == 0 {
				samples = append(samples, pos.Clone())
			}
			if err := pos.PlayMove(moves[rng.Intn(len(moves))]); err != nil {
				panic(err)
			}
		}
	}

	const rounds = 50
	total := 0
	start := time.Now()
	for r := 0; r < rounds; r++ {
		for _, pos := range samples {
			total += len(pos.LegalMoves())
		}
	}
	elapsed := time.Since(start)
	calls := rounds * len(samples)
	fmt.Printf("LegalMoves: %d calls, %d moves, %v/call, %.0f moves/sec\n",
		calls, total, elapsed/time.Duration(calls), float64(total)/elapsed.Seconds())

	start = time.Now()
	for r := 0; r < rounds; r++ {
		for _, pos := range samples {
			pos.Hash()
			pos.Encode()
		}
	}
	elapsed = time.Since(start)
	fmt.Printf("Hash+Encode: %v/call\n", elapsed/time.Duration(calls))
}

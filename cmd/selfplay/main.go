package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

type gameResult struct {
	Game    int
	Plies   int
	Defects int
	Reason  string
	FEN     string
}

func main() {
	totalGames := flag.Int("games", 100, "number of random games to play")
	maxPlies := flag.Int("max-plies", 400, "ply cap per game")
	maxRange := flag.Int("max-range", 16, "slider range (8 for the physical set)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel games")
	bench := flag.Bool("bench", false, "benchmark move generation instead of playing")
	verbose := flag.Bool("v", false, "print every game result")
	flag.Parse()

	tables := sovereign.Build(sovereign.WithMaxRange(*maxRange))
	if *bench {
		runBenchmark(tables, *seed)
		return
	}

	var (
		mu      sync.Mutex
		results = make([]gameResult, 0, *totalGames)
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	start := time.Now()
	for i := 0; i < *totalGames; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(*seed + int64(i)))
			res, err := playGame(tables, rng, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, *seed+int64(i), err)
			}
			res.Game = i + 1
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	reasons := make(map[string]int)
	plies, defects := 0, 0
	for _, r := range results {
		reasons[r.Reason]++
		plies += r.Plies
		defects += r.Defects
		if *verbose {
			fmt.Printf("game %3d: %-16s plies=%-4d defects=%-2d %s\n", r.Game, r.Reason, r.Plies, r.Defects, r.FEN)
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("\n=== %d games in %v ===\n", len(results), elapsed.Round(time.Millisecond))
	fmt.Printf("Total plies: %d  Defections: %d  Plies/sec: %.0f\n", plies, defects, float64(plies)/elapsed.Seconds())
	for reason, n := range reasons {
		fmt.Printf("%-16s %d\n", reason, n)
	}
}

// playGame runs one random game through the opening ritual and checks the
// position's bookkeeping after every step.
func playGame(tables *sovereign.Tables, rng *rand.Rand, maxPlies int) (gameResult, error) {
	pos := sovereign.NewInitialPositionWithTables(tables)

	opening := pos.LegalMoves()
	if err := pos.PlayMove(opening[rng.Intn(len(opening))]); err != nil {
		return gameResult{}, err
	}
	choice := sovereign.ChoiceAccept
	if rng.Intn(2) == 0 {
		choice = sovereign.ChoiceReject
	}
	if err := pos.ResolveFirstMove(choice); err != nil {
		return gameResult{}, err
	}

	res := gameResult{Reason: "ply cap"}
	for pos.Ply() < uint32(maxPlies) {
		if err := checkConsistency(pos, tables); err != nil {
			return res, err
		}
		if lost := kingLost(pos); lost != 0 {
			res.Reason = fmt.Sprintf("player %d king lost", lost)
			break
		}

		me := pos.ActivePlayer()
		if controlled := pos.Controlled(me).Colors(); len(controlled) > 0 && rng.Intn(20) == 0 {
			if err := pos.DefectTo(controlled[rng.Intn(len(controlled))]); err != nil {
				return res, err
			}
			res.Defects++
			continue
		}

		moves := pos.LegalMoves()
		if len(moves) == 0 {
			res.Reason = fmt.Sprintf("player %d stuck", me)
			break
		}
		if err := pos.PlayMove(moves[rng.Intn(len(moves))]); err != nil {
			return res, err
		}
	}
	res.Plies = int(pos.Ply())
	res.FEN = pos.Encode()
	return res, nil
}

func kingLost(pos *sovereign.Position) sovereign.Player {
	for _, pl := range []sovereign.Player{sovereign.Player1, sovereign.Player2} {
		if _, ok := pos.Board().Find(sovereign.NewPiece(pos.Owned(pl), sovereign.King)); !ok {
			return pl
		}
	}
	return 0
}

func checkConsistency(pos *sovereign.Position, tables *sovereign.Tables) error {
	if got, want := pos.Hash(), pos.CalculateHash(); got != want {
		return fmt.Errorf("ply %d: incremental hash %016x, recomputed %016x", pos.Ply(), got, want)
	}
	fen := pos.Encode()
	back, err := sovereign.DecodePositionWithTables(fen, tables)
	if err != nil {
		return fmt.Errorf("ply %d: %w", pos.Ply(), err)
	}
	if !back.Equal(pos) {
		return fmt.Errorf("ply %d: FEN round trip changed the position: %s", pos.Ply(), fen)
	}
	return nil
}

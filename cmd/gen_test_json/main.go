package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

// TestCase is one move generation fixture: a position, a selected square and
// the destinations the engine allows from it.
type TestCase struct {
	FEN          string   `json:"fen"`
	Stage        int      `json:"stage"`
	From         string   `json:"from,omitempty"`
	Origins      []string `json:"origins,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
	Played       string   `json:"played"`
}

func squareNames(bb sovereign.Bitboard) []string {
	sqs := bb.Squares()
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxPlies := flag.Int("max-plies", 500, "ply cap per game")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos := sovereign.NewInitialPosition()
		for pos.Ply() < uint32(*maxPlies) {
			legalMoves := pos.LegalMoves()
			if len(legalMoves) == 0 {
				break
			}
			fen := pos.Encode()

			// Stage 0: which squares hold a piece that can move.
			var origins sovereign.Bitboard
			for _, mv := range legalMoves {
				origins = origins.With(mv.From)
			}
			chosen := legalMoves[rng.Intn(len(legalMoves))]
			testCases = append(testCases, TestCase{
				FEN:     fen,
				Stage:   0,
				Origins: squareNames(origins),
				Played:  chosen.String(),
			})

			// Stage 1: destinations of the chosen piece.
			testCases = append(testCases, TestCase{
				FEN:          fen,
				Stage:        1,
				From:         chosen.From.String(),
				Destinations: squareNames(pos.DestinationsFrom(chosen.From)),
				Played:       chosen.String(),
			})

			if err := pos.PlayMove(chosen); err != nil {
				log.Fatalf("game %d: %v", g+1, err)
			}
			if pos.Ply() == 1 {
				choice := sovereign.ChoiceAccept
				if rng.Intn(2) == 0 {
					choice = sovereign.ChoiceReject
				}
				if err := pos.ResolveFirstMove(choice); err != nil {
					log.Fatalf("game %d: %v", g+1, err)
				}
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}

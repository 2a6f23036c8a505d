package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/20twoes/sochess-ws/internal/render"
	"github.com/20twoes/sochess-ws/internal/sovereign"
)

func main() {
	fen := flag.String("fen", sovereign.InitialFEN, "position to inspect")
	from := flag.String("from", "", "square whose destinations are shown, e.g. e02")
	svgPath := flag.String("svg", "", "write an SVG diagram to this file")
	flag.Parse()

	pos, err := sovereign.DecodePosition(*fen)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Print(pos.Board())
	fmt.Printf("Active player: %d  Movable armies: %s  Hash: %016x\n", pos.ActivePlayer(), pos.Movable().Codes(), pos.Hash())
	moves := pos.LegalMoves()
	fmt.Println("Legal moves:", len(moves))

	var marked sovereign.Bitboard
	if *from != "" {
		sq, err := sovereign.ParseSquare(*from)
		if err != nil {
			log.Fatalf("from: %v", err)
		}
		marked = pos.DestinationsFrom(sq)
		fmt.Printf("Destinations from %s (%s):\n%s", sq, pos.Board().PieceAt(sq), marked)
	}

	if *svgPath != "" {
		if err := writeSVG(*svgPath, pos, marked); err != nil {
			log.Fatalf("svg: %v", err)
		}
		fmt.Println("SVG written to", *svgPath)
	}
}

// writeSVG renders pos to path. The file is closed before any error is returned.
func writeSVG(path string, pos *sovereign.Position, marked sovereign.Bitboard) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = render.Position(f, pos, render.Options{Marked: marked})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

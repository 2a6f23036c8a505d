// Package render draws Sovereign Chess positions as SVG.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

const (
	DefaultSquareSize = 40
	margin            = 20
)

var armyFill = [sovereign.NumColors]string{
	sovereign.Ash:    "#b2b2b2",
	sovereign.Black:  "#222222",
	sovereign.Cyan:   "#00bcd4",
	sovereign.Green:  "#2e7d32",
	sovereign.Navy:   "#1a237e",
	sovereign.Orange: "#ef6c00",
	sovereign.Pink:   "#ec407a",
	sovereign.Red:    "#c62828",
	sovereign.Slate:  "#546e7a",
	sovereign.Violet: "#7b1fa2",
	sovereign.White:  "#fafafa",
	sovereign.Yellow: "#fdd835",
}

var darkArmies = sovereign.ColorSetOf(
	sovereign.Black, sovereign.Green, sovereign.Navy,
	sovereign.Red, sovereign.Slate, sovereign.Violet,
)

const (
	lightSquare = "#f0d9b5"
	darkSquare  = "#b58863"
	markFill    = "#4caf50"
)

type Options struct {
	SquareSize int
	Title      string
	// Marked squares get a dot, e.g. the destinations of a selected piece.
	Marked sovereign.Bitboard
}

// Board writes an SVG diagram of b with rank 16 at the top.
func Board(w io.Writer, b *sovereign.Board, opts Options) error {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	ew := &errWriter{w: w}
	side := sovereign.BoardWidth*size + 2*margin

	canvas := svg.New(ew)
	canvas.Start(side, side)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, side, side, "fill:#ffffff")

	for sq := sovereign.Square(0); sq < sovereign.NumSquares; sq++ {
		x, y := origin(sq, size)
		fill := lightSquare
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			fill = darkSquare
		}
		if c := sq.Color(); c != sovereign.NoColor {
			fill = armyFill[c]
		}
		canvas.Rect(x, y, size, size, "fill:"+fill)
	}

	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:middle", margin/2+2))
	for i := 0; i < sovereign.BoardWidth; i++ {
		f := sovereign.File(i)
		canvas.Text(margin+i*size+size/2, side-margin/3, string(f.Char()))
		canvas.Text(margin/2, margin+(sovereign.BoardWidth-1-i)*size+size/2+4, fmt.Sprint(i+1))
	}
	canvas.Gend()

	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-weight:bold;font-size:%dpx;text-anchor:middle", size/2))
	for _, sq := range b.AllPieces().Squares() {
		drawPiece(canvas, sq, b.PieceAt(sq), size)
	}
	canvas.Gend()

	for _, sq := range opts.Marked.Squares() {
		x, y := origin(sq, size)
		canvas.Circle(x+size/2, y+size/2, size/6, "fill:"+markFill+";fill-opacity:0.7")
	}

	canvas.End()
	return ew.err
}

// Position draws pos, titled with its FEN.
func Position(w io.Writer, pos *sovereign.Position, opts Options) error {
	if opts.Title == "" {
		opts.Title = pos.Encode()
	}
	return Board(w, pos.Board(), opts)
}

func drawPiece(canvas *svg.SVG, sq sovereign.Square, p sovereign.Piece, size int) {
	x, y := origin(sq, size)
	cx, cy := x+size/2, y+size/2
	text := "#000000"
	if darkArmies.Has(p.Color) {
		text = "#ffffff"
	}
	canvas.Circle(cx, cy, size*2/5, "fill:"+armyFill[p.Color]+";stroke:#000000;stroke-width:1")
	canvas.Text(cx, cy+size/6, string(p.Role.Char()), "fill:"+text)
}

func origin(sq sovereign.Square, size int) (int, int) {
	x := margin + int(sq.File())*size
	y := margin + (sovereign.BoardWidth-1-int(sq.Rank()))*size
	return x, y
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

package sovereign

import "fmt"

const (
	BoardWidth = 16
	NumSquares = BoardWidth * BoardWidth
)

// File is a board column, A=0 … P=15.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileI
	FileJ
	FileK
	FileL
	FileM
	FileN
	FileO
	FileP
)

func (f File) Char() byte { return byte('a' + f) }

// Rank is a board row, Rank1=0 … Rank16=15.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	Rank11
	Rank12
	Rank13
	Rank14
	Rank15
	Rank16
)

// Quadrant selects the mirrored pawn rule set.
type Quadrant int8

const (
	SouthWest Quadrant = iota
	SouthEast
	NorthWest
	NorthEast

	numQuadrants = 4
)

// Square is rank*16 + file; a1 is 0 and p16 is 255.
type Square int16

const NoSquare Square = -1

func SquareAt(f File, r Rank) Square { return Square(int(r)*BoardWidth + int(f)) }

func SquareFromIndex(i int) Square { return Square(i) }

func (s Square) Index() int  { return int(s) }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }
func (s Square) File() File  { return File(int(s) % BoardWidth) }
func (s Square) Rank() Rank  { return Rank(int(s) / BoardWidth) }

func (s Square) Quadrant() Quadrant {
	q := SouthWest
	if s.File() >= FileI {
		q++
	}
	if s.Rank() >= Rank9 {
		q += 2
	}
	return q
}

// Color reports which army's colored square this is, or NoColor.
func (s Square) Color() Color {
	if !s.Valid() {
		return NoColor
	}
	return coloredSquares[s]
}

// String renders the three-character form, e.g. "f01".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%02d", s.File().Char(), int(s.Rank())+1)
}

// ParseSquare reads "a01".."p16", case-insensitive.
func ParseSquare(str string) (Square, error) {
	if len(str) != 3 {
		return NoSquare, fmt.Errorf("square %q: want 3 characters", str)
	}
	fc := lower(str[0])
	if fc < 'a' || fc > 'p' {
		return NoSquare, fmt.Errorf("square %q: bad file", str)
	}
	d1, d2 := str[1], str[2]
	if d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
		return NoSquare, fmt.Errorf("square %q: bad rank", str)
	}
	rank := int(d1-'0')*10 + int(d2-'0')
	if rank < 1 || rank > BoardWidth {
		return NoSquare, fmt.Errorf("square %q: rank out of range", str)
	}
	return SquareAt(File(fc-'a'), Rank(rank-1)), nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(str string) Square {
	sq, err := ParseSquare(str)
	if err != nil {
		panic(err)
	}
	return sq
}

var coloredSquares = buildColoredSquares()

// coloredPairs[c] holds the two squares of army c.
var coloredPairs [NumColors][2]Square

func buildColoredSquares() [NumSquares]Color {
	var arr [NumSquares]Color
	for i := range arr {
		arr[i] = NoColor
	}
	pairs := []struct {
		c    Color
		a, b string
	}{
		{Navy, "e05", "l12"},
		{Red, "l05", "e12"},
		{Green, "f06", "k11"},
		{Violet, "h06", "i11"},
		{Pink, "i06", "h11"},
		{Yellow, "k06", "f11"},
		{Ash, "g07", "j10"},
		{Slate, "j07", "g10"},
		{Cyan, "f08", "k09"},
		{Black, "h08", "i09"},
		{White, "i08", "h09"},
		{Orange, "k08", "f09"},
	}
	for _, p := range pairs {
		a, b := MustSquare(p.a), MustSquare(p.b)
		arr[a] = p.c
		arr[b] = p.c
		coloredPairs[p.c] = [2]Square{a, b}
	}
	return arr
}

// ColoredSquares returns the two squares belonging to army c.
func ColoredSquares(c Color) [2]Square {
	if !c.Valid() {
		return [2]Square{NoSquare, NoSquare}
	}
	return coloredPairs[c]
}

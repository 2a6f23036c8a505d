package sovereign

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Color identifies one of the twelve armies.
type Color int8

const (
	NoColor Color = -1
	Ash     Color = iota - 1
	Black
	Cyan
	Green
	Navy
	Orange
	Pink
	Red
	Slate
	Violet
	White
	Yellow

	NumColors = 12
)

var colorCodes = [NumColors]byte{'A', 'B', 'C', 'G', 'N', 'O', 'P', 'R', 'S', 'V', 'W', 'Y'}

var colorNames = [NumColors]string{
	"Ash", "Black", "Cyan", "Green", "Navy", "Orange",
	"Pink", "Red", "Slate", "Violet", "White", "Yellow",
}

// AllColors lists the armies in their fixed enumeration order.
func AllColors() []Color {
	out := make([]Color, NumColors)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

// ColorFromChar maps a color code (either case) to its army.
func ColorFromChar(ch byte) (Color, bool) {
	up := upper(ch)
	for i, c := range colorCodes {
		if c == up {
			return Color(i), true
		}
	}
	return NoColor, false
}

func (c Color) Valid() bool { return c >= 0 && c < NumColors }

// Char returns the uppercase color code, or '-' for NoColor.
func (c Color) Char() byte {
	if !c.Valid() {
		return '-'
	}
	return colorCodes[c]
}

func (c Color) String() string {
	if !c.Valid() {
		return "none"
	}
	return colorNames[c]
}

// ParseColor accepts a single color code or a full army name.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return ColorFromChar(s[0])
	}
	for i, n := range colorNames {
		if strings.EqualFold(n, s) {
			return Color(i), true
		}
	}
	return NoColor, false
}

// Role is a chess piece kind.
type Role int8

const (
	NoRole Role = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	numRoles = 7
)

var roleCodes = [numRoles]byte{'-', 'P', 'N', 'B', 'R', 'Q', 'K'}

func RoleFromChar(ch byte) (Role, bool) {
	up := upper(ch)
	for i := Pawn; i <= King; i++ {
		if roleCodes[i] == up {
			return i, true
		}
	}
	return NoRole, false
}

func (r Role) Char() byte {
	if r < 0 || r >= numRoles {
		return '-'
	}
	return roleCodes[r]
}

func (r Role) String() string {
	switch r {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is a (color, role) pair. The zero value has NoRole and means "empty".
type Piece struct {
	Color Color
	Role  Role
}

func NewPiece(c Color, r Role) Piece { return Piece{Color: c, Role: r} }

func (p Piece) IsNone() bool { return p.Role == NoRole }

// String is the two-letter lowercase FEN form, e.g. "wk".
func (p Piece) String() string {
	if p.IsNone() {
		return ".."
	}
	return string([]byte{lower(p.Color.Char()), lower(p.Role.Char())})
}

// Player is one of the two seats at the table.
type Player int8

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) idx() int { return int(p) - 1 }

// ColorSet is a set of armies, one bit per Color.
type ColorSet uint16

func ColorSetOf(cs ...Color) ColorSet {
	var s ColorSet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

func (s ColorSet) Has(c Color) bool {
	return c.Valid() && s&(1<<uint(c)) != 0
}

func (s ColorSet) Add(c Color) ColorSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c)
}

func (s ColorSet) Remove(c Color) ColorSet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << uint(c))
}

func (s ColorSet) Empty() bool { return s == 0 }

// Complement returns every army not in s.
func (s ColorSet) Complement() ColorSet { return ^s & (1<<NumColors - 1) }

// Colors returns the members in enumeration order.
func (s ColorSet) Colors() []Color {
	var out []Color
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Codes returns the member color codes sorted ascending, or "-" when empty.
func (s ColorSet) Codes() string {
	if s.Empty() {
		return "-"
	}
	codes := make([]byte, 0, NumColors)
	for _, c := range s.Colors() {
		codes = append(codes, c.Char())
	}
	slices.Sort(codes)
	return string(codes)
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch - 'A' + 'a'
	}
	return ch
}

package sovereign

import (
	"math/bits"
	"strings"
)

const bbWords = NumSquares / 64

// Bitboard is a 256-bit set of squares. Bit i lives in word i/64 at position i%64,
// so index 0 is a1 and index 255 is p16.
type Bitboard [bbWords]uint64

var (
	EmptyBB Bitboard
	FullBB  = Bitboard{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
)

func SquareBB(sq Square) Bitboard {
	var b Bitboard
	if sq.Valid() {
		b[sq>>6] = 1 << (uint(sq) & 63)
	}
	return b
}

func (b Bitboard) Get(i int) bool {
	if i < 0 || i >= NumSquares {
		return false
	}
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}

func (b Bitboard) Has(sq Square) bool { return b.Get(int(sq)) }

func (b *Bitboard) Set(i int, v bool) {
	if i < 0 || i >= NumSquares {
		return
	}
	if v {
		b[i>>6] |= 1 << (uint(i) & 63)
	} else {
		b[i>>6] &^= 1 << (uint(i) & 63)
	}
}

func (b Bitboard) With(sq Square) Bitboard {
	b.Set(int(sq), true)
	return b
}

func (b Bitboard) Without(sq Square) Bitboard {
	b.Set(int(sq), false)
	return b
}

func (b Bitboard) And(o Bitboard) Bitboard {
	for i := range b {
		b[i] &= o[i]
	}
	return b
}

func (b Bitboard) Or(o Bitboard) Bitboard {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

func (b Bitboard) AndNot(o Bitboard) Bitboard {
	for i := range b {
		b[i] &^= o[i]
	}
	return b
}

func (b Bitboard) Not() Bitboard {
	for i := range b {
		b[i] = ^b[i]
	}
	return b
}

func (b Bitboard) Any() bool { return b[0]|b[1]|b[2]|b[3] != 0 }

func (b Bitboard) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// ShiftHigh moves every bit n places toward higher indexes; bits pushed past
// index 255 are dropped and vacated low bits are zero.
func (b Bitboard) ShiftHigh(n int) Bitboard {
	if n <= 0 {
		if n == 0 {
			return b
		}
		return b.ShiftLow(-n)
	}
	if n >= NumSquares {
		return EmptyBB
	}
	var out Bitboard
	words, rem := n/64, uint(n%64)
	for i := bbWords - 1; i >= words; i-- {
		out[i] = b[i-words] << rem
		if rem != 0 && i-words-1 >= 0 {
			out[i] |= b[i-words-1] >> (64 - rem)
		}
	}
	return out
}

// ShiftLow moves every bit n places toward lower indexes; bits pushed below
// index 0 are dropped and vacated high bits are zero.
func (b Bitboard) ShiftLow(n int) Bitboard {
	if n <= 0 {
		if n == 0 {
			return b
		}
		return b.ShiftHigh(-n)
	}
	if n >= NumSquares {
		return EmptyBB
	}
	var out Bitboard
	words, rem := n/64, uint(n%64)
	for i := 0; i+words < bbWords; i++ {
		out[i] = b[i+words] >> rem
		if rem != 0 && i+words+1 < bbWords {
			out[i] |= b[i+words+1] << (64 - rem)
		}
	}
	return out
}

// Shift is ShiftHigh for positive n and ShiftLow for negative n.
func (b Bitboard) Shift(n int) Bitboard {
	if n >= 0 {
		return b.ShiftHigh(n)
	}
	return b.ShiftLow(-n)
}

// LowestSquare returns the lowest set square, or NoSquare when b is empty.
func (b Bitboard) LowestSquare() Square {
	for i, w := range b {
		if w != 0 {
			return Square(i*64 + bits.TrailingZeros64(w))
		}
	}
	return NoSquare
}

// PopLowest returns the lowest set square and b without it.
func (b Bitboard) PopLowest() (Square, Bitboard) {
	sq := b.LowestSquare()
	if sq == NoSquare {
		return NoSquare, b
	}
	return sq, b.Without(sq)
}

func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b.Any() {
		var sq Square
		sq, b = b.PopLowest()
		out = append(out, sq)
	}
	return out
}

func BitboardOf(sqs ...Square) Bitboard {
	var b Bitboard
	for _, sq := range sqs {
		b.Set(int(sq), true)
	}
	return b
}

// String draws the set with rank 16 at the top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := BoardWidth - 1; r >= 0; r-- {
		for f := 0; f < BoardWidth; f++ {
			if b.Get(r*BoardWidth + f) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package sovereign

import "testing"

func TestBitboardSetGet(t *testing.T) {
	var b Bitboard
	if b.Any() {
		t.Fatalf("new bitboard has bits set")
	}
	if got := b.LowestSquare(); got != NoSquare {
		t.Fatalf("lowest of empty: got %v", got)
	}
	for _, i := range []int{0, 63, 64, 200, 255} {
		b.Set(i, true)
		if !b.Get(i) {
			t.Fatalf("bit %d not set", i)
		}
	}
	if b.Count() != 5 {
		t.Fatalf("count: got %d want 5", b.Count())
	}
	b.Set(0, false)
	if b.Get(0) {
		t.Fatalf("bit 0 still set")
	}
	if got := b.LowestSquare(); got != Square(63) {
		t.Fatalf("lowest: got %d want 63", got)
	}
}

func TestBitboardShift(t *testing.T) {
	tests := []struct {
		name string
		bit  int
		by   int // negative shifts toward index 0
		want int // -1 means the bit falls off
	}{
		{"high within word", 3, 5, 8},
		{"high across word", 63, 1, 64},
		{"high across two words", 10, 130, 140},
		{"high past top", 255, 1, -1},
		{"low across word", 64, -1, 63},
		{"low within word", 200, -16, 184},
		{"low past bottom", 0, -1, -1},
		{"low across two words", 190, -127, 63},
		{"zero is identity", 77, 0, 77},
		{"high by full width", 0, 256, -1},
		{"low by full width", 255, -256, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Bitboard
			b.Set(tc.bit, true)
			got := b.Shift(tc.by)
			if tc.want < 0 {
				if got.Any() {
					t.Fatalf("expected empty, got lowest %d", got.LowestSquare())
				}
				return
			}
			if got.Count() != 1 || !got.Get(tc.want) {
				t.Fatalf("got %v want only bit %d", got.Squares(), tc.want)
			}
		})
	}
}

func TestBitboardSetOps(t *testing.T) {
	a := BitboardOf(MustSquare("a01"), MustSquare("h08"))
	b := BitboardOf(MustSquare("h08"), MustSquare("p16"))
	if got := a.And(b); got.Count() != 1 || !got.Has(MustSquare("h08")) {
		t.Fatalf("and: %v", got.Squares())
	}
	if got := a.Or(b); got.Count() != 3 {
		t.Fatalf("or: %v", got.Squares())
	}
	if got := a.AndNot(b); got.Count() != 1 || !got.Has(MustSquare("a01")) {
		t.Fatalf("andnot: %v", got.Squares())
	}
	if got := a.Not(); got.Count() != NumSquares-2 || got.Has(MustSquare("a01")) {
		t.Fatalf("not: count %d", got.Count())
	}
	if FullBB.Count() != NumSquares {
		t.Fatalf("full count %d", FullBB.Count())
	}
}

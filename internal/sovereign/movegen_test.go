package sovereign

import (
	"sort"
	"strings"
	"testing"
)

func squaresOf(names ...string) Bitboard {
	var b Bitboard
	for _, n := range names {
		b = b.With(MustSquare(n))
	}
	return b
}

func names(b Bitboard) string {
	var out []string
	for _, sq := range b.Squares() {
		out = append(out, sq.String())
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func expectSquares(t *testing.T, got Bitboard, want ...string) {
	t.Helper()
	if g, w := names(got), names(squaresOf(want...)); g != w {
		t.Fatalf("squares mismatch\n got: %s\nwant: %s", g, w)
	}
}

func TestKingMoves(t *testing.T) {
	tb := DefaultTables()
	t.Run("center", func(t *testing.T) {
		got := KingMoves(squaresOf("h08"), EmptyBB, tb)
		expectSquares(t, got, "g07", "h07", "i07", "g08", "i08", "g09", "h09", "i09")
	})
	t.Run("a01 corner", func(t *testing.T) {
		got := KingMoves(squaresOf("a01"), EmptyBB, tb)
		expectSquares(t, got, "b01", "a02", "b02")
	})
	t.Run("p16 corner", func(t *testing.T) {
		got := KingMoves(squaresOf("p16"), EmptyBB, tb)
		expectSquares(t, got, "o16", "o15", "p15")
	})
	t.Run("a file does not wrap", func(t *testing.T) {
		got := KingMoves(squaresOf("a05"), EmptyBB, tb)
		expectSquares(t, got, "a04", "a06", "b04", "b05", "b06")
	})
	t.Run("own pieces excluded", func(t *testing.T) {
		got := KingMoves(squaresOf("a01"), squaresOf("b01", "b02"), tb)
		expectSquares(t, got, "a02")
	})
}

func TestKnightMoves(t *testing.T) {
	tb := DefaultTables()
	tests := []struct {
		from string
		own  []string
		want []string
	}{
		{"h08", nil, []string{"g06", "i06", "f07", "j07", "f09", "j09", "g10", "i10"}},
		{"a01", nil, []string{"b03", "c02"}},
		{"b01", nil, []string{"a03", "c03", "d02"}},
		{"p01", nil, []string{"o03", "n02"}},
		{"o16", nil, []string{"m15", "n14", "p14"}},
		{"f01", []string{"d02", "h02"}, []string{"e03", "g03"}},
	}
	for _, tc := range tests {
		t.Run(tc.from, func(t *testing.T) {
			got := KnightMoves(squaresOf(tc.from), squaresOf(tc.own...), tb)
			expectSquares(t, got, tc.want...)
		})
	}
}

func TestRookFullCross(t *testing.T) {
	got := RookMoves(squaresOf("c13"), EmptyBB, EmptyBB, DefaultTables())
	if got.Count() != 30 {
		t.Fatalf("rook on c13: got %d squares want 30: %s", got.Count(), names(got))
	}
	for _, n := range []string{"c01", "c16", "a13", "p13", "c12", "d13"} {
		if !got.Has(MustSquare(n)) {
			t.Fatalf("rook on c13 misses %s", n)
		}
	}
	if got.Has(MustSquare("c13")) {
		t.Fatalf("rook move set contains its own square")
	}
}

func TestRookMaxRange(t *testing.T) {
	tb := Build(WithMaxRange(8))
	got := RookMoves(squaresOf("c13"), EmptyBB, EmptyBB, tb)
	// up 3, down 8, left 2, right 8
	if got.Count() != 21 {
		t.Fatalf("capped rook: got %d squares want 21: %s", got.Count(), names(got))
	}
	if got.Has(MustSquare("c04")) || !got.Has(MustSquare("c05")) {
		t.Fatalf("capped rook reaches wrong squares: %s", names(got))
	}
	if !got.Has(MustSquare("k13")) || got.Has(MustSquare("l13")) {
		t.Fatalf("capped rook reaches wrong squares: %s", names(got))
	}
}

func TestBishopBlockers(t *testing.T) {
	own := squaresOf("j10")
	enemy := squaresOf("f06")
	got := BishopMoves(squaresOf("h08"), own, enemy, DefaultTables())
	expectSquares(t, got,
		"i09",
		"g07", "f06",
		"g09", "f10", "e11", "d12", "c13", "b14", "a15",
		"i07", "j06", "k05", "l04", "m03", "n02", "o01",
	)
}

func TestQueenIsRookPlusBishop(t *testing.T) {
	tb := DefaultTables()
	from := squaresOf("e05")
	own := squaresOf("e09", "b02")
	enemy := squaresOf("h05", "g07")
	want := RookMoves(from, own, enemy, tb).Or(BishopMoves(from, own, enemy, tb))
	if got := QueenMoves(from, own, enemy, tb); got != want {
		t.Fatalf("queen: got %s want %s", names(got), names(want))
	}
}

func TestPawnMoves(t *testing.T) {
	tb := DefaultTables()
	tests := []struct {
		name  string
		from  string
		all   []string
		enemy []string
		want  []string
	}{
		{
			name: "south west from first rank",
			from: "c01",
			all:  []string{"c01"},
			want: []string{"d01", "c02", "c03"},
		},
		{
			name:  "south east with two captures",
			from:  "n01",
			all:   []string{"n01", "m02", "o02"},
			enemy: []string{"m02", "o02"},
			want:  []string{"m01", "m02", "n02", "o02", "n03"},
		},
		{
			name: "blocked push",
			from: "c01",
			all:  []string{"c01", "c02"},
			want: []string{"d01"},
		},
		{
			name: "double push from second rank",
			from: "e02",
			all:  []string{"e02", "f02"},
			want: []string{"e03", "e04"},
		},
		{
			name: "double side step from the ring file",
			from: "b05",
			all:  []string{"b05"},
			want: []string{"b06", "c05", "d05"},
		},
		{
			name: "north east heads down and left",
			from: "o16",
			all:  []string{"o16"},
			want: []string{"o15", "o14", "n16", "m16"},
		},
		{
			name:  "north west with three captures",
			from:  "b15",
			all:   []string{"b15", "c16", "c14", "a14"},
			enemy: []string{"c16", "c14", "a14"},
			want:  []string{"b14", "b13", "c15", "d15", "a14", "c14", "c16"},
		},
		{
			name:  "north east with three captures",
			from:  "o15",
			all:   []string{"o15", "p14", "n14", "n16"},
			enemy: []string{"p14", "n14", "n16"},
			want:  []string{"o14", "o13", "n15", "m15", "p14", "n14", "n16"},
		},
		{
			name:  "a file pawn does not capture across the edge",
			from:  "a03",
			all:   []string{"a03", "p03", "b04", "b02"},
			enemy: []string{"p03", "b04", "b02"},
			want:  []string{"a04", "b03", "c03", "b04", "b02"},
		},
		{
			name:  "h file pawn has no right attack or side step",
			from:  "h05",
			all:   []string{"h05", "i04", "i06", "g06"},
			enemy: []string{"i04", "i06", "g06"},
			want:  []string{"h06", "i06", "g06"},
		},
		{
			name: "no step out of the quadrant",
			from: "h08",
			all:  []string{"h08"},
			want: nil,
		},
		{
			name:  "captures ignore own pieces",
			from:  "h06",
			all:   []string{"h06", "g07", "i07"},
			enemy: []string{"i07"},
			want:  []string{"h07", "i07"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PawnMoves(squaresOf(tc.from), squaresOf(tc.all...), squaresOf(tc.enemy...), tb)
			expectSquares(t, got, tc.want...)
		})
	}
}

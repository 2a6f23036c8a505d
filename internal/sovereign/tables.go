package sovereign

import "sync"

// Tables holds the precomputed masks used by move generation. A Tables value is
// immutable after Build and may be shared by any number of positions.
type Tables struct {
	ClearFile [BoardWidth]Bitboard
	MaskFile  [BoardWidth]Bitboard
	ClearRank [BoardWidth]Bitboard
	MaskRank  [BoardWidth]Bitboard

	MaskQuadrant [numQuadrants]Bitboard

	// ClearColoredSquares[c] has every bit set except army c's two squares.
	ClearColoredSquares [NumColors]Bitboard

	// MaxRange caps how far bishops, rooks and queens slide.
	MaxRange int
}

// TablesOption adjusts a Tables value during Build.
type TablesOption func(*Tables)

// WithMaxRange caps sliding pieces at n squares. Values outside 1..BoardWidth are ignored.
func WithMaxRange(n int) TablesOption {
	return func(t *Tables) {
		if n >= 1 && n <= BoardWidth {
			t.MaxRange = n
		}
	}
}

func Build(opts ...TablesOption) *Tables {
	t := &Tables{MaxRange: BoardWidth}
	for i := 0; i < BoardWidth; i++ {
		var file, rank Bitboard
		for j := 0; j < BoardWidth; j++ {
			file.Set(j*BoardWidth+i, true)
			rank.Set(i*BoardWidth+j, true)
		}
		t.MaskFile[i] = file
		t.ClearFile[i] = file.Not()
		t.MaskRank[i] = rank
		t.ClearRank[i] = rank.Not()
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		q := sq.Quadrant()
		t.MaskQuadrant[q] = t.MaskQuadrant[q].With(sq)
	}

	for c := Color(0); c < NumColors; c++ {
		pair := ColoredSquares(c)
		t.ClearColoredSquares[c] = FullBB.Without(pair[0]).Without(pair[1])
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
)

// DefaultTables returns the shared tables built with default options.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		defaultTables = Build()
	})
	return defaultTables
}

package sovereign

import "testing"

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash() != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash(), pos.CalculateHash())
	}
	other := mustDecode(t, queenFEN)
	if other.Hash() == pos.Hash() {
		t.Fatalf("different positions share a hash")
	}
}

func TestHashCoversOwnership(t *testing.T) {
	a := NewInitialPosition()
	b := NewInitialPosition()
	b.owned = [2]Color{White, Black}
	if a.Hash() == b.Hash() {
		t.Fatalf("ownership does not reach the hash")
	}
	b.owned = a.owned
	b.active = Player2
	if a.Hash() == b.Hash() {
		t.Fatalf("side to move does not reach the hash")
	}
}

func TestPlayMoveHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	mustPlay(t, pos, "WNf01g03")
	if err := pos.AcceptFirstMove(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	for ply := 0; ply < 60; ply++ {
		moves := pos.LegalMoves()
		if len(moves) == 0 {
			return
		}
		mv := moves[(ply*7)%len(moves)]
		if err := pos.PlayMove(mv); err != nil {
			t.Fatalf("listed move rejected at ply %d: %v", ply, err)
		}
		if got, want := pos.Hash(), pos.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%v", ply, got, want, mv)
		}
		back, err := DecodePosition(pos.Encode())
		if err != nil {
			t.Fatalf("re-decode at ply %d: %v", ply, err)
		}
		if !back.Equal(pos) || back.Hash() != pos.Hash() {
			t.Fatalf("FEN round trip differs at ply %d: %s", ply, pos.Encode())
		}
	}
}

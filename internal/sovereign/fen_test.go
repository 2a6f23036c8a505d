package sovereign

import (
	"errors"
	"strings"
	"testing"
)

const initialBoardField = "aqabvrvnbrbnbbbqbkbbbnbrynyrsbsq/aranvpvpbpbpbpbpbpbpbpbpypypsnsr/nbnp12opob/nqnp12opoq/crcp12rprr/cncp12rprn/gbgp12pppb/gqgp12pppq/yqyp12vpvq/ybyp12vpvb/onop12npnn/orop12npnr/rqrp12cpcq/rbrp12cpcb/srsnppppwpwpwpwpwpwpwpwpgpgpanar/sqsbprpnwrwnwbwqwkwbwnwrgngrabaq"

func TestInitialFENRoundTrip(t *testing.T) {
	pos, err := DecodePosition(InitialFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := pos.Encode(); got != InitialFEN {
		t.Fatalf("encode mismatch:\n got: %s\nwant: %s", got, InitialFEN)
	}
	if pos.ActivePlayer() != Player1 || pos.Ply() != 0 {
		t.Fatalf("active=%d ply=%d", pos.ActivePlayer(), pos.Ply())
	}
	if pos.Owned(Player1) != NoColor || pos.Owned(Player2) != NoColor {
		t.Fatalf("no army should be owned at the start")
	}
	if got := pos.Board().AllPieces().Count(); got != 112 {
		t.Fatalf("piece count: got %d want 112", got)
	}
	if got := pos.Board().PieceAt(MustSquare("i01")); got != NewPiece(White, King) {
		t.Fatalf("i01: got %v", got)
	}
	if got := pos.Board().PieceAt(MustSquare("i16")); got != NewPiece(Black, King) {
		t.Fatalf("i16: got %v", got)
	}
}

func TestEncodeOwnershipFields(t *testing.T) {
	pos := NewInitialPosition()
	pos.owned = [2]Color{White, Black}
	pos.controlled = [2]ColorSet{ColorSetOf(Green), ColorSetOf(Yellow, Pink)}

	want := initialBoardField + " 1 w g b py 0"
	if got := pos.Encode(); got != want {
		t.Fatalf("encode mismatch:\n got: %s\nwant: %s", got, want)
	}

	back, err := DecodePosition(want)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !back.Equal(pos) {
		t.Fatalf("round trip changed the position: %s", back.Encode())
	}
}

func TestDecodeIsCaseInsensitive(t *testing.T) {
	fen := strings.ToUpper(initialBoardField + " 2 w g b py 7")
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got, want := pos.Encode(), initialBoardField+" 2 w g b py 7"; got != want {
		t.Fatalf("encode mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	sixteenEmpty := strings.TrimSuffix(strings.Repeat("16/", 16), "/")
	tests := []struct {
		name string
		fen  string
	}{
		{"missing field", sixteenEmpty + " 1 - - - -"},
		{"extra field", sixteenEmpty + " 1 - - - - 0 x"},
		{"fifteen ranks", strings.TrimPrefix(sixteenEmpty, "16/") + " 1 - - - - 0"},
		{"rank too long", "17" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"rank too short", "15" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"single digit run", "wk1" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"zero run", "00" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"unknown color", "xk14" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"unknown role", "wz14" + strings.TrimPrefix(sixteenEmpty, "16") + " 1 - - - - 0"},
		{"bad active player", sixteenEmpty + " 3 - - - - 0"},
		{"bad owned army", sixteenEmpty + " 1 x - - - 0"},
		{"two owned armies", sixteenEmpty + " 1 wb - - - 0"},
		{"repeated controlled army", sixteenEmpty + " 1 w gg b - 0"},
		{"owned and controlled", sixteenEmpty + " 1 w w b - 0"},
		{"army claimed twice", sixteenEmpty + " 1 w g b g 0"},
		{"same owned army", sixteenEmpty + " 1 w - w - 0"},
		{"negative ply", sixteenEmpty + " 1 - - - - -1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePosition(tc.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("expected ErrInvalidFEN, got %v", err)
			}
		})
	}
}

func TestDecodeTwoDigitRuns(t *testing.T) {
	fen := "08bk07/16/16/16/16/16/16/16/16/16/16/04wq11/16/16/16/08wk07 1 w n b - 0"
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := pos.Board().PieceAt(MustSquare("e05")); got != NewPiece(White, Queen) {
		t.Fatalf("e05: got %v", got)
	}
	if got := pos.Encode(); got != fen {
		t.Fatalf("encode mismatch:\n got: %s\nwant: %s", got, fen)
	}
}

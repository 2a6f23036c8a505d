package sovereign

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Seven space-separated fields: board, active player, player 1 owned and
// controlled armies, player 2 owned and controlled armies, ply. Ranks run from
// 16 down to 1; empty runs are two-digit counts.
const fenFields = 7

func (p *Position) Encode() string {
	var sb strings.Builder
	sb.Grow(256)
	encodeBoard(&sb, p.board)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(p.active)))
	for pl := 0; pl < 2; pl++ {
		sb.WriteByte(' ')
		sb.WriteByte(lower(p.owned[pl].Char()))
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(p.controlled[pl].Codes()))
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(p.ply), 10))
	return sb.String()
}

// String is the FEN form.
func (p *Position) String() string { return p.Encode() }

func encodeBoard(sb *strings.Builder, b *Board) {
	for r := BoardWidth - 1; r >= 0; r-- {
		if r < BoardWidth-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < BoardWidth; f++ {
			pc := b.PieceAt(SquareAt(File(f), Rank(r)))
			if pc.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(sb, "%02d", empty)
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			fmt.Fprintf(sb, "%02d", empty)
		}
	}
}

// DecodePosition parses a FEN on the default tables.
func DecodePosition(fen string) (*Position, error) {
	return DecodePositionWithTables(fen, nil)
}

// DecodePositionWithTables parses a FEN. Piece and color letters are accepted in
// either case. A nil t selects DefaultTables.
func DecodePositionWithTables(fen string, t *Tables) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != fenFields {
		return nil, fmt.Errorf("%w: want %d fields, got %d", ErrInvalidFEN, fenFields, len(parts))
	}

	b := NewBoard(t)
	if err := decodeBoard(b, parts[0]); err != nil {
		return nil, err
	}
	p := newPosition(b)

	switch parts[1] {
	case "1":
		p.active = Player1
	case "2":
		p.active = Player2
	default:
		return nil, fmt.Errorf("%w: active player %q", ErrInvalidFEN, parts[1])
	}

	for pl := 0; pl < 2; pl++ {
		owned, err := decodeOwned(parts[2+2*pl])
		if err != nil {
			return nil, err
		}
		controlled, err := decodeControlled(parts[3+2*pl])
		if err != nil {
			return nil, err
		}
		if controlled.Has(owned) {
			return nil, fmt.Errorf("%w: player %d both owns and controls %v", ErrInvalidFEN, pl+1, owned)
		}
		p.owned[pl] = owned
		p.controlled[pl] = controlled
	}
	if overlap := p.Claimed(Player1) & p.Claimed(Player2); !overlap.Empty() {
		return nil, fmt.Errorf("%w: armies %s claimed by both players", ErrInvalidFEN, overlap.Codes())
	}

	ply, err := strconv.ParseUint(parts[6], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: ply %q", ErrInvalidFEN, parts[6])
	}
	p.ply = uint32(ply)
	return p, nil
}

func decodeBoard(b *Board, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != BoardWidth {
		return fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, BoardWidth, len(ranks))
	}
	for i, row := range ranks {
		r := Rank(BoardWidth - 1 - i)
		f := 0
		for j := 0; j < len(row); j += 2 {
			if j+1 >= len(row) {
				return fmt.Errorf("%w: rank %d: dangling %q", ErrInvalidFEN, r+1, row[j:])
			}
			a, c := row[j], row[j+1]
			if isDigit(a) {
				if !isDigit(c) {
					return fmt.Errorf("%w: rank %d: empty run must be two digits", ErrInvalidFEN, r+1)
				}
				n := int(a-'0')*10 + int(c-'0')
				if n == 0 || f+n > BoardWidth {
					return fmt.Errorf("%w: rank %d: bad empty run %d", ErrInvalidFEN, r+1, n)
				}
				f += n
				continue
			}
			color, ok := ColorFromChar(a)
			if !ok {
				return fmt.Errorf("%w: rank %d: unknown color %q", ErrInvalidFEN, r+1, a)
			}
			role, ok := RoleFromChar(c)
			if !ok {
				return fmt.Errorf("%w: rank %d: unknown role %q", ErrInvalidFEN, r+1, c)
			}
			if f >= BoardWidth {
				return fmt.Errorf("%w: rank %d: too many squares", ErrInvalidFEN, r+1)
			}
			b.InsertPiece(SquareAt(File(f), r), NewPiece(color, role))
			f++
		}
		if f != BoardWidth {
			return fmt.Errorf("%w: rank %d: covers %d files", ErrInvalidFEN, r+1, f)
		}
	}
	return nil
}

func decodeOwned(s string) (Color, error) {
	if s == "-" {
		return NoColor, nil
	}
	if len(s) != 1 {
		return NoColor, fmt.Errorf("%w: owned army %q", ErrInvalidFEN, s)
	}
	c, ok := ColorFromChar(s[0])
	if !ok {
		return NoColor, fmt.Errorf("%w: owned army %q", ErrInvalidFEN, s)
	}
	return c, nil
}

func decodeControlled(s string) (ColorSet, error) {
	if s == "-" {
		return 0, nil
	}
	var cs ColorSet
	for i := 0; i < len(s); i++ {
		c, ok := ColorFromChar(s[i])
		if !ok || cs.Has(c) {
			return 0, fmt.Errorf("%w: controlled armies %q", ErrInvalidFEN, s)
		}
		cs = cs.Add(c)
	}
	return cs, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

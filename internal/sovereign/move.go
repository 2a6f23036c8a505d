package sovereign

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMove = errors.New("invalid move")

// Move is one piece moving between two squares, optionally promoting.
// Text form: color, role, origin, destination, then an optional "=" and role,
// e.g. "WNf01g03" or "YPh09h08=K".
type Move struct {
	Color     Color
	Role      Role
	From      Square
	To        Square
	Promotion Role
}

func (m Move) Piece() Piece { return Piece{Color: m.Color, Role: m.Role} }

func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 8 && len(s) != 10 {
		return Move{}, fmt.Errorf("%w: %q: want 8 or 10 characters", ErrInvalidMove, s)
	}
	color, ok := ColorFromChar(s[0])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q: unknown color %q", ErrInvalidMove, s, s[0])
	}
	role, ok := RoleFromChar(s[1])
	if !ok {
		return Move{}, fmt.Errorf("%w: %q: unknown role %q", ErrInvalidMove, s, s[1])
	}
	from, err := ParseSquare(s[2:5])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[5:8])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	m := Move{Color: color, Role: role, From: from, To: to}
	if len(s) == 10 {
		if s[8] != '=' {
			return Move{}, fmt.Errorf("%w: %q: expected '=' before promotion", ErrInvalidMove, s)
		}
		promo, ok := RoleFromChar(s[9])
		if !ok {
			return Move{}, fmt.Errorf("%w: %q: unknown promotion %q", ErrInvalidMove, s, s[9])
		}
		m.Promotion = promo
	}
	return m, nil
}

func (m Move) String() string {
	var sb strings.Builder
	sb.Grow(10)
	sb.WriteByte(m.Color.Char())
	sb.WriteByte(m.Role.Char())
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if m.Promotion != NoRole {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Char())
	}
	return sb.String()
}

// Package tictactoe implements 3x3 noughts and crosses. X always moves first and
// is the maximizing actor.
package tictactoe

import (
	"fmt"
	"strings"

	"treesearch/game"
)

type Mark int8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Cell indexes the board row by row, 0 is the top left corner.
type Cell int

const Size = 9

var lines = [8][3]Cell{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// State is an immutable board position. Being an array, copies never share marks.
type State struct {
	board  [Size]Mark
	toMove Mark
}

func New() *State {
	return &State{toMove: X}
}

// FromRows builds a position from three row strings using "X", "O" and ".".
// The side to move is derived from the mark counts.
func FromRows(rows ...string) (*State, error) {
	if len(rows) != 3 {
		return nil, fmt.Errorf("expected 3 rows, got %d", len(rows))
	}

	s := New()
	xs, os := 0, 0
	for r, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 cells, got %q", r, row)
		}
		for c, ch := range row {
			cell := r*3 + c
			switch ch {
			case 'X', 'x':
				s.board[cell] = X
				xs++
			case 'O', 'o':
				s.board[cell] = O
				os++
			case '.', ' ':
			default:
				return nil, fmt.Errorf("row %d: unexpected mark %q", r, ch)
			}
		}
	}

	switch xs - os {
	case 0:
		s.toMove = X
	case 1:
		s.toMove = O
	default:
		return nil, fmt.Errorf("invalid mark counts: %d X and %d O", xs, os)
	}
	return s, nil
}

func (s *State) At(cell Cell) Mark {
	return s.board[cell]
}

func (s *State) Actor() game.Actor {
	if s.toMove == X {
		return game.Maximizer
	}
	return game.Minimizer
}

func (s *State) LegalActions() []Cell {
	if s.Winner() != Empty {
		return nil
	}
	actions := make([]Cell, 0, Size)
	for i, m := range s.board {
		if m == Empty {
			actions = append(actions, Cell(i))
		}
	}
	return actions
}

func (s *State) Play(cell Cell) game.State[Cell] {
	if cell < 0 || cell >= Size || s.board[cell] != Empty {
		panic(fmt.Sprintf("tictactoe: illegal move %d", cell))
	}
	next := *s
	next.board[cell] = s.toMove
	if s.toMove == X {
		next.toMove = O
	} else {
		next.toMove = X
	}
	return &next
}

// Winner returns the mark owning a full line, or Empty.
func (s *State) Winner() Mark {
	for _, line := range lines {
		m := s.board[line[0]]
		if m != Empty && m == s.board[line[1]] && m == s.board[line[2]] {
			return m
		}
	}
	return Empty
}

func (s *State) IsTerminal() bool {
	if s.Winner() != Empty {
		return true
	}
	for _, m := range s.board {
		if m == Empty {
			return false
		}
	}
	return true
}

// Payoff is +1 for an X win, -1 for an O win and 0 for a draw.
func (s *State) Payoff() float64 {
	switch s.Winner() {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// Hash encodes the board in base 3, the side to move follows from the marks.
func (s *State) Hash() game.StateHash {
	var h uint64
	for _, m := range s.board {
		h = h*3 + uint64(m)
	}
	return game.StateHash(h)
}

func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.WriteString(s.board[r*3+c].String())
		}
		if r < 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

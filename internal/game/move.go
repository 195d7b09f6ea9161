package game

import (
	"errors"
	"fmt"
	"strings"
)

// Move is one of the three hand shapes. The zero value is not a valid move.
type Move int

const (
	Rock Move = iota + 1
	Paper
	Scissor
)

var ErrInvalidMove = errors.New("invalid move")

// InvalidMoveError is returned when a value outside {ROCK, PAPER, SCISSOR}
// is submitted. It matches ErrInvalidMove with errors.Is.
type InvalidMoveError struct {
	Value string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q", e.Value)
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// relation holds the fixed superiority cycle:
// ROCK beats SCISSOR, SCISSOR beats PAPER, PAPER beats ROCK.
var relation = map[Move]struct{ beats, losesTo Move }{
	Rock:    {beats: Scissor, losesTo: Paper},
	Paper:   {beats: Rock, losesTo: Scissor},
	Scissor: {beats: Paper, losesTo: Rock},
}

// Moves returns all valid moves in table order.
func Moves() []Move {
	return []Move{Rock, Paper, Scissor}
}

// ParseMove accepts canonical names ("ROCK") and lower-case aliases
// ("rock", "scissors").
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ROCK":
		return Rock, nil
	case "PAPER":
		return Paper, nil
	case "SCISSOR", "SCISSORS":
		return Scissor, nil
	default:
		return 0, &InvalidMoveError{Value: s}
	}
}

func (m Move) Valid() bool {
	_, ok := relation[m]
	return ok
}

// Beats returns the move m wins against.
func (m Move) Beats() Move {
	return relation[m].beats
}

// LosesTo returns the move that wins against m.
func (m Move) LosesTo() Move {
	return relation[m].losesTo
}

func (m Move) String() string {
	switch m {
	case Rock:
		return "ROCK"
	case Paper:
		return "PAPER"
	case Scissor:
		return "SCISSOR"
	default:
		return fmt.Sprintf("Move(%d)", int(m))
	}
}

func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &InvalidMoveError{Value: m.String()}
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	parsed, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
)

// ErrSupplierMove is returned when a MoveSupplier yields a value outside
// the three moves. It is a server fault, not a bad request.
var ErrSupplierMove = errors.New("move supplier returned an invalid move")

// MoveSupplier provides the counterpart's move for each round.
type MoveSupplier interface {
	Next() Move
}

// SupplierFunc adapts a plain function to MoveSupplier.
type SupplierFunc func() Move

func (f SupplierFunc) Next() Move { return f() }

// RandomSupplier draws uniformly from all three moves. The human's move is
// never excluded, so repeats and draws are possible.
type RandomSupplier struct{}

func NewRandomSupplier() RandomSupplier {
	return RandomSupplier{}
}

func (RandomSupplier) Next() Move {
	moves := Moves()
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(moves))))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		n = big.NewInt(0)
	}
	return moves[n.Int64()]
}

// SequenceSupplier cycles through a fixed list of moves.
type SequenceSupplier struct {
	mu    sync.Mutex
	moves []Move
	next  int
}

func NewSequenceSupplier(moves ...Move) *SequenceSupplier {
	if len(moves) == 0 {
		moves = Moves()
	}
	return &SequenceSupplier{moves: append([]Move(nil), moves...)}
}

func (s *SequenceSupplier) Next() Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.moves[s.next%len(s.moves)]
	s.next++
	return m
}

package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is the engine's position in the round state machine.
type Phase string

const (
	PhaseAwaitingPick Phase = "AWAITING_PICK"
	PhaseResolved     Phase = "RESOLVED"
)

// State is the read-only view the UI layer renders from.
type State struct {
	Phase           Phase
	Outcome         Outcome
	WinnerLabel     string
	HumanMove       *Move
	CounterpartMove *Move
}

// RoundEngine owns the current round and the history of completed rounds.
// A pick resolves the round in one step; restart starts a fresh one.
// Calls made in the wrong phase are no-ops.
type RoundEngine struct {
	mu       sync.Mutex
	id       string
	supplier MoveSupplier
	now      func() time.Time
	newID    func() string

	current Round
	history []Round
}

type Option func(*RoundEngine)

// WithSupplier sets the source of counterpart moves.
func WithSupplier(s MoveSupplier) Option {
	return func(e *RoundEngine) {
		if s != nil {
			e.supplier = s
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *RoundEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithID sets the engine identifier (usually the session ID).
func WithID(id string) Option {
	return func(e *RoundEngine) {
		e.id = id
	}
}

func NewRoundEngine(opts ...Option) *RoundEngine {
	e := &RoundEngine{
		supplier: NewRandomSupplier(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = e.newID()
	}
	e.current = e.freshRound()
	return e
}

func (e *RoundEngine) ID() string {
	return e.id
}

func (e *RoundEngine) freshRound() Round {
	return Round{
		ID:        e.newID(),
		Outcome:   Pending,
		CreatedAt: e.now(),
	}
}

// SubmitHumanPick records the human move, draws the counterpart move and
// resolves the round. After resolution further picks return the finished
// round unchanged. A bad counterpart move leaves the round awaiting a pick.
func (e *RoundEngine) SubmitHumanPick(move Move) (Round, error) {
	if !move.Valid() {
		return Round{}, &InvalidMoveError{Value: move.String()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current.Resolved() {
		return e.current.clone(), nil
	}

	human := move
	counterpart := e.supplier.Next()
	if !counterpart.Valid() {
		return Round{}, fmt.Errorf("%w: %s", ErrSupplierMove, counterpart)
	}
	outcome := Resolve(human, counterpart)
	finished := e.now()

	r := e.current
	r.HumanMove = &human
	r.CounterpartMove = &counterpart
	r.Outcome = outcome
	if winner, ok := outcome.Winner(); ok {
		r.WinnerLabel = winner.Label()
	}
	r.FinishedAt = &finished

	e.current = r
	e.history = append(e.history, r.clone())

	return r.clone(), nil
}

// Restart replaces a finished round with a fresh one. Before resolution it
// returns the current round unchanged.
func (e *RoundEngine) Restart() Round {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.current.Resolved() {
		return e.current.clone()
	}

	e.current = e.freshRound()
	return e.current.clone()
}

func (e *RoundEngine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase()
}

func (e *RoundEngine) phase() Phase {
	if e.current.Resolved() {
		return PhaseResolved
	}
	return PhaseAwaitingPick
}

func (e *RoundEngine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.current.clone()
	return State{
		Phase:           e.phase(),
		Outcome:         r.Outcome,
		WinnerLabel:     r.WinnerLabel,
		HumanMove:       r.HumanMove,
		CounterpartMove: r.CounterpartMove,
	}
}

// Current returns a snapshot of the round in play.
func (e *RoundEngine) Current() Round {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.clone()
}

// History returns a copy of all completed rounds, oldest first.
func (e *RoundEngine) History() []Round {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Round, len(e.history))
	for i, r := range e.history {
		out[i] = r.clone()
	}
	return out
}

// Snapshot returns the current round and the history length read under one
// lock, so the two always agree.
func (e *RoundEngine) Snapshot() (Round, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.clone(), len(e.history)
}

func (e *RoundEngine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

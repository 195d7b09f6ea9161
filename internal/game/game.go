package game

import "time"

// Side identifies who made a move.
type Side int

const (
	Human Side = iota + 1
	Counterpart
)

// Label is the name shown in the outcome banner.
func (s Side) Label() string {
	switch s {
	case Human:
		return "PLAYER 1"
	case Counterpart:
		return "COM"
	default:
		return ""
	}
}

func (s Side) String() string {
	switch s {
	case Human:
		return "human"
	case Counterpart:
		return "counterpart"
	default:
		return ""
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case Human:
		return Counterpart
	case Counterpart:
		return Human
	default:
		return 0
	}
}

type outcomeKind int

const (
	kindPending outcomeKind = iota
	kindWin
	kindDraw
)

// Outcome is PENDING, WIN(side) or DRAW. The zero value is PENDING.
type Outcome struct {
	kind   outcomeKind
	winner Side
}

var (
	Pending = Outcome{}
	Draw    = Outcome{kind: kindDraw}
)

func Win(side Side) Outcome {
	return Outcome{kind: kindWin, winner: side}
}

func (o Outcome) IsPending() bool { return o.kind == kindPending }
func (o Outcome) IsDraw() bool    { return o.kind == kindDraw }

// Winner returns the winning side; ok is false for PENDING and DRAW.
func (o Outcome) Winner() (Side, bool) {
	if o.kind != kindWin {
		return 0, false
	}
	return o.winner, true
}

// Loser returns the losing side; ok is false for PENDING and DRAW.
func (o Outcome) Loser() (Side, bool) {
	if o.kind != kindWin {
		return 0, false
	}
	return o.winner.Opponent(), true
}

// Kind returns "PENDING", "WIN" or "DRAW".
func (o Outcome) Kind() string {
	switch o.kind {
	case kindWin:
		return "WIN"
	case kindDraw:
		return "DRAW"
	default:
		return "PENDING"
	}
}

func (o Outcome) String() string {
	if o.kind == kindWin {
		return "WIN(" + o.winner.Label() + ")"
	}
	return o.Kind()
}

// Banner renders "<WINNER> WIN" or "DRAW"; empty while pending.
func (o Outcome) Banner() string {
	switch o.kind {
	case kindWin:
		return o.winner.Label() + " WIN"
	case kindDraw:
		return "DRAW"
	default:
		return ""
	}
}

// Tone picks the banner style: "draw" for a draw, "win" for any decided
// round, empty while pending.
func (o Outcome) Tone() string {
	switch o.kind {
	case kindWin:
		return "win"
	case kindDraw:
		return "draw"
	default:
		return ""
	}
}

// Resolve compares both moves using the superiority table.
// It is pure: the result depends only on the two moves.
func Resolve(human, counterpart Move) Outcome {
	switch {
	case human.LosesTo() == counterpart:
		return Win(Counterpart)
	case human.Beats() == counterpart:
		return Win(Human)
	default:
		return Draw
	}
}

// Round is an immutable snapshot of one game.
type Round struct {
	ID              string
	HumanMove       *Move
	CounterpartMove *Move
	Outcome         Outcome
	WinnerLabel     string
	CreatedAt       time.Time
	FinishedAt      *time.Time
}

func (r Round) Resolved() bool {
	return !r.Outcome.IsPending()
}

// clone copies pointer fields so callers cannot reach engine memory.
func (r Round) clone() Round {
	if r.HumanMove != nil {
		m := *r.HumanMove
		r.HumanMove = &m
	}
	if r.CounterpartMove != nil {
		m := *r.CounterpartMove
		r.CounterpartMove = &m
	}
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		r.FinishedAt = &t
	}
	return r
}

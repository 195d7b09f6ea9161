package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Session binds one browser session to its own round engine.
type Session struct {
	ID        string
	Engine    *game.RoundEngine
	CreatedAt time.Time

	// ops serializes pick/restart so metrics see each transition once
	ops sync.Mutex

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionService keeps sessions in memory. Nothing is persisted.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  *game.Factory
	now      func() time.Time
}

// NewSessionService creates a service whose engines draw counterpart moves
// from supplier. A nil supplier means uniform random.
func NewSessionService(supplier game.MoveSupplier) *SessionService {
	return NewSessionServiceWithClock(supplier, time.Now)
}

func NewSessionServiceWithClock(supplier game.MoveSupplier, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		sessions: make(map[string]*Session),
		factory:  game.NewFactory(supplier, now),
		now:      now,
	}
}

func (s *SessionService) Create() (*Session, error) {
	id := uuid.NewString()
	now := s.now()

	sess := &Session{
		ID:        id,
		Engine:    s.factory.CreateEngine(id),
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	SessionsActive.Set(float64(count))
	logger.Info("session created", "session", id, "active", count)
	return sess, nil
}

func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch(s.now())
	return sess, nil
}

// Exists reports whether id is live without refreshing its idle timer.
func (s *SessionService) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

func (s *SessionService) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	SessionsActive.Set(float64(count))
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Pick submits the human move for the session's current round. resolved
// reports whether this call finished the round; a pick on a finished round
// returns that round unchanged with resolved false.
func (s *SessionService) Pick(id string, move game.Move) (view domain.RoundView, resolved bool, err error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.RoundView{}, false, err
	}

	sess.ops.Lock()
	defer sess.ops.Unlock()

	_, before := sess.Engine.Snapshot()
	round, err := sess.Engine.SubmitHumanPick(move)
	if err != nil {
		logger.Warn("pick rejected", "session", id, "error", err)
		return domain.RoundView{}, false, err
	}

	view = ViewOf(sess)
	if view.RoundsPlayed <= before {
		logger.Debug("pick ignored, round already resolved", "session", id, "round", round.ID)
		return view, false, nil
	}

	result := HumanResult(round.Outcome)
	RoundsTotal.WithLabelValues(string(result)).Inc()
	if round.FinishedAt != nil {
		RoundDuration.Observe(round.FinishedAt.Sub(round.CreatedAt).Seconds())
	}
	logger.Info("round resolved",
		"session", id,
		"round", round.ID,
		"human", round.HumanMove.String(),
		"counterpart", round.CounterpartMove.String(),
		"outcome", round.Outcome.String(),
	)
	return view, true, nil
}

// Restart starts a new round if the current one is finished.
func (s *SessionService) Restart(id string) (domain.RoundView, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.RoundView{}, err
	}

	sess.ops.Lock()
	defer sess.ops.Unlock()

	before := sess.Engine.Current().ID
	round := sess.Engine.Restart()
	if round.ID != before {
		logger.Info("round restarted", "session", id, "round", round.ID)
	} else {
		logger.Debug("restart ignored, round in play", "session", id, "round", round.ID)
	}

	return ViewOf(sess), nil
}

func (s *SessionService) State(id string) (domain.RoundView, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.RoundView{}, err
	}
	return ViewOf(sess), nil
}

// StartCleanup removes sessions idle for longer than ttl until ctx is done.
func (s *SessionService) StartCleanup(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupStale(ttl)
			}
		}
	}()
}

// CleanupStale drops idle sessions and returns how many were removed.
func (s *SessionService) CleanupStale(ttl time.Duration) int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) > ttl {
			delete(s.sessions, id)
			removed++
			logger.Info("cleaned up stale session", "session", id)
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	SessionsActive.Set(float64(count))
	return removed
}

// HumanResult maps an outcome to win/lose/draw from the human side.
func HumanResult(o game.Outcome) domain.GameResult {
	if o.IsPending() {
		return domain.GameResultPending
	}
	if o.IsDraw() {
		return domain.GameResultDraw
	}
	if winner, _ := o.Winner(); winner == game.Human {
		return domain.GameResultWin
	}
	return domain.GameResultLose
}

// ViewOf builds the client snapshot of the session's current round.
func ViewOf(sess *Session) domain.RoundView {
	round, played := sess.Engine.Snapshot()
	phase := game.PhaseAwaitingPick
	if round.Resolved() {
		phase = game.PhaseResolved
	}

	v := domain.RoundView{
		SessionID:    sess.ID,
		RoundID:      round.ID,
		GameType:     domain.GameTypeRPS,
		Mode:         domain.GameModePVE,
		Phase:        string(phase),
		Outcome:      round.Outcome.Kind(),
		Result:       HumanResult(round.Outcome),
		Banner:       round.Outcome.Banner(),
		Tone:         round.Outcome.Tone(),
		CreatedAt:    round.CreatedAt,
		FinishedAt:   round.FinishedAt,
		RoundsPlayed: played,
	}
	if winner, ok := round.Outcome.Winner(); ok {
		v.Winner = winner.String()
		label := round.WinnerLabel
		v.WinnerLabel = &label
	}
	if round.HumanMove != nil {
		m := round.HumanMove.String()
		v.HumanMove = &m
	}
	if round.CounterpartMove != nil {
		m := round.CounterpartMove.String()
		v.CounterpartMove = &m
	}
	return v
}

// Rules lists the superiority table.
func Rules() []domain.RuleView {
	moves := game.Moves()
	rules := make([]domain.RuleView, 0, len(moves))
	for _, m := range moves {
		rules = append(rules, domain.RuleView{
			Move:    m.String(),
			Beats:   m.Beats().String(),
			LosesTo: m.LosesTo().String(),
		})
	}
	return rules
}

package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/game"

	dto "github.com/prometheus/client_model/go"
)

func TestSessionPickAndRestart(t *testing.T) {
	svc := NewSessionService(game.NewSequenceSupplier(game.Scissor))

	sess, err := svc.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	v, err := svc.State(sess.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if v.Phase != string(game.PhaseAwaitingPick) || v.Outcome != "PENDING" || v.HumanMove != nil || v.WinnerLabel != nil {
		t.Fatalf("initial view = %+v", v)
	}

	v, resolved, err := svc.Pick(sess.ID, game.Rock)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !resolved {
		t.Fatalf("first pick should resolve the round")
	}
	if v.Phase != string(game.PhaseResolved) || v.Outcome != "WIN" || v.Result != domain.GameResultWin {
		t.Fatalf("resolved view = %+v", v)
	}
	if v.WinnerLabel == nil || *v.WinnerLabel != "PLAYER 1" || v.Banner != "PLAYER 1 WIN" {
		t.Fatalf("winner label = %v banner=%q", v.WinnerLabel, v.Banner)
	}
	if *v.HumanMove != "ROCK" || *v.CounterpartMove != "SCISSOR" || v.RoundsPlayed != 1 {
		t.Fatalf("moves = %s/%s rounds=%d", *v.HumanMove, *v.CounterpartMove, v.RoundsPlayed)
	}

	again, resolved, err := svc.Pick(sess.ID, game.Paper)
	if err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if resolved {
		t.Fatalf("second pick reported as resolving")
	}
	if again.RoundID != v.RoundID || *again.HumanMove != "ROCK" || again.RoundsPlayed != 1 {
		t.Fatalf("second pick changed the round: %+v", again)
	}

	fresh, err := svc.Restart(sess.ID)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if fresh.RoundID == v.RoundID || fresh.Outcome != "PENDING" || fresh.HumanMove != nil {
		t.Fatalf("restart view = %+v", fresh)
	}
	if fresh.RoundsPlayed != 1 {
		t.Fatalf("history should keep the finished round, got %d", fresh.RoundsPlayed)
	}
}

func TestSessionInvalidMove(t *testing.T) {
	svc := NewSessionService(nil)
	sess, _ := svc.Create()

	if _, _, err := svc.Pick(sess.ID, game.Move(0)); !errors.Is(err, game.ErrInvalidMove) {
		t.Fatalf("err = %v; want ErrInvalidMove", err)
	}
}

func TestSessionNotFound(t *testing.T) {
	svc := NewSessionService(nil)

	if _, err := svc.State("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("state err = %v", err)
	}
	if _, _, err := svc.Pick("missing", game.Rock); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("pick err = %v", err)
	}
	if _, err := svc.Restart("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("restart err = %v", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := NewSessionService(game.NewSequenceSupplier(game.Paper))
	a, _ := svc.Create()
	b, _ := svc.Create()

	if _, _, err := svc.Pick(a.ID, game.Rock); err != nil {
		t.Fatalf("pick: %v", err)
	}

	vb, _ := svc.State(b.ID)
	if vb.Phase != string(game.PhaseAwaitingPick) {
		t.Fatalf("pick in one session leaked into another: %+v", vb)
	}
	if svc.Count() != 2 {
		t.Fatalf("count = %d", svc.Count())
	}
}

func TestCleanupStale(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewSessionServiceWithClock(nil, clock)

	old, _ := svc.Create()
	now = now.Add(30 * time.Minute)
	recent, _ := svc.Create()
	now = now.Add(45 * time.Minute)

	if n := svc.CleanupStale(time.Hour); n != 1 {
		t.Fatalf("removed %d; want 1", n)
	}
	if _, err := svc.Get(old.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("old session should be gone")
	}
	if _, err := svc.Get(recent.ID); err != nil {
		t.Fatalf("recent session removed: %v", err)
	}
}

func TestHumanResult(t *testing.T) {
	cases := []struct {
		o    game.Outcome
		want domain.GameResult
	}{
		{game.Pending, domain.GameResultPending},
		{game.Draw, domain.GameResultDraw},
		{game.Win(game.Human), domain.GameResultWin},
		{game.Win(game.Counterpart), domain.GameResultLose},
	}
	for _, tc := range cases {
		if got := HumanResult(tc.o); got != tc.want {
			t.Fatalf("HumanResult(%s) = %s; want %s", tc.o, got, tc.want)
		}
	}
}

func TestRules(t *testing.T) {
	rules := Rules()
	if len(rules) != 3 {
		t.Fatalf("rules = %v", rules)
	}
	if rules[0].Move != "ROCK" || rules[0].Beats != "SCISSOR" || rules[0].LosesTo != "PAPER" {
		t.Fatalf("rock rule = %+v", rules[0])
	}
}

func roundsCounted(t *testing.T) float64 {
	t.Helper()

	total := 0.0
	for _, r := range []domain.GameResult{domain.GameResultWin, domain.GameResultLose, domain.GameResultDraw} {
		var m dto.Metric
		if err := RoundsTotal.WithLabelValues(string(r)).Write(&m); err != nil {
			t.Fatalf("read metric: %v", err)
		}
		total += m.GetCounter().GetValue()
	}
	return total
}

func TestConcurrentPickRestartCountsEachRoundOnce(t *testing.T) {
	const pairs = 200
	svc := NewSessionService(game.NewSequenceSupplier())
	sess, _ := svc.Create()
	start := roundsCounted(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		resolved int
	)
	for i := 0; i < pairs; i++ {
		wg.Add(2)
		go func(m game.Move) {
			defer wg.Done()
			_, ok, err := svc.Pick(sess.ID, m)
			if err != nil {
				t.Errorf("pick: %v", err)
				return
			}
			if ok {
				mu.Lock()
				resolved++
				mu.Unlock()
			}
		}(game.Moves()[i%3])
		go func() {
			defer wg.Done()
			if _, err := svc.Restart(sess.ID); err != nil {
				t.Errorf("restart: %v", err)
			}
		}()
	}
	wg.Wait()

	played := sess.Engine.HistoryLen()
	if played == 0 || played != resolved {
		t.Fatalf("history len = %d; resolved picks = %d", played, resolved)
	}
	if got := roundsCounted(t) - start; got != float64(played) {
		t.Fatalf("rounds counted = %v; want %d", got, played)
	}
	for i, r := range sess.Engine.History() {
		if r.HumanMove == nil || r.CounterpartMove == nil || r.FinishedAt == nil || r.Outcome.IsPending() {
			t.Fatalf("history[%d] incomplete: %+v", i, r)
		}
	}

	v, _ := svc.State(sess.ID)
	if v.RoundsPlayed != played {
		t.Fatalf("rounds_played = %d; want %d", v.RoundsPlayed, played)
	}
	if (v.Phase == string(game.PhaseResolved)) != (v.FinishedAt != nil) {
		t.Fatalf("view phase and round disagree: %+v", v)
	}
}

func TestPickSupplierFaultLeavesRoundOpen(t *testing.T) {
	svc := NewSessionService(game.SupplierFunc(func() game.Move { return game.Move(0) }))
	sess, _ := svc.Create()
	start := roundsCounted(t)

	_, resolved, err := svc.Pick(sess.ID, game.Rock)
	if !errors.Is(err, game.ErrSupplierMove) || resolved {
		t.Fatalf("err = %v resolved = %v; want ErrSupplierMove", err, resolved)
	}

	v, _ := svc.State(sess.ID)
	if v.Phase != string(game.PhaseAwaitingPick) || v.RoundsPlayed != 0 {
		t.Fatalf("view after supplier fault = %+v", v)
	}
	if roundsCounted(t) != start {
		t.Fatalf("supplier fault was counted as a round")
	}
}

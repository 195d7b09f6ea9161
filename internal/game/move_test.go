package game

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		human, counterpart Move
		want               Outcome
	}{
		{Rock, Scissor, Win(Human)},
		{Rock, Paper, Win(Counterpart)},
		{Rock, Rock, Draw},
		{Paper, Rock, Win(Human)},
		{Paper, Scissor, Win(Counterpart)},
		{Paper, Paper, Draw},
		{Scissor, Paper, Win(Human)},
		{Scissor, Rock, Win(Counterpart)},
		{Scissor, Scissor, Draw},
	}

	for _, tc := range cases {
		if got := Resolve(tc.human, tc.counterpart); got != tc.want {
			t.Fatalf("Resolve(%s,%s) = %s; want %s", tc.human, tc.counterpart, got, tc.want)
		}
	}
}

func TestSuperiorityIsCycle(t *testing.T) {
	for _, a := range Moves() {
		if a.Beats() == a || a.LosesTo() == a {
			t.Fatalf("%s relates to itself", a)
		}
		if a.Beats().LosesTo() != a {
			t.Fatalf("%s beats %s but %s does not lose to it", a, a.Beats(), a.Beats())
		}
		for _, b := range Moves() {
			if a == b {
				continue
			}
			aWins := a.Beats() == b
			bWins := b.Beats() == a
			if aWins == bWins {
				t.Fatalf("exactly one of %s/%s must win", a, b)
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	cases := []struct {
		in   string
		want Move
	}{
		{"ROCK", Rock},
		{"paper", Paper},
		{"SCISSOR", Scissor},
		{"scissors", Scissor},
		{" Rock ", Rock},
	}
	for _, tc := range cases {
		got, err := ParseMove(tc.in)
		if err != nil {
			t.Fatalf("ParseMove(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMove(%q) = %s; want %s", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "lizard", "spock", "ROCKS"} {
		_, err := ParseMove(bad)
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("ParseMove(%q) err = %v; want ErrInvalidMove", bad, err)
		}
		var ime *InvalidMoveError
		if !errors.As(err, &ime) || ime.Value != bad {
			t.Fatalf("ParseMove(%q) err = %#v; want InvalidMoveError", bad, err)
		}
	}
}

func TestOutcomeRendering(t *testing.T) {
	cases := []struct {
		o                 Outcome
		str, banner, tone string
	}{
		{Pending, "PENDING", "", ""},
		{Draw, "DRAW", "DRAW", "draw"},
		{Win(Human), "WIN(PLAYER 1)", "PLAYER 1 WIN", "win"},
		{Win(Counterpart), "WIN(COM)", "COM WIN", "win"},
	}
	for _, tc := range cases {
		if tc.o.String() != tc.str || tc.o.Banner() != tc.banner || tc.o.Tone() != tc.tone {
			t.Fatalf("outcome %#v rendered %q/%q/%q", tc.o, tc.o.String(), tc.o.Banner(), tc.o.Tone())
		}
	}

	loser, ok := Win(Human).Loser()
	if !ok || loser != Counterpart {
		t.Fatalf("Win(Human).Loser() = %v,%v", loser, ok)
	}
	if _, ok := Draw.Winner(); ok {
		t.Fatalf("draw has no winner")
	}
}

func TestMoveText(t *testing.T) {
	var m Move
	if err := m.UnmarshalText([]byte("paper")); err != nil || m != Paper {
		t.Fatalf("UnmarshalText = %s, %v", m, err)
	}
	b, err := Scissor.MarshalText()
	if err != nil || string(b) != "SCISSOR" {
		t.Fatalf("MarshalText = %s, %v", b, err)
	}
	if _, err := Move(0).MarshalText(); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("zero move should not marshal, got %v", err)
	}
}

package domain

import "time"

// GameType - тип игры
type GameType string

const (
	GameTypeRPS GameType = "rps"
)

// GameMode - режим игры
type GameMode string

const (
	GameModePVE GameMode = "pve"
)

// GameResult is the round result seen from the human side.
type GameResult string

const (
	GameResultPending GameResult = "pending"
	GameResultWin     GameResult = "win"
	GameResultLose    GameResult = "lose"
	GameResultDraw    GameResult = "draw"
)

// RoundView is the JSON snapshot sent to HTTP and WebSocket clients.
type RoundView struct {
	SessionID       string     `json:"session_id"`
	RoundID         string     `json:"round_id"`
	GameType        GameType   `json:"game_type"`
	Mode            GameMode   `json:"mode"`
	Phase           string     `json:"phase"`
	Outcome         string     `json:"outcome"`
	Result          GameResult `json:"result"`
	Winner          string     `json:"winner,omitempty"`
	WinnerLabel     *string    `json:"winner_label"`
	Banner          string     `json:"banner,omitempty"`
	Tone            string     `json:"tone,omitempty"`
	HumanMove       *string    `json:"human_move"`
	CounterpartMove *string    `json:"counterpart_move"`
	CreatedAt       time.Time  `json:"created_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	RoundsPlayed    int        `json:"rounds_played"`
}

// RuleView describes one row of the superiority table.
type RuleView struct {
	Move    string `json:"move"`
	Beats   string `json:"beats"`
	LosesTo string `json:"loses_to"`
}

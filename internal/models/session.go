package models

import "math"

// SessionState is the mutable aggregate of one game session.
//
// Invariants: ImmigrantsProcessed == CorrectDecisions + IncorrectDecisions, CurrentStreak <= HighestStreak and
// Score >= 0.
type SessionState struct {
	Theme               Theme      `json:"theme"`
	Difficulty          Difficulty `json:"difficulty"`
	Score               int        `json:"score"`
	ImmigrantsProcessed int        `json:"immigrantsProcessed"`
	CorrectDecisions    int        `json:"correctDecisions"`
	IncorrectDecisions  int        `json:"incorrectDecisions"`
	CurrentStreak       int        `json:"currentStreak"`
	HighestStreak       int        `json:"highestStreak"`
	GameOver            bool       `json:"gameOver"`
}

// NewSessionState returns a zeroed state for theme and difficulty.
func NewSessionState(theme Theme, difficulty Difficulty) SessionState {
	return SessionState{
		Theme:               theme,
		Difficulty:          difficulty,
		Score:               0,
		ImmigrantsProcessed: 0,
		CorrectDecisions:    0,
		IncorrectDecisions:  0,
		CurrentStreak:       0,
		HighestStreak:       0,
		GameOver:            false,
	}
}

// DefaultSessionState is what a session looks like before the player starts a game.
func DefaultSessionState() SessionState {
	return NewSessionState(ThemeZombie, DifficultyMedium)
}

const percent = 100

// Accuracy is the rounded percentage of correct decisions, 0 before any decision.
func (s SessionState) Accuracy() int {
	if s.ImmigrantsProcessed == 0 {
		return 0
	}
	return int(math.Round(percent * float64(s.CorrectDecisions) / float64(s.ImmigrantsProcessed)))
}

// LeaderboardEntry is the latest standing of one session.
type LeaderboardEntry struct {
	SessionID           string `json:"-" db:"session_id"`
	Username            string `json:"username" db:"username"`
	Score               int    `json:"score" db:"score"`
	ImmigrantsProcessed int    `json:"immigrantsProcessed" db:"immigrants_processed"`
	Accuracy            int    `json:"accuracy" db:"accuracy"`
}

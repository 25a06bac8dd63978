// Package scoring judges a decision against an applicant and advances the session counters.
package scoring

import (
	"log/slog"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
)

const (
	streakBonusStep = 5
	maxStreakBonus  = 100
)

// Points for a correct decision by applicant risk.
const (
	highRiskPoints   = 50
	mediumRiskPoints = 30
	lowRiskPoints    = 20
)

// Result is the outcome of one decision.
type Result struct {
	Correct bool
	Points  int
	State   models.SessionState
}

// BasePoints returns the points a correct decision on an applicant of risk is worth before the streak bonus.
func BasePoints(risk models.RiskLevel) int {
	switch risk {
	case models.RiskHigh:
		return highRiskPoints
	case models.RiskMedium:
		return mediumRiskPoints
	case models.RiskLow:
		return lowRiskPoints
	default:
		return lowRiskPoints
	}
}

// StreakBonus returns the capped bonus for a streak that includes the current decision.
func StreakBonus(streak int) int {
	return min(streak*streakBonusStep, maxStreakBonus)
}

// Score judges decision and returns the new state. The input state is not modified.
func Score(
	decision models.Decision,
	applicantIsValid bool,
	risk models.RiskLevel,
	state models.SessionState,
) (Result, error) {
	var correct bool
	switch decision {
	case models.DecisionApprove:
		correct = applicantIsValid
	case models.DecisionReject:
		correct = !applicantIsValid
	default:
		return Result{}, errors.Wrap(models.ErrInvalidDecision, "score decision",
			slog.String("decision", string(decision)))
	}

	points := 0
	if correct {
		streak := state.CurrentStreak + 1
		points = BasePoints(risk) + StreakBonus(streak)
		state.CorrectDecisions++
		state.CurrentStreak = streak
		state.HighestStreak = max(state.HighestStreak, streak)
	} else {
		state.IncorrectDecisions++
		state.CurrentStreak = 0
	}
	state.ImmigrantsProcessed++
	state.Score += points

	return Result{
		Correct: correct,
		Points:  points,
		State:   state,
	}, nil
}

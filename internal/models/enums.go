package models

import (
	"log/slog"

	"github.com/myrjola/checkpoint/internal/errors"
)

var (
	ErrUnknownTheme      = errors.NewSentinel("unknown theme")
	ErrUnknownDifficulty = errors.NewSentinel("unknown difficulty")
	ErrInvalidDecision   = errors.NewSentinel("invalid decision")

	// ErrNotFound is returned by stores when a session has no stored blob.
	ErrNotFound = errors.NewSentinel("not found")
)

// Theme is a scenario skin controlling which document fields and violations apply.
type Theme string

const (
	ThemeZombie   Theme = "zombie"
	ThemePandemic Theme = "pandemic"
	ThemeAlien    Theme = "alien"
	ThemeNuclear  Theme = "nuclear"
)

// Themes lists every theme in catalog order.
var Themes = []Theme{ThemeZombie, ThemePandemic, ThemeAlien, ThemeNuclear}

// ParseTheme validates s against the closed set of themes.
func ParseTheme(s string) (Theme, error) {
	for _, t := range Themes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.Wrap(ErrUnknownTheme, "parse theme", slog.String("theme", s))
}

// Difficulty controls the baseline probability of a legitimate applicant.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", errors.Wrap(ErrUnknownDifficulty, "parse difficulty", slog.String("difficulty", s))
	}
}

// Decision is the player's verdict on an applicant.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionApprove, DecisionReject:
		return d, nil
	default:
		return "", errors.Wrap(ErrInvalidDecision, "parse decision", slog.String("decision", s))
	}
}

// RiskLevel classifies an applicant and drives the base points of a correct decision.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BloodType is one of the eight ABO/Rh types.
type BloodType string

var BloodTypes = []BloodType{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

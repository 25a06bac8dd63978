// Package sim generates applicants and plays simulated games from the command line.
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/feedback"
	"github.com/myrjola/checkpoint/internal/generator"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/random"
	"github.com/myrjola/checkpoint/internal/scoring"
)

var Group = &cobra.Group{
	ID:    "sim",
	Title: "Simulation",
}

const (
	defaultDecisions = 20
	defaultAccuracy  = 0.8
)

func init() {
	for _, cmd := range []*cobra.Command{Generate, Simulate} {
		cmd.Flags().String("theme", string(models.ThemeZombie), "zombie, pandemic, alien or nuclear")
		cmd.Flags().String("difficulty", string(models.DifficultyMedium), "easy, medium or hard")
	}
	Generate.Flags().Int("count", 1, "number of applicants")
	Simulate.Flags().Int("decisions", defaultDecisions, "number of decisions to play")
	Simulate.Flags().Float64("accuracy", defaultAccuracy, "chance that the simulated inspector decides correctly")
	Simulate.Flags().Bool("verbose", false, "print the feedback of every decision")
}

var Generate = &cobra.Command{ //nolint:exhaustruct // cobra defaults
	Use:     "generate",
	GroupID: "sim",
	Short:   "Generate applicants",
	Long:    "Prints generated applicants as JSON lines",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		theme, difficulty, err := parseFlags(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		gen := generator.New(random.NewCryptoSource())
		return WriteApplicants(cmd.OutOrStdout(), gen, theme, difficulty, count)
	},
}

var Simulate = &cobra.Command{ //nolint:exhaustruct // cobra defaults
	Use:     "simulate",
	GroupID: "sim",
	Short:   "Play a simulated game",
	Long:    "Plays a game with an inspector that decides correctly with the given accuracy and prints the result",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		theme, difficulty, err := parseFlags(cmd)
		if err != nil {
			return err
		}
		decisions, _ := cmd.Flags().GetInt("decisions")
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		verbose, _ := cmd.Flags().GetBool("verbose")
		if accuracy < 0 || accuracy > 1 {
			return errors.New("accuracy must be between 0 and 1")
		}

		src := random.NewCryptoSource()
		var log io.Writer
		if verbose {
			log = cmd.OutOrStdout()
		}
		state, err := Play(generator.New(src), src, Options{
			Theme:      theme,
			Difficulty: difficulty,
			Decisions:  decisions,
			Accuracy:   accuracy,
			Log:        log,
		})
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(cmd.OutOrStdout(),
			"score %d, processed %d, correct %d, accuracy %d%%, highest streak %d\n",
			state.Score, state.ImmigrantsProcessed, state.CorrectDecisions, state.Accuracy(), state.HighestStreak); err != nil {
			return errors.Wrap(err, "write summary")
		}
		return nil
	},
}

func parseFlags(cmd *cobra.Command) (models.Theme, models.Difficulty, error) {
	themeFlag, _ := cmd.Flags().GetString("theme")
	difficultyFlag, _ := cmd.Flags().GetString("difficulty")
	theme, err := models.ParseTheme(themeFlag)
	if err != nil {
		return "", "", errors.Wrap(err, "theme flag")
	}
	difficulty, err := models.ParseDifficulty(difficultyFlag)
	if err != nil {
		return "", "", errors.Wrap(err, "difficulty flag")
	}
	return theme, difficulty, nil
}

// WriteApplicants writes count applicants to w, one JSON object per line.
func WriteApplicants(
	w io.Writer,
	gen *generator.Generator,
	theme models.Theme,
	difficulty models.Difficulty,
	count int,
) error {
	enc := json.NewEncoder(w)
	for i := range count {
		applicant, err := gen.Generate(theme, difficulty, strconv.Itoa(i+1))
		if err != nil {
			return errors.Wrap(err, "generate applicant")
		}
		if err = enc.Encode(applicant); err != nil {
			return errors.Wrap(err, "encode applicant")
		}
	}
	return nil
}

type Options struct {
	Theme      models.Theme
	Difficulty models.Difficulty
	Decisions  int

	// Accuracy is the chance of a correct decision.
	Accuracy float64

	// Log receives the feedback of every decision when set.
	Log io.Writer
}

// Play runs opts.Decisions decisions through the scorer. src drives both the generator's dice and the simulated
// inspector.
func Play(gen *generator.Generator, src random.Source, opts Options) (models.SessionState, error) {
	state := models.NewSessionState(opts.Theme, opts.Difficulty)
	for i := range opts.Decisions {
		applicant, err := gen.Generate(state.Theme, state.Difficulty, strconv.Itoa(i+1))
		if err != nil {
			return models.SessionState{}, errors.Wrap(err, "generate applicant")
		}
		right := models.DecisionApprove
		wrong := models.DecisionReject
		if !applicant.IsValid {
			right, wrong = wrong, right
		}
		decision := wrong
		if !random.Flip(src, opts.Accuracy) {
			decision = right
		}

		res, err := scoring.Score(decision, applicant.IsValid, applicant.RiskLevel, state)
		if err != nil {
			return models.SessionState{}, errors.Wrap(err, "score decision")
		}
		state = res.State
		if opts.Log != nil {
			if _, err = fmt.Fprintf(opts.Log, "%s (+%d)\n", feedback.Compose(res.Correct, applicant, decision),
				res.Points); err != nil {
				return models.SessionState{}, errors.Wrap(err, "write feedback")
			}
		}
	}
	return state, nil
}

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/checkpoint/internal/e2etest"
	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/logging"
)

// PlayRound starts a game and judges a few applicants the way a player would.
func PlayRound(ctx context.Context, client *e2etest.Client, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	if _, err := client.Init(ctx); err != nil {
		return errors.Wrap(err, "init")
	}
	start, err := client.Start(ctx, "zombie", "medium")
	if err != nil {
		return errors.Wrap(err, "start game")
	}

	applicant := start.CurrentApplicant
	for range 3 {
		decision := "approve"
		if !applicant.IsValid {
			decision = "reject"
		}
		res, processErr := client.Process(ctx, decision)
		if processErr != nil {
			return errors.Wrap(processErr, "process decision")
		}
		if !res.Correct {
			return errors.New("correct decision judged wrong", slog.String("feedback", res.FeedbackMessage))
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "decision judged",
			slog.String("feedback", res.FeedbackMessage), slog.Int("score", res.SessionState.Score))
		if res.NextApplicant == nil {
			return nil
		}
		applicant = *res.NextApplicant
	}

	if _, err = client.Leaderboard(ctx); err != nil {
		return errors.Wrap(err, "leaderboard")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = PlayRound(ctx, client, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error playing a round", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}

package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/myrjola/checkpoint/cmd/cli/catalog"
	"github.com/myrjola/checkpoint/cmd/cli/sim"
	"github.com/myrjola/checkpoint/internal/errors"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(catalog.Group)
	rootCmd.AddCommand(catalog.Themes)
	rootCmd.AddGroup(sim.Group)
	rootCmd.AddCommand(sim.Generate)
	rootCmd.AddCommand(sim.Simulate)
}

var rootCmd = &cobra.Command{ //nolint:exhaustruct // cobra defaults
	Use:  "checkpoint-cli",
	Long: `Command line utilities for the checkpoint inspector game`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/themes"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Theme catalog",
}

var Themes = &cobra.Command{ //nolint:exhaustruct // cobra defaults
	Use:     "themes",
	GroupID: "catalog",
	Short:   "List themes",
	Long:    "Prints every theme with its rules and checkpoints",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return PrintThemes(cmd.OutOrStdout())
	},
}

// PrintThemes writes the catalog in theme order.
func PrintThemes(w io.Writer) error {
	var b strings.Builder
	for _, t := range models.Themes {
		def, err := themes.Get(t)
		if err != nil {
			return errors.Wrap(err, "get theme")
		}
		fmt.Fprintf(&b, "%s %s (%s)\n  %s\n", def.Icon, def.Name, t, def.Description)
		fmt.Fprintln(&b, "  Rules:")
		for _, r := range def.Rules {
			fmt.Fprintf(&b, "    - %s\n", r)
		}
		fmt.Fprintf(&b, "  Checkpoints: %s\n", strings.Join(def.Checkpoints, ", "))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write catalog")
	}
	return nil
}

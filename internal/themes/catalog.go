// Package themes holds the static catalog of checkpoint scenarios.
package themes

import (
	"log/slog"
	"slices"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
)

// Definition is the display identity of a theme together with its rule and checkpoint flavor text.
type Definition struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Rules       []string `json:"rules"`
	Checkpoints []string `json:"checkpoints"`
}

var catalog = map[models.Theme]Definition{
	models.ThemeZombie: {
		Name:        "Zombie Apocalypse",
		Description: "Screen survivors for zombie infection. Check vital signs and behavior patterns.",
		Icon:        "🧟",
		Rules: []string{
			"Temperature must be below 39°C",
			"No visible bite marks or wounds",
			"Must respond coherently to questions",
			"Pupils must be reactive",
			"Skin tone must be normal (not gray or green)",
		},
		Checkpoints: []string{"Temperature Check", "Physical Examination", "Cognitive Test", "Blood Sample"},
	},
	models.ThemePandemic: {
		Name:        "Disease Pandemic",
		Description: "Prevent disease spread. Verify vaccination status and health clearances.",
		Icon:        "🦠",
		Rules: []string{
			"Must have valid vaccination certificate",
			"Temperature must be below 37.5°C",
			"No symptoms (cough, fever, fatigue)",
			"Recent negative test result required",
			"Quarantine documentation if from high-risk zones",
		},
		Checkpoints: []string{"Temperature", "Vaccination Status", "Symptom Check", "Test Results"},
	},
	models.ThemeAlien: {
		Name:        "Alien Invasion",
		Description: "Identify alien imposters disguised as humans using advanced scanners.",
		Icon:        "👽",
		Rules: []string{
			"DNA scan must match human baseline",
			"Biometric data must be consistent",
			"No anomalies in body temperature range",
			"Fingerprints must have unique human patterns",
			"Eye scan must show human retinal structure",
		},
		Checkpoints: []string{"DNA Scanner", "Biometric Verification", "Retinal Scan", "Fingerprint Analysis"},
	},
	models.ThemeNuclear: {
		Name:        "Nuclear Fallout",
		Description: "Check for radiation exposure and contamination levels.",
		Icon:        "☢️",
		Rules: []string{
			"Radiation levels must be below 0.5 Sv",
			"No visible radiation burns",
			"Geiger counter reading normal",
			"Decontamination certificate required",
			"Origin must not be from red zones",
		},
		Checkpoints: []string{"Radiation Scan", "Decontamination", "Origin Verification", "Health Check"},
	},
}

// Get returns the definition of theme or an error wrapping [models.ErrUnknownTheme].
func Get(theme models.Theme) (Definition, error) {
	def, ok := catalog[theme]
	if !ok {
		return Definition{}, errors.Wrap(models.ErrUnknownTheme, "get theme definition",
			slog.String("theme", string(theme)))
	}
	return def.clone(), nil
}

// List returns the full catalog. The result is a copy and safe to modify.
func List() map[models.Theme]Definition {
	out := make(map[models.Theme]Definition, len(catalog))
	for k, v := range catalog {
		out[k] = v.clone()
	}
	return out
}

func (d Definition) clone() Definition {
	d.Rules = slices.Clone(d.Rules)
	d.Checkpoints = slices.Clone(d.Checkpoints)
	return d
}

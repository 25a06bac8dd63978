package generator

import (
	"strings"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/random"
)

type storyPool struct {
	valid   []string
	invalid []string
}

// Templates interpolate {name}, {origin} and {destination}.
var stories = map[models.Theme]storyPool{
	models.ThemeZombie: {
		valid: []string{
			"{name} evacuated from {origin} before the outbreak spread. Medical clearance obtained.",
			"Survived the initial outbreak in {origin}. Seeking safe passage to {destination}.",
			"Part of rescue convoy from {origin}. All members cleared and vaccinated.",
		},
		invalid: []string{
			"{name} claims to be from {origin}, but shows signs of recent infection exposure.",
			"Was found wandering near infected zones. Story about {origin} seems rehearsed.",
			"Escaped from quarantine facility. Medical history incomplete.",
		},
	},
	models.ThemePandemic: {
		valid: []string{
			"{name} has been in isolation for 14 days. All tests negative, fully vaccinated.",
			"Essential worker traveling from {origin} to {destination}. Medical clearance up to date.",
			"Quarantined properly and obtained health certificate from authorized facility.",
		},
		invalid: []string{
			"Traveled through high-risk zones without proper protection. Symptoms appeared recently.",
			"Claims to be vaccinated but documentation appears forged or outdated.",
			"Left {origin} hastily when outbreak intensified. No time for proper screening.",
		},
	},
	models.ThemeAlien: {
		valid: []string{
			"{name}, born in {origin}. Biometric records consistent with long-term residence.",
			"Traveling for work purposes. All identification checks out with database.",
			"Family records verified. DNA matches human baseline standards.",
		},
		invalid: []string{
			"{name} appeared in {origin} only recently. No prior records found.",
			"Biometric data shows subtle inconsistencies. Origin story has gaps.",
			"Scanner detected anomalies. Claims to be human but readings are unusual.",
		},
	},
	models.ThemeNuclear: {
		valid: []string{
			"{name} evacuated early from {origin}. Passed through decontamination successfully.",
			"Lived in protected zone. Radiation exposure minimal and within safe limits.",
			"Worked in safe facility with proper protective equipment. Clearance verified.",
		},
		invalid: []string{
			"Came from fallout zone. Radiation levels concerning despite decontamination attempt.",
			"No proper decontamination records. Origin is within contaminated area.",
			"Exposure readings high. May have been scavenging in restricted zones.",
		},
	},
}

func (g *Generator) story(theme models.Theme, isValid bool, name, origin, destination string) string {
	pool := stories[theme].invalid
	if isValid {
		pool = stories[theme].valid
	}
	template := random.Choice(g.src, pool)
	return strings.NewReplacer(
		"{name}", name,
		"{origin}", origin,
		"{destination}", destination,
	).Replace(template)
}

// Package generator creates the applicants that queue at the checkpoint.
package generator

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/random"
	"github.com/myrjola/checkpoint/internal/themes"
)

// Policy holds the violation chance per difficulty. An applicant is legitimate when the validity draw exceeds the
// chance, so a higher value makes legitimate applicants rarer.
type Policy struct {
	Easy   float64
	Medium float64
	Hard   float64
}

const (
	defaultEasyChance   = 0.6
	defaultMediumChance = 0.5
	defaultHardChance   = 0.4
)

// DefaultPolicy returns the standard violation chances.
func DefaultPolicy() Policy {
	return Policy{
		Easy:   defaultEasyChance,
		Medium: defaultMediumChance,
		Hard:   defaultHardChance,
	}
}

// ViolationChance returns the chance for difficulty.
func (p Policy) ViolationChance(difficulty models.Difficulty) (float64, error) {
	switch difficulty {
	case models.DifficultyEasy:
		return p.Easy, nil
	case models.DifficultyMedium:
		return p.Medium, nil
	case models.DifficultyHard:
		return p.Hard, nil
	default:
		return 0, errors.Wrap(models.ErrUnknownDifficulty, "violation chance",
			slog.String("difficulty", string(difficulty)))
	}
}

// Generator builds applicants from a random source. It holds no mutable state of its own and is safe for concurrent
// use when the source is.
type Generator struct {
	src    random.Source
	now    func() time.Time
	policy Policy
}

type Option func(*Generator)

// WithClock overrides the clock that issue and expiry dates are relative to.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithPolicy overrides the violation chances.
func WithPolicy(p Policy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

func New(src random.Source, opts ...Option) *Generator {
	g := &Generator{
		src:    src,
		now:    time.Now,
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// draft is an applicant under construction.
type draft struct {
	doc        models.Document
	appearance string
	violations []string
	risk       models.RiskLevel
}

// flag records a violation and escalates the risk. Risk never decreases.
func (d *draft) flag(violation string, risk models.RiskLevel) {
	d.violations = append(d.violations, violation)
	if riskRank(risk) > riskRank(d.risk) {
		d.risk = risk
	}
}

const (
	rankLow = iota
	rankMedium
	rankHigh
)

func riskRank(r models.RiskLevel) int {
	switch r {
	case models.RiskHigh:
		return rankHigh
	case models.RiskMedium:
		return rankMedium
	case models.RiskLow:
		return rankLow
	default:
		return rankLow
	}
}

// Day offsets from today and age bounds for generated documents.
const (
	minAge           = 18
	maxAge           = 67
	oldestIssue      = -60
	newestIssue      = -7
	nearestExpiry    = 1
	furthestExpiry   = 180
	oldestExpiration = -30
	newestExpiration = -1
)

// Generate creates applicant id for theme and difficulty.
//
// The sequence of random draws is fixed so that a scripted source can steer every branch. Invalid applicants always
// carry at least one violation.
func (g *Generator) Generate(theme models.Theme, difficulty models.Difficulty, id string) (models.Applicant, error) {
	if _, err := themes.Get(theme); err != nil {
		return models.Applicant{}, errors.Wrap(err, "generate applicant")
	}
	violationChance, err := g.policy.ViolationChance(difficulty)
	if err != nil {
		return models.Applicant{}, errors.Wrap(err, "generate applicant")
	}

	isValid := g.src.Float64() > violationChance

	name := g.randomName()
	age := random.Between(g.src, minAge, maxAge)
	origin := random.Choice(g.src, origins)
	destination := random.Choice(g.src, destinations)
	reason := random.Choice(g.src, reasons)
	profession := random.Choice(g.src, professions)
	issueDate := g.date(random.Between(g.src, oldestIssue, newestIssue))
	expiryDate := g.date(random.Between(g.src, nearestExpiry, furthestExpiry))
	docID := g.documentID()

	d := draft{
		doc: models.Document{ //nolint:exhaustruct // theme fields are set by the branches below
			ID:          docID,
			Name:        name,
			Age:         age,
			Origin:      origin,
			Destination: destination,
			Reason:      reason,
			Profession:  profession,
			IssueDate:   issueDate,
			ExpiryDate:  expiryDate,
		},
		appearance: random.Choice(g.src, normalAppearances),
		violations: []string{},
		risk:       models.RiskLow,
	}

	switch theme {
	case models.ThemeZombie:
		g.zombie(&d, isValid)
	case models.ThemePandemic:
		g.pandemic(&d, isValid)
	case models.ThemeAlien:
		g.alien(&d, isValid)
	case models.ThemeNuclear:
		g.nuclear(&d, isValid)
	}

	if !isValid {
		g.documentViolations(&d, difficulty)
		if len(d.violations) == 0 {
			d.flag(primaryViolations[theme], models.RiskHigh)
		}
	}

	return models.Applicant{
		ID:         id,
		Name:       name,
		Appearance: d.appearance,
		Document:   d.doc,
		IsValid:    isValid,
		Violations: d.violations,
		RiskLevel:  d.risk,
		Story:      g.story(theme, isValid, name, origin, destination),
	}, nil
}

// documentViolations applies the cross-theme paperwork checks to an invalid applicant.
func (g *Generator) documentViolations(d *draft, difficulty models.Difficulty) {
	if random.Flip(g.src, occasionalCheck) {
		d.doc.ExpiryDate = g.date(random.Between(g.src, oldestExpiration, newestExpiration))
		d.flag(ViolationExpired, models.RiskMedium)
	}
	// The flip is drawn on every difficulty to keep the draw sequence independent of it.
	if random.Flip(g.src, forgedNameCheck) && difficulty != models.DifficultyEasy {
		d.doc.Name = g.randomName()
		d.flag(ViolationNameMismatch, models.RiskMedium)
	}
}

func (g *Generator) randomName() string {
	first := random.Choice(g.src, firstNames)
	last := random.Choice(g.src, lastNames)
	return first + " " + last
}

// date returns the calendar date offset days from today.
func (g *Generator) date(offset int) string {
	return g.now().UTC().AddDate(0, 0, offset).Format(models.DateLayout)
}

const (
	docIDLength = 9
	docIDBase   = 36
)

// documentID returns DOC- followed by nine base-36 characters from a single draw.
func (g *Generator) documentID() string {
	space := int64(1)
	for range docIDLength {
		space *= docIDBase
	}
	n := int64(g.src.Float64() * float64(space))
	id := strings.ToUpper(strconv.FormatInt(n, docIDBase))
	if len(id) < docIDLength {
		id = strings.Repeat("0", docIDLength-len(id)) + id
	}
	return "DOC-" + id
}

package generator

import (
	"fmt"
	"strconv"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/random"
)

// Flip thresholds: a check fires when the draw exceeds the threshold.
const (
	coinFlip        = 0.5
	likelyCheck     = 0.6 // fires 40% of the time
	occasionalCheck = 0.7 // fires 30% of the time
	forgedNameCheck = 0.8 // fires 20% of the time
)

// Temperatures in °C and radiation in Sv are drawn as base plus spread.
const (
	zombieNormalTemp     = 36.5
	zombieNormalSpread   = 1.5
	zombieFeverThreshold = 39.0
	zombieFeverSpread    = 3.0
	pandemicNormalTemp   = 36.3
	pandemicNormalSpread = 0.8
	pandemicFeverBase    = 37.5
	pandemicFeverSpread  = 2.0
	safeRadiationMax     = 0.3
	radiationThreshold   = 0.5
	radiationSpread      = 2.0
	readingDecimals      = 2
)

func (g *Generator) zombie(d *draft, isValid bool) {
	var temperature float64
	if isValid {
		temperature = random.Uniform(g.src, zombieNormalTemp, zombieNormalSpread)
	} else {
		temperature = random.Uniform(g.src, zombieFeverThreshold, zombieFeverSpread)
	}
	bloodType := random.Choice(g.src, models.BloodTypes)
	d.doc.Temperature = &temperature
	d.doc.BloodType = &bloodType

	if isValid {
		return
	}
	if random.Flip(g.src, coinFlip) {
		d.flag(ViolationZombieTemperature, models.RiskHigh)
	}
	if random.Flip(g.src, coinFlip) {
		d.flag(ViolationBiteMarks, models.RiskHigh)
		d.appearance = appearanceBitten
	}
	if random.Flip(g.src, occasionalCheck) {
		d.flag(ViolationCognition, models.RiskMedium)
		d.appearance = appearanceConfused
	}
}

func (g *Generator) pandemic(d *draft, isValid bool) {
	var temperature float64
	if isValid {
		temperature = random.Uniform(g.src, pandemicNormalTemp, pandemicNormalSpread)
	} else {
		temperature = random.Uniform(g.src, pandemicFeverBase, pandemicFeverSpread)
	}
	vaccinated := true
	if !isValid {
		vaccinated = random.Flip(g.src, coinFlip)
	}
	symptoms := []string{}

	if !isValid {
		if random.Flip(g.src, coinFlip) {
			symptoms = append(symptoms, symptomCough)
			d.flag(ViolationSymptoms, models.RiskHigh)
		}
		if random.Flip(g.src, coinFlip) {
			d.flag(ViolationNoVaccination, models.RiskMedium)
			vaccinated = false
		}
		if random.Flip(g.src, likelyCheck) {
			d.flag(ViolationPandemicTemperature, models.RiskHigh)
		}
		if len(symptoms) > 0 || !vaccinated {
			d.appearance = random.Choice(g.src, suspiciousAppearances)
		}
	}

	d.doc.Temperature = &temperature
	d.doc.VaccinationStatus = &vaccinated
	d.doc.Symptoms = &symptoms
}

func (g *Generator) alien(d *draft, isValid bool) {
	scan := scanHuman
	if !isValid {
		scan = random.Choice(g.src, alienAnomalies)
	}
	d.doc.ScanResult = &scan

	if isValid {
		return
	}
	d.flag(ViolationNonHuman, models.RiskHigh)
	if random.Flip(g.src, coinFlip) {
		d.appearance = appearanceTooPerfect
	} else {
		d.appearance = appearanceBiometric
	}
}

func (g *Generator) nuclear(d *draft, isValid bool) {
	var level float64
	if isValid {
		level = random.Uniform(g.src, 0, safeRadiationMax)
	} else {
		level = random.Uniform(g.src, radiationThreshold, radiationSpread)
	}
	// The reading is judged as displayed, with two decimals.
	reading := strconv.FormatFloat(level, 'f', readingDecimals, 64)
	scan := fmt.Sprintf("Radiation: %s Sv", reading)
	d.doc.ScanResult = &scan

	if isValid {
		return
	}
	// A reading shown as 0.50 is not flagged here but may still get
	// ViolationRadiation from the at-least-one-violation fallback.
	if displayed, err := strconv.ParseFloat(reading, 64); err == nil && displayed > radiationThreshold {
		d.flag(ViolationRadiation, models.RiskHigh)
	}
	if random.Flip(g.src, likelyCheck) {
		d.flag(ViolationRedZone, models.RiskHigh)
	}
	if random.Flip(g.src, occasionalCheck) {
		d.flag(ViolationDecontamination, models.RiskMedium)
	}
	d.appearance = random.Choice(g.src, nuclearAppearances)
}

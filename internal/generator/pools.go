package generator

import "github.com/myrjola/checkpoint/internal/models"

var firstNames = []string{
	"Alex", "Jordan", "Sam", "Taylor", "Morgan", "Casey", "Riley", "Avery", "Quinn", "Blake", "Dakota",
	"Skyler", "Harper", "Reese", "Emerson", "Charlie", "Drew", "Rowan", "Sage", "Phoenix", "River", "Kai",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee",
}

var origins = []string{
	"New Haven", "Sanctuary City", "Safe Zone Alpha", "District 9", "Quarantine Camp 7", "Shelter 42",
	"Fort Liberty", "Haven Hills", "Refuge Point", "Settlement Beta", "Green Zone", "Outpost Delta",
}

var destinations = []string{
	"Central Hub", "Safe Haven", "Protected Zone", "Medical Facility", "Research Station", "Supply Depot",
	"Evacuation Center", "Bunker Complex",
}

var professions = []string{
	"Doctor", "Engineer", "Scientist", "Teacher", "Farmer", "Mechanic", "Nurse", "Soldier", "Cook", "Builder",
	"Electrician", "Chemist",
}

var reasons = []string{
	"Seeking refuge", "Medical treatment", "Family reunion", "Supply run", "Research mission", "Evacuation",
	"Work assignment", "Resource gathering",
}

var normalAppearances = []string{
	"Healthy complexion, alert eyes",
	"Clean appearance, well-groomed",
	"Calm demeanor, steady breathing",
	"Clear eyes, normal skin tone",
	"Composed and coherent",
}

var suspiciousAppearances = []string{
	"Pale complexion, sweating profusely",
	"Bloodshot eyes, trembling hands",
	"Nervous behavior, avoiding eye contact",
	"Unusual skin discoloration",
	"Disoriented, slurred speech",
	"Strange odor, disheveled appearance",
	"Glazed eyes, unsteady movement",
}

// Violations shown to the player. Tests and the feedback composer match on these exact strings.
const (
	ViolationZombieTemperature = "Temperature exceeds safe threshold (>39°C)"
	ViolationBiteMarks         = "Visible bite marks detected"
	ViolationCognition         = "Abnormal cognitive responses"

	ViolationSymptoms            = "Exhibits disease symptoms"
	ViolationNoVaccination       = "No valid vaccination certificate"
	ViolationPandemicTemperature = "Temperature above safe threshold"

	ViolationNonHuman = "Scanner detected non-human biological markers"

	ViolationRadiation       = "Radiation levels exceed safe threshold"
	ViolationRedZone         = "Origin from restricted red zone"
	ViolationDecontamination = "Missing decontamination certificate"

	ViolationExpired      = "Documentation has expired"
	ViolationNameMismatch = "Name on document does not match appearance"
)

const (
	appearanceBitten     = "Pale complexion with visible wounds on arms"
	appearanceConfused   = "Glazed eyes, slow and confused responses"
	scanHuman            = "Human DNA confirmed"
	symptomCough         = "Persistent cough"
	appearanceTooPerfect = "Slightly unusual eye movement patterns, skin appears too perfect"
	appearanceBiometric  = "Normal appearance but biometric data inconsistent"
)

var alienAnomalies = []string{
	"Anomalous DNA structure",
	"Non-human signature detected",
	"Biometric mismatch",
}

var nuclearAppearances = []string{
	"Visible radiation burns on exposed skin",
	"Hair loss, pale and sickly appearance",
	"Appears healthy but readings show high exposure",
}

// primaryViolations backs an invalid applicant whose optional violations all missed.
var primaryViolations = map[models.Theme]string{
	models.ThemeZombie:   ViolationZombieTemperature,
	models.ThemePandemic: ViolationPandemicTemperature,
	models.ThemeAlien:    ViolationNonHuman,
	models.ThemeNuclear:  ViolationRadiation,
}

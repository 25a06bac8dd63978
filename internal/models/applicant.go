package models

// DateLayout is the ISO calendar date format of issue and expiry dates.
const DateLayout = "2006-01-02"

// Document is the applicant's paperwork.
//
// The optional fields are only set for the themes that use them. Pointers distinguish an absent field from a zero
// value so that, for example, an alien applicant never carries a temperature.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
	IssueDate   string `json:"issueDate"`
	ExpiryDate  string `json:"expiryDate"`

	Temperature       *float64   `json:"temperature,omitempty"`
	BloodType         *BloodType `json:"bloodType,omitempty"`
	VaccinationStatus *bool      `json:"vaccinationStatus,omitempty"`
	// Symptoms is set for pandemic applicants, as an empty list when they show none.
	Symptoms   *[]string `json:"symptoms,omitempty"`
	ScanResult *string   `json:"scanResult,omitempty"`
	Profession string    `json:"profession,omitempty"`
}

// Applicant is one generated person waiting at the checkpoint.
//
// IsValid is the ground truth hidden from the player. Violations is empty iff IsValid.
type Applicant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Appearance string    `json:"appearance"`
	Document   Document  `json:"document"`
	IsValid    bool      `json:"isValid"`
	Violations []string  `json:"violations"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	Story      string    `json:"story"`
}

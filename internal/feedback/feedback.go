// Package feedback renders the message shown after a decision.
package feedback

import (
	"fmt"
	"strings"

	"github.com/myrjola/checkpoint/internal/models"
)

// Compose returns the message for decision on applicant. It addresses the applicant by the name they claimed, which
// may differ from the name on a forged document.
func Compose(correct bool, applicant models.Applicant, decision models.Decision) string {
	violations := strings.Join(applicant.Violations, ", ")
	approved := decision == models.DecisionApprove

	switch {
	case correct && approved:
		return fmt.Sprintf("✅ Correct! %s was cleared. Safe passage granted.", applicant.Name)
	case correct:
		return fmt.Sprintf("✅ Correct! %s was a threat. Entry denied. Violations: %s", applicant.Name, violations)
	case approved:
		return fmt.Sprintf("❌ Wrong! %s had violations: %s. Security breach!", applicant.Name, violations)
	default:
		return fmt.Sprintf("❌ Wrong! %s was legitimate. Innocent person turned away.", applicant.Name)
	}
}

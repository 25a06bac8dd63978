package feedback_test

import (
	"testing"

	"github.com/myrjola/checkpoint/internal/feedback"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	threat := models.Applicant{ //nolint:exhaustruct // only the fields feedback reads
		Name:       "Jordan Lee",
		Violations: []string{"Visible bite marks detected", "Documentation has expired"},
		Document:   models.Document{Name: "Casey Moore"}, //nolint:exhaustruct // forged name
	}
	clean := models.Applicant{ //nolint:exhaustruct // only the fields feedback reads
		Name:       "Alex Smith",
		Violations: []string{},
	}

	tests := []struct {
		name      string
		correct   bool
		applicant models.Applicant
		decision  models.Decision
		want      string
	}{
		{
			name:      "correct approve",
			correct:   true,
			applicant: clean,
			decision:  models.DecisionApprove,
			want:      "✅ Correct! Alex Smith was cleared. Safe passage granted.",
		},
		{
			name:      "correct reject",
			correct:   true,
			applicant: threat,
			decision:  models.DecisionReject,
			want: "✅ Correct! Jordan Lee was a threat. Entry denied. " +
				"Violations: Visible bite marks detected, Documentation has expired",
		},
		{
			name:      "wrong approve",
			correct:   false,
			applicant: threat,
			decision:  models.DecisionApprove,
			want: "❌ Wrong! Jordan Lee had violations: " +
				"Visible bite marks detected, Documentation has expired. Security breach!",
		},
		{
			name:      "wrong reject",
			correct:   false,
			applicant: clean,
			decision:  models.DecisionReject,
			want:      "❌ Wrong! Alex Smith was legitimate. Innocent person turned away.",
		},
		{
			name:      "no violations renders empty list",
			correct:   true,
			applicant: models.Applicant{Name: "Sam Brown"}, //nolint:exhaustruct // nil violations
			decision:  models.DecisionReject,
			want:      "✅ Correct! Sam Brown was a threat. Entry denied. Violations: ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedback.Compose(tt.correct, tt.applicant, tt.decision)
			require.Equal(t, tt.want, got)
			require.Contains(t, got, tt.applicant.Name)
			require.NotContains(t, got, "Casey Moore")
		})
	}
}

package terminal

import (
	"bytes"
	"testing"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewValidationReporter(&buf)

	err := reporter.Handle([]report.AgentValidation{
		{Name: "demographics", Order: 1.0, Result: domain.ValidationResult{IsValid: true}},
		{Name: "mobility", Order: 2.0, Result: domain.ValidationResult{
			Errors:   []string{"Missing required field: functionalAssessment"},
			Warnings: []string{"No Berg Balance assessment recorded"},
		}},
	})
	require.NoError(t, err)

	expected := `+-------+--------------------------+---------+
| Order | Agent                    | Status  |
+-------+--------------------------+---------+
| 1.0   | demographics             | ok      |
| 2.0   | mobility                 | invalid |
    error: Missing required field: functionalAssessment
    warning: No Berg Balance assessment recorded
+-------+--------------------------+---------+
`
	assert.Equal(t, expected, buf.String())
}

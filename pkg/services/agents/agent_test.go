package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDefinition() Definition[string] {
	return Definition[string]{
		Name:  "stub",
		Title: "Stub",
		Order: 9.9,
		Required: []FieldRequirement{
			Require("demographics", func(d *domain.AssessmentData) bool { return d.GetDemographics() != nil }),
		},
		Process: func(_ context.Context, in Input) (string, []string, error) {
			return in.Assessment.ID, []string{"processed"}, nil
		},
		Format: func(p ProcessedData[string], level domain.DetailLevel) string {
			return string(level) + ":" + p.Data
		},
	}
}

func TestAgent_GenerateSection(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		agent := New(stubDefinition(), DefaultConfig())

		section := agent.GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.True(t, section.Valid)
		assert.Equal(t, "standard:assessment-001", section.Content)
		assert.Equal(t, 9.9, section.OrderNumber)
		assert.Equal(t, "stub", section.SectionName)
		assert.Equal(t, "Stub", section.Title)
		assert.Equal(t, []string{"processed"}, section.Warnings)
	})

	t.Run("validation failure", func(t *testing.T) {
		agent := New(stubDefinition(), DefaultConfig())

		section := agent.GenerateSection(ctx, NewInput(&domain.AssessmentData{ID: "x", Date: "2024-01-01"}))

		assert.False(t, section.Valid)
		assert.Equal(t, "Missing required field: demographics", section.Content)
		assert.Equal(t, []string{"Missing required field: demographics"}, section.Errors)
	})

	t.Run("processing error", func(t *testing.T) {
		def := stubDefinition()
		def.Process = func(context.Context, Input) (string, []string, error) {
			return "", nil, errors.New("broken input")
		}

		section := New(def, DefaultConfig()).GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.False(t, section.Valid)
		assert.Empty(t, section.Content)
		assert.Equal(t, []string{"Error processing Stub data: broken input"}, section.Errors)
	})

	t.Run("processing panic", func(t *testing.T) {
		def := stubDefinition()
		def.Process = func(context.Context, Input) (string, []string, error) {
			panic("boom")
		}

		section := New(def, DefaultConfig()).GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.False(t, section.Valid)
		assert.Empty(t, section.Content)
		assert.Equal(t, []string{"Error processing Stub data: boom"}, section.Errors)
	})

	t.Run("format panic", func(t *testing.T) {
		def := stubDefinition()
		def.Format = func(ProcessedData[string], domain.DetailLevel) string {
			panic("bad template")
		}

		section := New(def, DefaultConfig()).GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.False(t, section.Valid)
		require.Len(t, section.Errors, 1)
		assert.Contains(t, section.Errors[0], "bad template")
	})

	t.Run("rule panic", func(t *testing.T) {
		def := stubDefinition()
		def.Rules = []Rule{func(*domain.AssessmentData) ([]string, []string) {
			panic("rule exploded")
		}}

		section := New(def, DefaultConfig()).GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.False(t, section.Valid)
		assert.Contains(t, section.Content, "rule exploded")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		section := New(stubDefinition(), DefaultConfig()).GenerateSection(cancelled, NewInput(sampleAssessment()))

		assert.False(t, section.Valid)
		require.Len(t, section.Errors, 1)
		assert.Contains(t, section.Errors[0], context.Canceled.Error())
	})

	t.Run("sanitizes output", func(t *testing.T) {
		def := stubDefinition()
		def.Format = func(ProcessedData[string], domain.DetailLevel) string {
			return "Age: undefined\nEmail: null\nPhone: <nil>"
		}

		section := New(def, DefaultConfig()).GenerateSection(ctx, NewInput(sampleAssessment()))

		assert.Equal(t, "Age: Not assessed\nEmail: Not assessed\nPhone: Not assessed", section.Content)
	})
}

func TestAgent_DetailLevelDefaultsToStandard(t *testing.T) {
	agent := New(stubDefinition(), Config{})

	section := agent.GenerateSection(context.Background(), NewInput(sampleAssessment()))

	assert.Equal(t, "standard:assessment-001", section.Content)
}

func TestNewInput(t *testing.T) {
	in := NewInput(sampleAssessment())

	assert.Equal(t, 2024, in.Shared.ReferenceDate.Year())
	assert.True(t, in.Shared.HasBerg)
	assert.Equal(t, 38, in.Shared.BergScore)
	assert.Equal(t, domain.SeverityMedium, in.Shared.FallRisk)
	assert.Equal(t, []string{"Shower chair", "single point cane"}, in.Shared.CurrentEquipment)

	empty := NewInput(nil)
	assert.Nil(t, empty.Assessment)
	assert.False(t, empty.Shared.HasBerg)
	assert.True(t, empty.Shared.ReferenceDate.IsZero())
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"undefined", "Not assessed"},
		{"Value: NULL", "Value: Not assessed"},
		{"NaN degrees", "Not assessed degrees"},
		{"nullable field", "nullable field"},
		{"nil by mouth", "nil by mouth"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestAgent_InvalidSectionHasNoLeakedMarkers(t *testing.T) {
	data := sampleAssessment()
	data.Demographics.Email = "null"
	data.Demographics.DateOfBirth = "undefined"

	section := NewDemographicsAgent(DefaultConfig()).GenerateSection(context.Background(), NewInput(data))

	assert.False(t, section.Valid)
	require.Len(t, section.Errors, 2)
	assert.Equal(t, "Invalid email format: "+NotAssessed, section.Errors[0])
	for _, text := range append([]string{section.Content}, append(section.Errors, section.Warnings...)...) {
		assert.NotContains(t, text, "null")
		assert.NotContains(t, text, "undefined")
	}
}

func TestAgents_SampleAssessment(t *testing.T) {
	in := NewInput(sampleAssessment())
	ctx := context.Background()

	orders := make(map[float64]string)
	for _, agent := range allAgents(DefaultConfig()) {
		t.Run(agent.Name(), func(t *testing.T) {
			section := agent.GenerateSection(ctx, in)

			assert.True(t, section.Valid, "errors: %v", section.Errors)
			assert.NotEmpty(t, section.Content)
			for _, leaked := range []string{"undefined", "null", "<nil>", "NaN"} {
				assert.NotContains(t, section.Content, leaked)
			}

			again := agent.GenerateSection(ctx, in)
			assert.Equal(t, section, again)
		})

		existing, dup := orders[agent.Order()]
		assert.False(t, dup, "order %v shared by %s and %s", agent.Order(), existing, agent.Name())
		orders[agent.Order()] = agent.Name()
	}
}

func TestAgents_DetailLevelsDiffer(t *testing.T) {
	in := NewInput(sampleAssessment())
	ctx := context.Background()

	levels := domain.DetailLevels()
	byLevel := make(map[domain.DetailLevel][]domain.ReportSection)
	for _, level := range levels {
		for _, agent := range allAgents(Config{DetailLevel: level}) {
			byLevel[level] = append(byLevel[level], agent.GenerateSection(ctx, in))
		}
	}

	for i, brief := range byLevel[domain.DetailBrief] {
		standard := byLevel[domain.DetailStandard][i]
		detailed := byLevel[domain.DetailDetailed][i]
		t.Run(brief.SectionName, func(t *testing.T) {
			assert.NotEqual(t, brief.Content, standard.Content)
			assert.NotEqual(t, standard.Content, detailed.Content)
			assert.Less(t, len(brief.Content), len(detailed.Content))
		})
	}
}

func TestAgents_EmptyAssessment(t *testing.T) {
	in := NewInput(&domain.AssessmentData{ID: "empty", Date: "2024-06-01"})

	for _, agent := range allAgents(DefaultConfig()) {
		t.Run(agent.Name(), func(t *testing.T) {
			section := agent.GenerateSection(context.Background(), in)

			assert.False(t, section.Valid)
			require.NotEmpty(t, section.Errors)
			for _, e := range section.Errors {
				assert.True(t, strings.HasPrefix(e, "Missing required field: "), e)
			}
			assert.Equal(t, strings.Join(section.Errors, "\n"), section.Content)
		})
	}
}

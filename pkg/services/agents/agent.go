package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/detectors"
	"github.com/rs/zerolog"
)

// SectionAgent is what the report orchestrator holds: one clinical area
// that can validate an assessment and turn it into a report section.
type SectionAgent interface {
	Name() string
	Title() string
	Order() float64
	ValidateData(in Input) domain.ValidationResult
	GenerateSection(ctx context.Context, in Input) domain.ReportSection
}

// Config contains the options every agent is constructed with
type Config struct {
	DetailLevel domain.DetailLevel
	ROM         detectors.ROMSettings
}

func DefaultConfig() Config {
	return Config{
		DetailLevel: domain.DetailStandard,
		ROM:         detectors.DefaultROMSettings(),
	}
}

// Shared holds values derived once from the assessment before agents run.
// It is passed by value and never written by agents.
type Shared struct {
	ReferenceDate    time.Time
	BergScore        int
	HasBerg          bool
	FallRisk         domain.Severity
	CurrentEquipment []string
}

// Input is the read-only view every agent receives
type Input struct {
	Assessment *domain.AssessmentData
	Shared     Shared
}

// NewInput derives the shared context for an assessment
func NewInput(data *domain.AssessmentData) Input {
	in := Input{Assessment: data}
	if data == nil {
		return in
	}
	if d, err := domain.ParseDate(data.Date); err == nil {
		in.Shared.ReferenceDate = d
	}
	if score, ok := data.GetFunctionalAssessment().GetBergBalance().GetTotalScore(); ok {
		in.Shared.BergScore = score
		in.Shared.HasBerg = true
		in.Shared.FallRisk = detectors.FallRiskFromBerg(score)
	}
	if current := data.GetEquipment().GetCurrent(); len(current) > 0 {
		in.Shared.CurrentEquipment = append([]string(nil), current...)
	}
	return in
}

// ProcessedData is an agent's normalised view of its domain
type ProcessedData[T any] struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Data     T
}

// Rule is an agent-specific validation predicate; it must tolerate missing data
type Rule func(data *domain.AssessmentData) (errs []string, warnings []string)

// Definition describes one agent. Process returns the processed value plus
// any warnings; Format renders it at the requested detail level.
type Definition[T any] struct {
	Name     string
	Title    string
	Order    float64
	Required []FieldRequirement
	Rules    []Rule
	Process  func(ctx context.Context, in Input) (T, []string, error)
	Format   func(p ProcessedData[T], level domain.DetailLevel) string
}

// Agent runs a Definition through validate, process and format
type Agent[T any] struct {
	def   Definition[T]
	level domain.DetailLevel
}

func New[T any](def Definition[T], cfg Config) *Agent[T] {
	return &Agent[T]{def: def, level: cfg.DetailLevel.OrDefault()}
}

func (a *Agent[T]) Name() string   { return a.def.Name }
func (a *Agent[T]) Title() string  { return a.def.Title }
func (a *Agent[T]) Order() float64 { return a.def.Order }

// ValidateData checks required fields and runs the agent rules. It never panics.
func (a *Agent[T]) ValidateData(in Input) (result domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ValidationResult{
				IsValid: false,
				Errors:  []string{fmt.Sprintf("Error validating %s data: %v", a.def.Title, r)},
			}
		}
	}()

	result.Errors = CheckRequired(in.Assessment, a.def.Required)
	for _, rule := range a.def.Rules {
		errs, warnings := rule(in.Assessment)
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warnings...)
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// ProcessData runs the transformation, converting errors and panics into an
// invalid result
func (a *Agent[T]) ProcessData(ctx context.Context, in Input) (processed ProcessedData[T]) {
	defer func() {
		if r := recover(); r != nil {
			processed = ProcessedData[T]{
				Valid:  false,
				Errors: []string{fmt.Sprintf("Error processing %s data: %v", a.def.Title, r)},
			}
		}
	}()

	if err := ctx.Err(); err != nil {
		return ProcessedData[T]{Errors: []string{fmt.Sprintf("Error processing %s data: %v", a.def.Title, err)}}
	}
	data, warnings, err := a.def.Process(ctx, in)
	if err != nil {
		return ProcessedData[T]{Errors: []string{fmt.Sprintf("Error processing %s data: %v", a.def.Title, err)}}
	}
	return ProcessedData[T]{Valid: true, Warnings: warnings, Data: data}
}

// FormatByDetailLevel renders processed data, defaulting to standard
func (a *Agent[T]) FormatByDetailLevel(p ProcessedData[T], level domain.DetailLevel) string {
	return Sanitize(a.def.Format(p, level.OrDefault()))
}

func (a *Agent[T]) formatSafely(p ProcessedData[T]) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return a.FormatByDetailLevel(p, a.level), nil
}

// GenerateSection validates, processes and formats the assessment into one
// section. Failures end up in the section and never reach the caller.
func (a *Agent[T]) GenerateSection(ctx context.Context, in Input) domain.ReportSection {
	logger := zerolog.Ctx(ctx).With().Str("agent", a.def.Name).Logger()
	section := domain.ReportSection{
		OrderNumber: a.def.Order,
		SectionName: a.def.Name,
		Title:       a.def.Title,
	}

	validation := a.ValidateData(in)
	if !validation.IsValid {
		logger.Debug().Strs("errors", validation.Errors).Msg("validation failed")
		section.Errors = sanitizeAll(validation.Errors)
		section.Warnings = sanitizeAll(validation.Warnings)
		section.Content = strings.Join(section.Errors, "\n")
		return section
	}

	processed := a.ProcessData(ctx, in)
	if !processed.Valid {
		logger.Warn().Strs("errors", processed.Errors).Msg("processing failed")
		section.Errors = sanitizeAll(processed.Errors)
		section.Warnings = sanitizeAll(validation.Warnings)
		return section
	}

	content, err := a.formatSafely(processed)
	if err != nil {
		logger.Warn().Err(err).Msg("formatting failed")
		section.Errors = []string{Sanitize(fmt.Sprintf("Error formatting %s data: %v", a.def.Title, err))}
		section.Warnings = sanitizeAll(validation.Warnings)
		return section
	}

	section.Valid = true
	section.Content = content
	section.Warnings = sanitizeAll(append(append([]string(nil), validation.Warnings...), processed.Warnings...))
	logger.Debug().Int("length", len(content)).Msg("section generated")
	return section
}

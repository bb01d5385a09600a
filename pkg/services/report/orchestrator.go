package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/agents"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAgentTimeout = 10 * time.Second

	// EmptySectionContent replaces blank section content
	EmptySectionContent = "No data available for this section"
)

// Options contains the orchestrator settings
type Options struct {
	// AgentTimeout bounds each agent independently; zero disables the limit
	AgentTimeout time.Duration
	// DetailLevel is recorded on the report envelope
	DetailLevel domain.DetailLevel
	// Now stamps generated reports (default: time.Now)
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		AgentTimeout: DefaultAgentTimeout,
		DetailLevel:  domain.DetailStandard,
		Now:          time.Now,
	}
}

// Orchestrator runs a fixed set of agents concurrently over one assessment
type Orchestrator struct {
	agents []agents.SectionAgent
	opts   Options
}

func NewOrchestrator(sectionAgents []agents.SectionAgent, opts Options) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.DetailLevel = opts.DetailLevel.OrDefault()
	return &Orchestrator{
		agents: append([]agents.SectionAgent(nil), sectionAgents...),
		opts:   opts,
	}
}

// Agents returns the configured agents in registration order
func (o *Orchestrator) Agents() []agents.SectionAgent {
	return append([]agents.SectionAgent(nil), o.agents...)
}

// GenerateReport produces one section per agent sorted by order number.
// It never fails: agent failures become invalid sections and anything that
// escapes them collapses into a single error summary section.
func (o *Orchestrator) GenerateReport(ctx context.Context, data *domain.AssessmentData) (sections []domain.ReportSection) {
	logger := zerolog.Ctx(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("report generation failed")
			sections = []domain.ReportSection{errorSummarySection(r)}
		}
	}()

	if section, ok := checkAssessment(data); !ok {
		logger.Warn().Str("reason", section.Content).Msg("assessment rejected")
		return []domain.ReportSection{section}
	}

	logger.Info().Str("assessment", data.ID).Int("agents", len(o.agents)).Msg("generating report")
	in := agents.NewInput(data)
	sections = make([]domain.ReportSection, len(o.agents))

	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range o.agents {
		g.Go(func() error {
			sections[i] = o.runAgent(gctx, agent, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	for i := range sections {
		if strings.TrimSpace(sections[i].Content) == "" {
			sections[i].Content = EmptySectionContent
			if len(sections[i].Errors) == 0 {
				sections[i].Valid = true
			}
		}
	}
	domain.SortSections(sections)

	invalid := 0
	for _, s := range sections {
		if !s.Valid {
			invalid++
		}
	}
	logger.Info().Str("assessment", data.ID).Int("sections", len(sections)).Int("invalid", invalid).Msg("report generated")
	return sections
}

// Generate wraps GenerateReport in a report envelope
func (o *Orchestrator) Generate(ctx context.Context, data *domain.AssessmentData) domain.Report {
	report := domain.Report{
		ID:          uuid.NewString(),
		DetailLevel: o.opts.DetailLevel,
		GeneratedAt: o.opts.Now().UTC(),
		Sections:    o.GenerateReport(ctx, data),
	}
	if data != nil {
		report.AssessmentID = data.ID
	}
	return report
}

// AgentValidation is one agent's verdict on an assessment
type AgentValidation struct {
	Name   string
	Title  string
	Order  float64
	Result domain.ValidationResult
}

// ValidateAll runs every agent's validation without generating content
func (o *Orchestrator) ValidateAll(data *domain.AssessmentData) []AgentValidation {
	in := agents.NewInput(data)
	results := make([]AgentValidation, 0, len(o.agents))
	for _, agent := range o.agents {
		results = append(results, AgentValidation{
			Name:   agent.Name(),
			Title:  agent.Title(),
			Order:  agent.Order(),
			Result: agent.ValidateData(in),
		})
	}
	return results
}

func (o *Orchestrator) runAgent(ctx context.Context, agent agents.SectionAgent, in agents.Input) domain.ReportSection {
	logger := zerolog.Ctx(ctx).With().Str("agent", agent.Name()).Logger()
	ctx = logger.WithContext(ctx)

	if o.opts.AgentTimeout <= 0 {
		return generateSafely(ctx, agent, in)
	}

	ctx, cancel := context.WithTimeout(ctx, o.opts.AgentTimeout)
	defer cancel()

	done := make(chan domain.ReportSection, 1)
	go func() {
		done <- generateSafely(ctx, agent, in)
	}()

	select {
	case section := <-done:
		return section
	case <-ctx.Done():
		reason := fmt.Sprintf("%s agent timed out after %s", agent.Title(), o.opts.AgentTimeout)
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = fmt.Sprintf("%s agent cancelled: %v", agent.Title(), ctx.Err())
		}
		logger.Warn().Dur("timeout", o.opts.AgentTimeout).Msg(reason)
		return failedSection(agent, reason)
	}
}

// generateSafely keeps a panicking agent from taking down its siblings
func generateSafely(ctx context.Context, agent agents.SectionAgent, in agents.Input) (section domain.ReportSection) {
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().Interface("panic", r).Msg("agent panicked")
			section = failedSection(agent, fmt.Sprintf("Error generating %s section: %v", agent.Title(), r))
		}
	}()
	return agent.GenerateSection(ctx, in)
}

func failedSection(agent agents.SectionAgent, reason string) domain.ReportSection {
	return domain.ReportSection{
		OrderNumber: agent.Order(),
		SectionName: agent.Name(),
		Title:       agent.Title(),
		Valid:       false,
		Errors:      []string{agents.Sanitize(reason)},
	}
}

// checkAssessment rejects input without the identifiers a report needs
func checkAssessment(data *domain.AssessmentData) (domain.ReportSection, bool) {
	section := domain.ReportSection{
		OrderNumber: 0,
		SectionName: "assessment",
		Title:       "Assessment",
		Valid:       true,
	}
	if data == nil {
		section.Content = "No assessment data provided. Submit a completed assessment to generate a report."
		return section, false
	}

	var missing []string
	if strings.TrimSpace(data.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(data.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		section.Content = fmt.Sprintf("Assessment is missing %s. Complete the assessment details to generate a report.",
			strings.Join(missing, " and "))
		return section, false
	}
	return section, true
}

func errorSummarySection(r any) domain.ReportSection {
	message := agents.Sanitize(fmt.Sprintf("Report generation failed: %v", r))
	return domain.ReportSection{
		OrderNumber: 0,
		SectionName: "report_error",
		Title:       "Report Generation Error",
		Content:     message,
		Valid:       false,
		Errors:      []string{message},
	}
}

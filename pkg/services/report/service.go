package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/agents"
)

// Request selects the agents and output options for one report.
// Empty Agents means every registered agent; zero AgentTimeout means the default.
type Request struct {
	DetailLevel  domain.DetailLevel
	Agents       []string
	AgentTimeout time.Duration
}

// AgentInfo describes a registered agent
type AgentInfo struct {
	Name  string
	Title string
	Order float64
}

// Service builds an orchestrator per request from the agent registry
type Service interface {
	Generate(ctx context.Context, data *domain.AssessmentData, req Request) (domain.Report, error)
	Validate(data *domain.AssessmentData, req Request) ([]AgentValidation, error)
	ListAgents() []AgentInfo
}

type service struct {
	registry Registry
	now      func() time.Time
}

func NewService(registry Registry) Service {
	return &service{registry: registry, now: time.Now}
}

func (s *service) orchestrator(req Request) (*Orchestrator, error) {
	cfg := agents.DefaultConfig()
	cfg.DetailLevel = req.DetailLevel.OrDefault()

	created, err := s.registry.CreateAll(cfg, req.Agents...)
	if err != nil {
		return nil, fmt.Errorf("failed to create agents: %w", err)
	}

	opts := DefaultOptions()
	opts.DetailLevel = cfg.DetailLevel
	opts.Now = s.now
	if req.AgentTimeout > 0 {
		opts.AgentTimeout = req.AgentTimeout
	}
	return NewOrchestrator(created, opts), nil
}

func (s *service) Generate(ctx context.Context, data *domain.AssessmentData, req Request) (domain.Report, error) {
	o, err := s.orchestrator(req)
	if err != nil {
		return domain.Report{}, err
	}
	return o.Generate(ctx, data), nil
}

func (s *service) Validate(data *domain.AssessmentData, req Request) ([]AgentValidation, error) {
	o, err := s.orchestrator(req)
	if err != nil {
		return nil, err
	}
	results := o.ValidateAll(data)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Order < results[j].Order
	})
	return results, nil
}

func (s *service) ListAgents() []AgentInfo {
	created, err := s.registry.CreateAll(agents.DefaultConfig())
	if err != nil {
		return nil
	}
	infos := make([]AgentInfo, 0, len(created))
	for _, agent := range created {
		infos = append(infos, AgentInfo{Name: agent.Name(), Title: agent.Title(), Order: agent.Order()})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Order < infos[j].Order
	})
	return infos
}

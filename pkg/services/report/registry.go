package report

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/assessment-atlas/pkg/services/agents"
)

var ErrAgentNotRegistered = errors.New("agent is not registered")

// AgentFactory builds a section agent from the shared agent configuration
type AgentFactory func(cfg agents.Config) agents.SectionAgent

// Registry manages section agent factories
type Registry interface {
	// Register adds a new agent factory under name
	Register(name string, factory AgentFactory) error
	// Create instantiates the named agent with cfg
	Create(name string, cfg agents.Config) (agents.SectionAgent, error)
	// CreateAll instantiates the named agents, or every agent when names is empty
	CreateAll(cfg agents.Config, names ...string) ([]agents.SectionAgent, error)
	// ListAgents returns the registered agent names in alphabetical order
	ListAgents() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]AgentFactory
}

// NewRegistry creates an empty agent registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]AgentFactory),
	}
}

// DefaultRegistry registers every clinical section agent
func DefaultRegistry() Registry {
	r := NewRegistry()
	for name, factory := range map[string]AgentFactory{
		"demographics":        agents.NewDemographicsAgent,
		"documentation":       agents.NewDocumentationAgent,
		"medical_history":     agents.NewMedicalHistoryAgent,
		"mobility":            agents.NewMobilityAgent,
		"transfers":           agents.NewTransfersAgent,
		"range_of_motion":     agents.NewROMAgent,
		"symptom_integration": agents.NewSymptomIntegrationAgent,
		"physical_symptoms":   agents.NewPhysicalSymptomsAgent,
		"cognitive_symptoms":  agents.NewCognitiveSymptomsAgent,
		"emotional_symptoms":  agents.NewEmotionalSymptomsAgent,
		"basic_adl":           agents.NewBasicADLAgent,
		"iadl":                agents.NewIADLAgent,
		"environment":         agents.NewEnvironmentAgent,
	} {
		// names are unique literals, Register cannot fail here
		_ = r.Register(name, factory)
	}
	return r
}

func (r *registry) Register(name string, factory AgentFactory) error {
	if name == "" {
		return fmt.Errorf("agent name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("agent %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, cfg agents.Config) (agents.SectionAgent, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrAgentNotRegistered, name)
	}

	return factory(cfg), nil
}

func (r *registry) CreateAll(cfg agents.Config, names ...string) ([]agents.SectionAgent, error) {
	if len(names) == 0 {
		names = r.ListAgents()
	}
	created := make([]agents.SectionAgent, 0, len(names))
	for _, name := range names {
		agent, err := r.Create(name, cfg)
		if err != nil {
			return nil, err
		}
		created = append(created, agent)
	}
	return created, nil
}

func (r *registry) ListAgents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

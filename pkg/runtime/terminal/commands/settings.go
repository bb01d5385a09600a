package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/config"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
// Flags override the profile, which overrides config file and environment.
type GlobalFlags struct {
	ConfigPath  string
	Profile     string
	DetailLevel string
	Agents      []string
	Timeout     time.Duration
	Verbose     bool

	settings *config.Settings
}

func (g *GlobalFlags) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&g.ConfigPath, "config", "c", "", "Path to an atlas config file (yaml, json or toml)")
	flags.StringVar(&g.Profile, "profile", "", "Report profile name from $HOME/.atlasprofiles")
	flags.StringVarP(&g.DetailLevel, "detail", "d", "", "Detail level: brief, standard or detailed")
	flags.StringSliceVar(&g.Agents, "agents", nil, "Comma separated agents to run (default all)")
	flags.DurationVar(&g.Timeout, "timeout", 0, "Per-agent timeout (default 10s)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Log at debug level")
}

// Load resolves settings and attaches a logger to the command context
func (g *GlobalFlags) Load(cmd *cobra.Command) error {
	settings, err := config.Load(g.ConfigPath)
	if err != nil {
		return err
	}
	if g.Profile != "" {
		settings.Profile = g.Profile
	}
	if err := settings.ResolveProfile(); err != nil {
		return err
	}

	if cmd.Flags().Changed("detail") {
		settings.DetailLevel = g.DetailLevel
	}
	if cmd.Flags().Changed("agents") {
		settings.Agents = g.Agents
	}
	if cmd.Flags().Changed("timeout") {
		settings.AgentTimeout = g.Timeout
	}

	level := settings.ZerologLevel()
	if g.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))

	g.settings = settings
	return nil
}

func (g *GlobalFlags) Settings() *config.Settings {
	return g.settings
}

// Request builds the report request from the resolved settings
func (g *GlobalFlags) Request() (report.Request, error) {
	if g.settings == nil {
		return report.Request{}, fmt.Errorf("settings not loaded")
	}
	level, err := domain.ParseDetailLevel(g.settings.DetailLevel)
	if err != nil {
		return report.Request{}, err
	}
	return report.Request{
		DetailLevel:  level,
		Agents:       g.settings.Agents,
		AgentTimeout: g.settings.AgentTimeout,
	}, nil
}

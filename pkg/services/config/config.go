package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// S3Settings is the optional bucket reports are exported to
type S3Settings struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

// Settings is the process configuration shared by the CLI and the web server
type Settings struct {
	DetailLevel  string         `mapstructure:"detail_level"`
	AgentTimeout time.Duration  `mapstructure:"agent_timeout"`
	Agents       []string       `mapstructure:"agents"`
	LogLevel     string         `mapstructure:"log_level"`
	Profile      string         `mapstructure:"profile"`
	ProfilesPath string         `mapstructure:"profiles_path"`
	Server       ServerSettings `mapstructure:"server"`
	S3           S3Settings     `mapstructure:"s3"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("detail_level", string(domain.DetailStandard))
	v.SetDefault("agent_timeout", 10*time.Second)
	v.SetDefault("agents", []string{})
	v.SetDefault("log_level", zerolog.LevelInfoValue)
	v.SetDefault("profile", "")
	v.SetDefault("profiles_path", DefaultProfilesPath())
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "reports")
	v.SetDefault("s3.region", "")
}

// Load reads settings from defaults, an optional config file and ATLAS_* environment variables.
// Nested keys use underscores, e.g. ATLAS_SERVER_PORT.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}
	return &settings, nil
}

// Level parses the configured detail level
func (s *Settings) Level() (domain.DetailLevel, error) {
	return domain.ParseDetailLevel(s.DetailLevel)
}

// ZerologLevel falls back to info for unknown levels
func (s *Settings) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// ApplyProfile overrides settings with the non-empty values of a report profile
func (s *Settings) ApplyProfile(p domain.ReportProfile) {
	if p.DetailLevel != "" {
		s.DetailLevel = string(p.DetailLevel)
	}
	if len(p.Agents) > 0 {
		s.Agents = append([]string(nil), p.Agents...)
	}
	if p.AgentTimeout > 0 {
		s.AgentTimeout = p.AgentTimeout
	}
}

// ResolveProfile loads the configured profile, if any, and applies it
func (s *Settings) ResolveProfile() error {
	if s.Profile == "" {
		return nil
	}
	registry, err := NewProfileRegistry(s.ProfilesPath)
	if err != nil {
		return err
	}
	profile, err := registry.GetProfile(s.Profile)
	if err != nil {
		return err
	}
	s.ApplyProfile(profile)
	return nil
}

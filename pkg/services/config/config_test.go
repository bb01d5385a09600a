package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "standard", settings.DetailLevel)
	assert.Equal(t, 10*time.Second, settings.AgentTimeout)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, "8080", settings.Server.Port)
	assert.Empty(t, settings.Agents)
	assert.Equal(t, "reports", settings.S3.Prefix)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeFile(t, "atlas.yaml", `detail_level: detailed
agent_timeout: 3s
agents:
  - mobility
  - transfers
server:
  port: "9090"
s3:
  bucket: clinic-reports`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "detailed", settings.DetailLevel)
	assert.Equal(t, 3*time.Second, settings.AgentTimeout)
	assert.Equal(t, []string{"mobility", "transfers"}, settings.Agents)
	assert.Equal(t, "9090", settings.Server.Port)
	assert.Equal(t, "localhost", settings.Server.Host)
	assert.Equal(t, "clinic-reports", settings.S3.Bucket)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "atlas.yaml", "detail_level: detailed\n")
	t.Setenv("ATLAS_DETAIL_LEVEL", "brief")
	t.Setenv("ATLAS_SERVER_PORT", "7070")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "brief", settings.DetailLevel)
	assert.Equal(t, "7070", settings.Server.Port)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "detail_level: brief: oops")

	_, err := Load(path)

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestSettings_Level(t *testing.T) {
	s := &Settings{DetailLevel: "Detailed"}
	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, domain.DetailDetailed, level)

	s.DetailLevel = "verbose"
	_, err = s.Level()
	assert.Error(t, err)
}

func TestSettings_ZerologLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zerolog.Level
	}{
		{in: "debug", expected: zerolog.DebugLevel},
		{in: "WARN", expected: zerolog.WarnLevel},
		{in: "", expected: zerolog.InfoLevel},
		{in: "loud", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := &Settings{LogLevel: tt.in}
			assert.Equal(t, tt.expected, s.ZerologLevel())
		})
	}
}

func TestSettings_ApplyProfile(t *testing.T) {
	s := &Settings{DetailLevel: "standard", AgentTimeout: 10 * time.Second, Agents: []string{"iadl"}}

	s.ApplyProfile(domain.ReportProfile{Name: "empty"})
	assert.Equal(t, "standard", s.DetailLevel)
	assert.Equal(t, []string{"iadl"}, s.Agents)

	s.ApplyProfile(domain.ReportProfile{
		Name:         "clinic",
		DetailLevel:  domain.DetailBrief,
		Agents:       []string{"mobility"},
		AgentTimeout: time.Second,
	})
	assert.Equal(t, "brief", s.DetailLevel)
	assert.Equal(t, []string{"mobility"}, s.Agents)
	assert.Equal(t, time.Second, s.AgentTimeout)
}

func TestSettings_ResolveProfile(t *testing.T) {
	path := writeFile(t, ProfilesFileName, "[quick]\ndetail_level = brief\ntimeout = 2s\n")

	s := &Settings{DetailLevel: "standard", Profile: "quick", ProfilesPath: path}
	require.NoError(t, s.ResolveProfile())
	assert.Equal(t, "brief", s.DetailLevel)
	assert.Equal(t, 2*time.Second, s.AgentTimeout)

	s.Profile = "missing"
	assert.ErrorIs(t, s.ResolveProfile(), ErrProfileNotFound)
}

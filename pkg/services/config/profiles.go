package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const ProfilesFileName = ".atlasprofiles"

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRegistry reads named report profiles from an ini file:
//
//	[clinic]
//	detail_level = detailed
//	agents       = demographics, mobility, transfers
//	timeout      = 5s
type ProfileRegistry interface {
	GetProfiles() ([]string, error)
	GetProfile(name string) (domain.ReportProfile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath returns $HOME/.atlasprofiles
func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ProfilesFileName
	}
	return filepath.Join(home, ProfilesFileName)
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (pr *profileRegistry) GetProfile(name string) (domain.ReportProfile, error) {
	section, err := pr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.ReportProfile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	profile := domain.ReportProfile{Name: name}

	level, err := domain.ParseDetailLevel(section.Key("detail_level").String())
	if err != nil {
		return domain.ReportProfile{}, fmt.Errorf("profile %s: %w", name, err)
	}
	profile.DetailLevel = level

	for _, agent := range section.Key("agents").Strings(",") {
		if agent = strings.TrimSpace(agent); agent != "" {
			profile.Agents = append(profile.Agents, agent)
		}
	}

	if section.HasKey("timeout") {
		timeout, err := section.Key("timeout").Duration()
		if err != nil {
			return domain.ReportProfile{}, fmt.Errorf("profile %s: invalid timeout: %w", name, err)
		}
		profile.AgentTimeout = timeout
	}

	return profile, nil
}

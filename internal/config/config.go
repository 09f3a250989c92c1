// Package config computes the paths skillbook uses and tracks which
// skills have been installed into agent homes.
//
// User config lives at ~/.config/skillbook/ (or $XDG_CONFIG_HOME),
// following the XDG Base Directory spec.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigDirName is the subdirectory name under .config
	ConfigDirName = "skillbook"
	// StateFilename tracks installed skills
	StateFilename = "state.json"
)

// Paths holds the directories skillbook reads and writes
type Paths struct {
	// Home is the user's home directory
	Home string

	// UserConfigDir is ~/.config/skillbook (or $XDG_CONFIG_HOME/skillbook)
	UserConfigDir string
	// StateFile is UserConfigDir/state.json
	StateFile string

	// Agent being targeted
	Agent Agent

	// AgentDir is the agent's config dir, e.g. ~/.claude
	AgentDir string
	// SkillsDir is where skills get installed, e.g. ~/.claude/skills
	SkillsDir string
}

// GetPathsForAgent returns paths configured for a specific agent
func GetPathsForAgent(agent Agent) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	userConfigDir := filepath.Join(configHome, ConfigDirName)

	cfg := GetAgentConfig(agent)
	if cfg == nil {
		cfg = GetAgentConfig(AgentClaude)
	}

	agentDir := filepath.Join(home, cfg.ConfigDir)

	return &Paths{
		Home:          home,
		UserConfigDir: userConfigDir,
		StateFile:     filepath.Join(userConfigDir, StateFilename),
		Agent:         agent,
		AgentDir:      agentDir,
		SkillsDir:     filepath.Join(agentDir, cfg.SkillsDir),
	}, nil
}

// EnsureDirs creates all necessary directories
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.UserConfigDir, p.AgentDir, p.SkillsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// InstalledSkill tracks one skill copied into an agent's skills dir
type InstalledSkill struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Agent       Agent     `json:"agent"`
	Source      string    `json:"source"`          // repo root or remote source string
	LocalPath   string    `json:"local_path"`      // installed skill directory
	Hash        string    `json:"hash,omitempty"`  // sha256:... of SKILL.md at install time
	Files       []string  `json:"files,omitempty"` // installed files relative to LocalPath
	InstalledAt time.Time `json:"installed_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// State is the persisted installation state
type State struct {
	Version   string           `json:"version"`
	Installed []InstalledSkill `json:"installed"`
}

// LoadState loads the state file, returning an empty state when the
// file does not exist yet
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Version: "1"}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the state file
func SaveState(path string, state *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AddInstalled records a skill, replacing any previous entry with the
// same name and agent
func (s *State) AddInstalled(rec InstalledSkill) {
	s.RemoveInstalled(rec.Name, rec.Agent)
	s.Installed = append(s.Installed, rec)
}

// RemoveInstalled drops a skill record by name and agent
func (s *State) RemoveInstalled(name string, agent Agent) {
	filtered := make([]InstalledSkill, 0, len(s.Installed))
	for _, rec := range s.Installed {
		if !(rec.Name == name && rec.Agent == agent) {
			filtered = append(filtered, rec)
		}
	}
	s.Installed = filtered
}

// FindInstalled looks up a record by name and agent
func (s *State) FindInstalled(name string, agent Agent) *InstalledSkill {
	for i := range s.Installed {
		if s.Installed[i].Name == name && s.Installed[i].Agent == agent {
			return &s.Installed[i]
		}
	}
	return nil
}

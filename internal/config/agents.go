package config

import (
	"os"
	"path/filepath"
)

// Agent represents a supported AI coding agent host
type Agent string

const (
	AgentClaude   Agent = "claude"
	AgentOpenCode Agent = "opencode"
	AgentCursor   Agent = "cursor"
	AgentCopilot  Agent = "copilot"
	AgentWindsurf Agent = "windsurf"
)

// AgentConfig describes where an agent looks for skill definitions
type AgentConfig struct {
	Name        Agent
	DisplayName string
	ConfigDir   string // relative to home, e.g. ".claude"
	SkillsDir   string // relative to ConfigDir
}

// KnownAgents returns all known agent configurations
func KnownAgents() []AgentConfig {
	return []AgentConfig{
		{
			Name:        AgentClaude,
			DisplayName: "Claude Code",
			ConfigDir:   ".claude",
			SkillsDir:   "skills",
		},
		{
			Name:        AgentOpenCode,
			DisplayName: "OpenCode",
			ConfigDir:   ".opencode",
			SkillsDir:   "skill", // singular, per OpenCode convention
		},
		{
			Name:        AgentCursor,
			DisplayName: "Cursor",
			ConfigDir:   ".cursor",
			SkillsDir:   "rules",
		},
		{
			Name:        AgentCopilot,
			DisplayName: "GitHub Copilot",
			ConfigDir:   ".github",
			SkillsDir:   "skills",
		},
		{
			Name:        AgentWindsurf,
			DisplayName: "Windsurf",
			ConfigDir:   ".windsurf",
			SkillsDir:   "skills",
		},
	}
}

// GetAgentConfig returns the config for a specific agent, nil if unknown
func GetAgentConfig(agent Agent) *AgentConfig {
	for _, a := range KnownAgents() {
		if a.Name == agent {
			return &a
		}
	}
	return nil
}

// DetectInstalledAgents returns agents whose config directory exists
// under the user's home
func DetectInstalledAgents() []AgentConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	var installed []AgentConfig
	for _, agent := range KnownAgents() {
		if _, err := os.Stat(filepath.Join(home, agent.ConfigDir)); err == nil {
			installed = append(installed, agent)
		}
	}

	return installed
}

// DefaultAgent returns the agent to target when none is specified.
// Prefers Claude, falls back to the first detected agent.
func DefaultAgent() Agent {
	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".claude")); err == nil {
		return AgentClaude
	}

	if installed := DetectInstalledAgents(); len(installed) > 0 {
		return installed[0].Name
	}

	return AgentClaude
}

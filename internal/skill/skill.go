// Package skill defines the skill record types shared across skillbook.
// A skill is a directory containing a SKILL.md file with YAML frontmatter
// (name, description) plus conventional references/, scripts/, and assets/
// subdirectories.
package skill

import (
	"strings"
	"time"
)

// File and directory name constants used throughout skillbook.
const (
	// Filename is the standard filename for skill definitions
	Filename = "SKILL.md"

	// SkillsDirName is the standard directory name holding skills
	SkillsDirName = "skills"

	// ReferencesDirName holds supplementary markdown documents
	ReferencesDirName = "references"

	// ScriptsDirName holds helper scripts referenced by the skill
	ScriptsDirName = "scripts"

	// AssetsDirName holds static files (images, configs, templates)
	AssetsDirName = "assets"
)

// ContentDirNames are the conventional per-skill content directories.
// A well-formed skill carries at least one of them.
var ContentDirNames = []string{ReferencesDirName, ScriptsDirName, AssetsDirName}

// Metadata is the YAML frontmatter of a SKILL.md file
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// Skill represents a loaded skill definition
type Skill struct {
	// Core metadata from frontmatter
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`

	// Dir is the skill directory (skills/<dir>); DirName its base name
	Dir     string `yaml:"-" json:"dir"`
	DirName string `yaml:"-" json:"dir_name"`

	// Body is the SKILL.md content with frontmatter stripped
	Body string `yaml:"-" json:"-"`

	// References, Scripts, and Assets list files found under the
	// conventional subdirectories, relative to Dir
	References []string `yaml:"-" json:"references,omitempty"`
	Scripts    []string `yaml:"-" json:"scripts,omitempty"`
	Assets     []string `yaml:"-" json:"assets,omitempty"`

	// ModTime is the SKILL.md modification time, used for index staleness
	ModTime time.Time `yaml:"-" json:"-"`
}

// ShortDescription returns the first line of the description,
// truncated to max runes with an ellipsis. Catalog rows use this.
func (s *Skill) ShortDescription(max int) string {
	desc, _, _ := strings.Cut(s.Description, "\n")
	desc = strings.TrimSpace(desc)
	runes := []rune(desc)
	if max > 3 && len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return desc
}

// Manifest represents the skillbook.yaml file at a repository root
type Manifest struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	License     string   `yaml:"license,omitempty" json:"license,omitempty"`
	Homepage    string   `yaml:"homepage,omitempty" json:"homepage,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Optional custom skills directory (default: skills/)
	SkillsDir string `yaml:"skills_dir,omitempty" json:"skills_dir,omitempty"`
}

// ManifestFilename is the repository manifest name
const ManifestFilename = "skillbook.yaml"

// Summary is a minimal skill representation for machine output
type Summary struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Dir         string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Hash        string `yaml:"hash,omitempty" json:"hash,omitempty"` // sha256:... of SKILL.md
}

// Package scaffold creates new skill repositories and skill directories
// from embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/niuverse/skillbook/internal/skill"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// kebabRe matches valid skill names
var kebabRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateName checks that a skill name is kebab-case
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name is required")
	}
	if !kebabRe.MatchString(name) {
		return fmt.Errorf("skill name %q must be kebab-case (lowercase letters, digits, hyphens)", name)
	}
	return nil
}

// skillData feeds the SKILL.md template
type skillData struct {
	Name        string
	Description string
	Title       string
}

// repoData feeds the repository templates
type repoData struct {
	Name        string
	Description string
}

// render executes one embedded template
func render(name string, data any) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return []byte(buf.String()), nil
}

// titleFromName turns "pdf-processing" into "Pdf Processing"
func titleFromName(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// InitRepo creates a new skills repository at dir with a manifest,
// README and an empty skills directory.
func InitRepo(dir, name, description string) error {
	if name == "" {
		name = filepath.Base(dir)
	}
	if description == "" {
		description = "A curated collection of agent skills."
	}

	manifestPath := filepath.Join(dir, skill.ManifestFilename)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists in %s", skill.ManifestFilename, dir)
	}

	if err := os.MkdirAll(filepath.Join(dir, skill.SkillsDirName), 0755); err != nil {
		return fmt.Errorf("failed to create skills directory: %w", err)
	}

	data := repoData{Name: name, Description: description}

	manifest, err := render("skillbook.yaml.tmpl", data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	readmePath := filepath.Join(dir, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		readme, err := render("README.md.tmpl", data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(readmePath, readme, 0644); err != nil {
			return fmt.Errorf("failed to write README: %w", err)
		}
	}

	return nil
}

// NewSkill creates a skill directory under skillsDir with a templated
// SKILL.md and an empty references directory. Returns the skill dir.
func NewSkill(skillsDir, name, description string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if description == "" {
		description = "Describe what this skill does and when to use it."
	}

	dir := filepath.Join(skillsDir, name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("skill %s already exists", name)
	}

	if err := os.MkdirAll(filepath.Join(dir, skill.ReferencesDirName), 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	content, err := render("SKILL.md.tmpl", skillData{
		Name:        name,
		Description: description,
		Title:       titleFromName(name),
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, skill.Filename), content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", skill.Filename, err)
	}

	return dir, nil
}

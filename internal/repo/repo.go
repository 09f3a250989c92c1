// Package repo locates and scans a skills repository: a directory tree
// with a skills/ directory of skill definitions and an optional
// skillbook.yaml manifest at the root.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/niuverse/skillbook/internal/frontmatter"
	"github.com/niuverse/skillbook/internal/skill"
)

// Repository is an opened skills repository
type Repository struct {
	// Root is the repository root directory
	Root string

	// Manifest is the parsed skillbook.yaml, nil if absent
	Manifest *skill.Manifest
}

// FindRoot walks up from dir looking for a repository root, identified
// by a skillbook.yaml manifest, a skills/ directory, or a .git
// directory containing a skills/ directory. Returns "" if none found.
func FindRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, skill.ManifestFilename)); err == nil {
			return dir
		}
		if info, err := os.Stat(filepath.Join(dir, skill.SkillsDirName)); err == nil && info.IsDir() {
			return dir
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Open opens the repository containing dir
func Open(dir string) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid directory: %w", err)
	}

	root := FindRoot(abs)
	if root == "" {
		return nil, fmt.Errorf("no skills repository found in %s or any parent", abs)
	}

	r := &Repository{Root: root}

	manifestPath := filepath.Join(root, skill.ManifestFilename)
	data, err := os.ReadFile(manifestPath)
	if err == nil {
		var m skill.Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", skill.ManifestFilename, err)
		}
		r.Manifest = &m
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", skill.ManifestFilename, err)
	}

	return r, nil
}

// SkillsDir returns the repository's skills directory
func (r *Repository) SkillsDir() string {
	dir := skill.SkillsDirName
	if r.Manifest != nil && r.Manifest.SkillsDir != "" {
		dir = r.Manifest.SkillsDir
	}
	return filepath.Join(r.Root, dir)
}

// SkillDirs lists the candidate skill directories (direct subdirectories
// of skills/, hidden entries excluded), sorted by name.
func (r *Repository) SkillDirs() ([]string, error) {
	entries, err := os.ReadDir(r.SkillsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read skills directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(r.SkillsDir(), entry.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Scan loads all valid skills in the repository, sorted by name.
// Directories without a parseable SKILL.md are skipped; use the lint
// package to report them.
func (r *Repository) Scan() ([]*skill.Skill, error) {
	dirs, err := r.SkillDirs()
	if err != nil {
		return nil, err
	}

	var skills []*skill.Skill
	for _, dir := range dirs {
		s, err := Load(dir)
		if err != nil {
			log.Debug("skipping skill", "dir", dir, "err", err)
			continue
		}
		skills = append(skills, s)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

// Get returns a single skill by frontmatter name
func (r *Repository) Get(name string) (*skill.Skill, error) {
	skills, err := r.Scan()
	if err != nil {
		return nil, err
	}

	for _, s := range skills {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("skill '%s' not found", name)
}

// Load loads a single skill from its directory
func Load(dir string) (*skill.Skill, error) {
	path := filepath.Join(dir, skill.Filename)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", skill.Filename, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill file: %w", err)
	}

	var md skill.Metadata
	body, err := frontmatter.ParseTyped(content, &md)
	if err != nil {
		return nil, err
	}

	if md.Name == "" {
		return nil, fmt.Errorf("skill name is required in frontmatter")
	}
	if md.Description == "" {
		return nil, fmt.Errorf("skill description is required in frontmatter")
	}

	s := &skill.Skill{
		Name:        md.Name,
		Description: strings.TrimSpace(md.Description),
		Version:     md.Version,
		Author:      md.Author,
		Dir:         dir,
		DirName:     filepath.Base(dir),
		Body:        body,
		ModTime:     info.ModTime(),
	}

	s.References = listFiles(dir, skill.ReferencesDirName)
	s.Scripts = listFiles(dir, skill.ScriptsDirName)
	s.Assets = listFiles(dir, skill.AssetsDirName)

	return s, nil
}

// listFiles returns the files under dir/sub relative to dir, sorted.
// A missing subdirectory yields nil.
func listFiles(dir, sub string) []string {
	var files []string
	base := filepath.Join(dir, sub)

	_ = filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	sort.Strings(files)
	return files
}

// HasContentDir reports whether the skill directory carries at least
// one of the conventional content subdirectories.
func HasContentDir(dir string) bool {
	for _, sub := range skill.ContentDirNames {
		if info, err := os.Stat(filepath.Join(dir, sub)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// Package lint implements the structural validation of a skills
// repository: every skill directory must carry a SKILL.md with YAML
// frontmatter naming and describing the skill, names must be unique,
// and relative links in the body must resolve to files that exist.
package lint

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/niuverse/skillbook/internal/frontmatter"
	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/skill"
)

// Severity of a finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifiers, stable for machine output and suppression
const (
	RuleMissingSkillFile    = "missing-skill-file"
	RuleInvalidFrontmatter  = "invalid-frontmatter"
	RuleMissingName         = "missing-name"
	RuleMissingDescription  = "missing-description"
	RuleDuplicateName       = "duplicate-name"
	RuleNoContentDir        = "no-content-dir"
	RuleNameNotKebab        = "name-not-kebab"
	RuleNameDirMismatch     = "name-dir-mismatch"
	RuleLongSummary         = "long-summary"
	RuleDanglingLink        = "dangling-link"
)

// Finding is a single validation result
type Finding struct {
	RuleID   string   `json:"rule"`
	Severity Severity `json:"severity"`
	Skill    string   `json:"skill"` // skill directory name
	Message  string   `json:"message"`
}

// Result aggregates findings for a repository
type Result struct {
	SkillCount int       `json:"skills"`
	Findings   []Finding `json:"findings"`
}

// Errors returns the error-severity findings
func (r *Result) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns the warning-severity findings
func (r *Result) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether any finding is an error
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// ForSkill returns the findings for one skill directory
func (r *Result) ForSkill(dirName string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Skill == dirName {
			out = append(out, f)
		}
	}
	return out
}

// kebabRe matches lowercase kebab-case identifiers
var kebabRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// maxSummaryLen caps the first description line; the catalog truncates
// at 60 so anything wildly longer defeats trigger matching
const maxSummaryLen = 200

// Options configure a lint run
type Options struct {
	// Ignore holds doublestar globs matched against skill directory
	// names; matching skills are skipped entirely
	Ignore []string
}

// Run validates every skill directory in the repository
func Run(r *repo.Repository, opts Options) (*Result, error) {
	dirs, err := r.SkillDirs()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	byName := make(map[string]string) // frontmatter name -> first dir claiming it

	for _, dir := range dirs {
		dirName := filepath.Base(dir)
		if ignored(dirName, opts.Ignore) {
			continue
		}
		result.SkillCount++
		result.Findings = append(result.Findings, checkSkill(dir, dirName, byName)...)
	}

	return result, nil
}

func ignored(dirName string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, dirName); err == nil && ok {
			return true
		}
	}
	return false
}

// checkSkill runs all rules against one skill directory
func checkSkill(dir, dirName string, byName map[string]string) []Finding {
	var findings []Finding

	add := func(rule string, sev Severity, format string, args ...interface{}) {
		findings = append(findings, Finding{
			RuleID:   rule,
			Severity: sev,
			Skill:    dirName,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	path := filepath.Join(dir, skill.Filename)
	content, err := os.ReadFile(path)
	if err != nil {
		add(RuleMissingSkillFile, SeverityError, "missing %s", skill.Filename)
		return findings
	}

	meta, err := frontmatter.ParseDocument(content)
	if err != nil {
		add(RuleInvalidFrontmatter, SeverityError, "%v", err)
		return findings
	}

	name := strings.TrimSpace(frontmatter.GetString(meta, "name"))
	description := strings.TrimSpace(frontmatter.GetString(meta, "description"))

	if name == "" {
		add(RuleMissingName, SeverityError, "frontmatter field 'name' is missing or empty")
	}
	if description == "" {
		add(RuleMissingDescription, SeverityError, "frontmatter field 'description' is missing or empty")
	}

	if name != "" {
		if prev, taken := byName[name]; taken {
			add(RuleDuplicateName, SeverityError, "name '%s' already used by %s", name, prev)
		} else {
			byName[name] = dirName
		}

		if !kebabRe.MatchString(name) {
			add(RuleNameNotKebab, SeverityWarning, "name '%s' is not kebab-case", name)
		}
		if name != dirName {
			add(RuleNameDirMismatch, SeverityWarning, "name '%s' does not match directory '%s'", name, dirName)
		}
	}

	if description != "" {
		firstLine, _, _ := strings.Cut(description, "\n")
		if len(firstLine) > maxSummaryLen {
			add(RuleLongSummary, SeverityWarning, "description first line is %d chars; keep the summary concise", len(firstLine))
		}
	}

	if !repo.HasContentDir(dir) {
		add(RuleNoContentDir, SeverityError, "skill has none of: %s", strings.Join(skill.ContentDirNames, ", "))
	}

	for _, link := range relativeLinks(content) {
		target := filepath.Join(dir, filepath.FromSlash(link))
		if _, err := os.Stat(target); err != nil {
			add(RuleDanglingLink, SeverityWarning, "link target '%s' does not exist", link)
		}
	}

	return findings
}

// relativeLinks extracts markdown link destinations that point inside
// the skill directory (references/, scripts/, assets/ or plain
// relative paths). External URLs and anchors are skipped.
func relativeLinks(content []byte) []string {
	var links []string
	seen := make(map[string]bool)

	for _, dest := range extractLinkDests(content) {
		if dest == "" || strings.HasPrefix(dest, "#") {
			continue
		}
		if u, err := url.Parse(dest); err == nil && u.Scheme != "" {
			continue
		}
		if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "../") {
			continue
		}
		// Strip anchors and query strings
		if i := strings.IndexAny(dest, "#?"); i >= 0 {
			dest = dest[:i]
		}
		if dest == "" || seen[dest] {
			continue
		}
		seen[dest] = true
		links = append(links, dest)
	}

	return links
}

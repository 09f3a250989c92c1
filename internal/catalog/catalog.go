// Package catalog renders the repository-level skills catalog: a
// markdown table grouped by inferred category, spliced into the
// "Skills Catalog" section of the repository README.
package catalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/niuverse/skillbook/internal/skill"
)

// Category labels, listed in display order
const (
	CategoryRobotics    = "🤖 Robotics"
	CategoryPython      = "🐍 Python"
	CategoryAIML        = "🧠 AI/ML"
	CategoryWeb         = "🌐 Web"
	CategoryCodeQuality = "✨ Code Quality"
	CategoryTools       = "🛠️ Tools"
)

// categoryOrder fixes the display order; unknown categories sort after
// these, alphabetically
var categoryOrder = []string{
	CategoryRobotics,
	CategoryPython,
	CategoryAIML,
	CategoryWeb,
	CategoryCodeQuality,
	CategoryTools,
}

// keyword tables for category inference
var (
	roboticsKeywords = []string{"robot", "sim", "mujoco", "isaac"}
	pythonKeywords   = []string{"python", "architect", "software"}
	codeKeywords     = []string{"code", "simplifier", "cleanup", "refactor"}
	webKeywords      = []string{"web", "api", "http"}
	aimlKeywords     = []string{"data", "ml", "ai"}
)

// maxDescLen is the catalog row description limit
const maxDescLen = 60

// Entry is one catalog row
type Entry struct {
	Name        string
	Dir         string // skill directory name, used for the link
	Description string
	Category    string
}

// Categorize infers a category from the skill's name and description.
// Name matches take precedence for the python and code-quality buckets,
// matching the historical behavior of the catalog tooling.
func Categorize(name, shortDesc string) string {
	nameLower := strings.ToLower(name)
	descLower := strings.ToLower(shortDesc)

	containsAny := func(haystacks []string, words []string) bool {
		for _, w := range words {
			for _, h := range haystacks {
				if strings.Contains(h, w) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case containsAny([]string{nameLower, descLower}, roboticsKeywords):
		return CategoryRobotics
	case containsAny([]string{nameLower}, pythonKeywords):
		return CategoryPython
	case containsAny([]string{nameLower}, codeKeywords):
		return CategoryCodeQuality
	case containsAny([]string{nameLower, descLower}, webKeywords):
		return CategoryWeb
	case containsAny([]string{nameLower, descLower}, aimlKeywords):
		return CategoryAIML
	default:
		return CategoryTools
	}
}

// Build converts skills into catalog entries
func Build(skills []*skill.Skill) []Entry {
	entries := make([]Entry, 0, len(skills))
	for _, s := range skills {
		desc := s.ShortDescription(maxDescLen)
		if desc == "" {
			desc = "No description"
		}
		entries = append(entries, Entry{
			Name:        s.Name,
			Dir:         s.DirName,
			Description: desc,
			Category:    Categorize(s.Name, desc),
		})
	}
	return entries
}

// Render generates the catalog markdown table
func Render(entries []Entry) string {
	lines := []string{
		"| Skill | Description | Category |",
		"|-------|-------------|----------|",
	}

	if len(entries) == 0 {
		return strings.Join(lines, "\n")
	}

	byCategory := make(map[string][]Entry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	known := make(map[string]bool, len(categoryOrder))
	for _, c := range categoryOrder {
		known[c] = true
	}

	appendRows := func(category string) {
		rows := byCategory[category]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		for _, e := range rows {
			lines = append(lines, fmt.Sprintf("| [`%s`](./skills/%s/) | %s | %s |",
				e.Name, e.Dir, e.Description, category))
		}
	}

	for _, category := range categoryOrder {
		appendRows(category)
	}

	var extra []string
	for category := range byCategory {
		if !known[category] {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	for _, category := range extra {
		appendRows(category)
	}

	return strings.Join(lines, "\n")
}

// headingRe matches the Skills Catalog heading line, with or without
// an emoji prefix
var headingRe = regexp.MustCompile(`(?m)^##[^\n#]*Skills Catalog[ \t]*$`)

// Splice replaces the Skills Catalog section of readme content with
// the rendered table. The section runs from the heading to the next
// level-2 heading or end of file. Returns the updated content and
// whether a catalog section was found.
func Splice(readme string, table string) (string, bool) {
	loc := headingRe.FindStringIndex(readme)
	if loc == nil {
		return readme, false
	}

	heading := readme[loc[0]:loc[1]]

	rest := readme[loc[1]:]
	end := len(readme)
	if next := strings.Index(rest, "\n## "); next >= 0 {
		// Leave the newline in the remainder so a blank line
		// separates the table from the next heading
		end = loc[1] + next
	}

	var b strings.Builder
	b.WriteString(readme[:loc[0]])
	b.WriteString(heading)
	b.WriteString("\n\n")
	b.WriteString(table)
	b.WriteString("\n")
	b.WriteString(readme[end:])
	return b.String(), true
}

// UpdateReadme rewrites the catalog section of the README file.
// Returns true when the file changed.
func UpdateReadme(path string, table string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, found := Splice(string(data), table)
	if !found {
		return false, fmt.Errorf("no 'Skills Catalog' section in %s", path)
	}

	if updated == string(data) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// CheckReadme reports whether the README's catalog section is current.
func CheckReadme(path string, table string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, found := Splice(string(data), table)
	if !found {
		return false, fmt.Errorf("no 'Skills Catalog' section in %s", path)
	}

	return updated == string(data), nil
}

// Package index maintains a keyword search index over a skills
// repository. The index is a YAML file cached inside the skills
// directory and rebuilt whenever any SKILL.md changes.
package index

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/niuverse/skillbook/internal/repo"
	"github.com/niuverse/skillbook/internal/skill"
)

// FileName is the cached index file inside the skills directory
const FileName = ".skillbook-index"

// Index holds the search index data
type Index struct {
	Generated time.Time `yaml:"generated"`
	Skills    []Entry   `yaml:"skills"`
}

// Entry is an indexed skill
type Entry struct {
	Name        string   `yaml:"name"`
	Dir         string   `yaml:"dir"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	ModTime     int64    `yaml:"mod_time"`
}

// common stopwords filtered out when extracting keywords from
// descriptions; skill descriptions address an agent, so agent-speak
// like "use when" carries no signal
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "when": true, "needs": true, "use": true, "using": true,
	"used": true, "can": true, "any": true, "other": true, "skill": true,
}

// Load reads the cached index from the skills directory. A missing
// index returns (nil, nil).
func Load(skillsDir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(skillsDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Save writes the index to the skills directory
func Save(skillsDir string, idx *Index) error {
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}

	header := "# skillbook search index - auto-generated, do not edit\n"
	return os.WriteFile(filepath.Join(skillsDir, FileName), append([]byte(header), data...), 0644)
}

// IsStale reports whether any SKILL.md is newer than its indexed
// mod time, or skills were added or removed since the index was built.
func IsStale(skillsDir string, idx *Index) (bool, error) {
	if idx == nil {
		return true, nil
	}

	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		return true, err
	}

	indexed := make(map[string]int64, len(idx.Skills))
	for _, e := range idx.Skills {
		indexed[e.Dir] = e.ModTime
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := os.Stat(filepath.Join(skillsDir, entry.Name(), skill.Filename))
		if err != nil {
			continue // skill dirs without SKILL.md are not indexed
		}

		modTime := info.ModTime().Unix()
		if indexedTime, ok := indexed[entry.Name()]; !ok || indexedTime != modTime {
			return true, nil
		}
		delete(indexed, entry.Name())
	}

	// Entries left over were removed from disk
	return len(indexed) > 0, nil
}

// Build scans the repository and produces a fresh index
func Build(r *repo.Repository) (*Index, error) {
	skills, err := r.Scan()
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Generated: time.Now(),
		Skills:    make([]Entry, 0, len(skills)),
	}

	for _, s := range skills {
		idx.Skills = append(idx.Skills, Entry{
			Name:        s.Name,
			Dir:         s.DirName,
			Description: s.Description,
			Keywords:    ExtractKeywords(s.Description),
			ModTime:     s.ModTime.Unix(),
		})
	}

	return idx, nil
}

// Ensure returns a current index for the repository, rebuilding and
// re-caching it when stale.
func Ensure(r *repo.Repository) (*Index, error) {
	skillsDir := r.SkillsDir()

	idx, err := Load(skillsDir)
	if err != nil {
		idx = nil // unreadable cache, rebuild
	}

	stale, err := IsStale(skillsDir, idx)
	if err != nil {
		return nil, err
	}
	if !stale {
		return idx, nil
	}

	idx, err = Build(r)
	if err != nil {
		return nil, err
	}

	// Cache write failures are not fatal; next run rebuilds
	_ = Save(skillsDir, idx)
	return idx, nil
}

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// ExtractKeywords pulls deduplicated lowercase keywords from a
// description, dropping stopwords and words shorter than three runes.
func ExtractKeywords(description string) []string {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(description), " ")

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

// Result is a scored search match
type Result struct {
	Entry Entry
	Score int // higher is better
}

// Search scores index entries against the query words and returns
// matches sorted by descending score.
func Search(idx *Index, query string) []Result {
	if idx == nil || len(idx.Skills) == 0 {
		return nil
	}

	queryWords := strings.Fields(strings.ToLower(query))
	var results []Result

	for _, e := range idx.Skills {
		if score := scoreMatch(e, queryWords); score > 0 {
			results = append(results, Result{Entry: e, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// scoreMatch weights exact name hits highest, then keyword hits, then
// substring hits in the description
func scoreMatch(e Entry, queryWords []string) int {
	score := 0
	nameLower := strings.ToLower(e.Name)
	descLower := strings.ToLower(e.Description)

	for _, qw := range queryWords {
		if nameLower == qw {
			score += 100
		} else if strings.Contains(nameLower, qw) {
			score += 50
		}

		if strings.Contains(descLower, qw) {
			score += 10
		}

		for _, kw := range e.Keywords {
			if kw == qw {
				score += 20
			} else if strings.Contains(kw, qw) {
				score += 5
			}
		}
	}

	return score
}

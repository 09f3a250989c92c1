package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niuverse/skillbook/internal/repo"
)

// writeSkill creates a skill directory fixture with the given SKILL.md
// content and optional extra files (paths relative to the skill dir).
func writeSkill(t *testing.T, root, dirName, content string, extras ...string) {
	t.Helper()
	dir := filepath.Join(root, "skills", dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for _, rel := range extras {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func openRepo(t *testing.T, root string) *repo.Repository {
	t.Helper()
	r, err := repo.Open(root)
	if err != nil {
		t.Fatalf("repo.Open() error = %v", err)
	}
	return r
}

const goodSkill = `---
name: pdf-processing
description: Extract text and tables from PDF files.
---

# PDF Processing

See [the extraction guide](references/guide.md).
`

func TestRunCleanSkill(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "pdf-processing", goodSkill, "references/guide.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.SkillCount != 1 {
		t.Errorf("SkillCount = %d, want 1", result.SkillCount)
	}
	if len(result.Findings) != 0 {
		t.Errorf("Findings = %+v, want none", result.Findings)
	}
}

func TestRunMissingSkillFile(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "no-skill-md", "", "references/guide.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertRule(t, result, "no-skill-md", RuleMissingSkillFile, SeverityError)
	if !result.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

func TestRunMissingFields(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "anonymous", "---\nversion: \"1\"\n---\n\n# Body\n", "references/a.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertRule(t, result, "anonymous", RuleMissingName, SeverityError)
	assertRule(t, result, "anonymous", RuleMissingDescription, SeverityError)
}

func TestRunNoFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "plain", "# Just markdown\n", "references/a.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertRule(t, result, "plain", RuleInvalidFrontmatter, SeverityError)
}

func TestRunDuplicateNames(t *testing.T) {
	root := t.TempDir()
	content := "---\nname: same-name\ndescription: A skill.\n---\n"
	writeSkill(t, root, "dir-a", content, "references/a.md")
	writeSkill(t, root, "dir-b", content, "references/a.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Directories scan in sorted order, so dir-b reports the duplicate
	assertRule(t, result, "dir-b", RuleDuplicateName, SeverityError)
}

func TestRunWarnings(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "my-dir",
		"---\nname: Not_Kebab\ndescription: A skill.\n---\n\n[missing](references/gone.md)\n",
		"references/other.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertRule(t, result, "my-dir", RuleNameNotKebab, SeverityWarning)
	assertRule(t, result, "my-dir", RuleNameDirMismatch, SeverityWarning)
	assertRule(t, result, "my-dir", RuleDanglingLink, SeverityWarning)

	if result.HasErrors() {
		t.Errorf("warnings must not fail the run: %+v", result.Errors())
	}
}

func TestRunNoContentDirIsError(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "bare",
		"---\nname: bare\ndescription: A skill with no bundled files.\n---\n")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertRule(t, result, "bare", RuleNoContentDir, SeverityError)
	if !result.HasErrors() {
		t.Error("HasErrors() = false, want true for a skill without content dirs")
	}
}

func TestRunDanglingLinkIgnoresExternal(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "linked",
		"---\nname: linked\ndescription: A skill.\n---\n\n"+
			"[web](https://example.com/doc)\n"+
			"[anchor](#section)\n"+
			"[good](references/guide.md)\n",
		"references/guide.md")

	result, err := Run(openRepo(t, root), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, f := range result.ForSkill("linked") {
		if f.RuleID == RuleDanglingLink {
			t.Errorf("unexpected dangling-link finding: %+v", f)
		}
	}
}

func TestRunIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "draft-idea", "# broken\n")
	writeSkill(t, root, "pdf-processing", goodSkill, "references/guide.md")

	result, err := Run(openRepo(t, root), Options{Ignore: []string{"draft-*"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.SkillCount != 1 {
		t.Errorf("SkillCount = %d, want 1 (draft ignored)", result.SkillCount)
	}
	if len(result.ForSkill("draft-idea")) != 0 {
		t.Error("ignored skill still has findings")
	}
}

func assertRule(t *testing.T, result *Result, skillDir, ruleID string, sev Severity) {
	t.Helper()
	for _, f := range result.ForSkill(skillDir) {
		if f.RuleID == ruleID {
			if f.Severity != sev {
				t.Errorf("%s severity = %v, want %v", ruleID, f.Severity, sev)
			}
			return
		}
	}
	t.Errorf("no %s finding for %s; got %+v", ruleID, skillDir, result.ForSkill(skillDir))
}

func TestRelativeLinks(t *testing.T) {
	content := []byte(`---
name: x
description: y
---

[guide](references/guide.md)
[dup](references/guide.md)
[anchor](references/guide.md#section)
[query](scripts/run.py?raw=1)
[external](https://example.com/a.md)
[mail](mailto:team@example.com)
[abs](/etc/passwd)
[parent](../outside.md)
[frag](#top)
![img](assets/diagram.png)
`)

	got := relativeLinks(content)
	want := []string{"references/guide.md", "scripts/run.py", "assets/diagram.png"}

	if len(got) != len(want) {
		t.Fatalf("relativeLinks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %q, want %q", i, got[i], want[i])
		}
	}
}

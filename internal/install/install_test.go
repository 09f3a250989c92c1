package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/skill"
)

// fixture builds a loaded skill on disk and agent paths in temp dirs
func fixture(t *testing.T) (*skill.Skill, *config.Paths, *config.State) {
	t.Helper()

	skillDir := filepath.Join(t.TempDir(), "pdf-processing")
	for _, rel := range []string{"SKILL.md", "references/guide.md", "scripts/extract.py"} {
		path := filepath.Join(skillDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content of "+rel), 0644); err != nil {
			t.Fatal(err)
		}
	}

	s := &skill.Skill{
		Name:        "pdf-processing",
		Description: "Extract text from PDFs",
		Dir:         skillDir,
		DirName:     "pdf-processing",
		References:  []string{"references/guide.md"},
		Scripts:     []string{"scripts/extract.py"},
	}

	agentHome := t.TempDir()
	paths := &config.Paths{
		Home:          agentHome,
		UserConfigDir: filepath.Join(agentHome, ".config", "skillbook"),
		StateFile:     filepath.Join(agentHome, ".config", "skillbook", "state.json"),
		Agent:         config.AgentClaude,
		AgentDir:      filepath.Join(agentHome, ".claude"),
		SkillsDir:     filepath.Join(agentHome, ".claude", "skills"),
	}

	return s, paths, &config.State{Version: "1"}
}

func TestInstall(t *testing.T) {
	s, paths, state := fixture(t)

	rec, err := Install(s, paths, state, "/repo/root")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	destDir := filepath.Join(paths.SkillsDir, "pdf-processing")
	for _, rel := range []string{"SKILL.md", "references/guide.md", "scripts/extract.py"} {
		if _, err := os.Stat(filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s not installed: %v", rel, err)
		}
	}

	if rec.Name != "pdf-processing" || rec.Agent != config.AgentClaude {
		t.Errorf("record = %+v", rec)
	}
	if rec.Hash == "" {
		t.Error("record has no hash")
	}
	if rec.LocalPath != destDir {
		t.Errorf("LocalPath = %q, want %q", rec.LocalPath, destDir)
	}
	if state.FindInstalled("pdf-processing", config.AgentClaude) == nil {
		t.Error("state has no record")
	}
}

func TestInstallReplacesPrevious(t *testing.T) {
	s, paths, state := fixture(t)

	first, err := Install(s, paths, state, "/repo/root")
	if err != nil {
		t.Fatal(err)
	}

	// A stale file from an earlier layout should not survive reinstall
	stale := filepath.Join(paths.SkillsDir, "pdf-processing", "old.md")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	second, err := Install(s, paths, state, "/repo/root")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived reinstall")
	}
	if !second.InstalledAt.Equal(first.InstalledAt) {
		t.Error("reinstall should preserve the original InstalledAt")
	}
	if len(state.Installed) != 1 {
		t.Errorf("state has %d records, want 1", len(state.Installed))
	}
}

func TestRemove(t *testing.T) {
	s, paths, state := fixture(t)

	rec, err := Install(s, paths, state, "/repo/root")
	if err != nil {
		t.Fatal(err)
	}

	if err := Remove(rec, state); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := os.Stat(rec.LocalPath); !os.IsNotExist(err) {
		t.Error("installed directory still exists")
	}
	if state.FindInstalled("pdf-processing", config.AgentClaude) != nil {
		t.Error("state record still exists")
	}
}

func TestCheckDrift(t *testing.T) {
	s, paths, state := fixture(t)

	rec, err := Install(s, paths, state, "/repo/root")
	if err != nil {
		t.Fatal(err)
	}

	if got := CheckDrift(rec); got != StatusOK {
		t.Errorf("CheckDrift() = %v, want %v", got, StatusOK)
	}

	// Editing the installed SKILL.md is drift
	installed := filepath.Join(rec.LocalPath, skill.Filename)
	if err := os.WriteFile(installed, []byte("tampered"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := CheckDrift(rec); got != StatusModified {
		t.Errorf("CheckDrift() = %v, want %v", got, StatusModified)
	}

	// Deleting it entirely is missing
	if err := os.RemoveAll(rec.LocalPath); err != nil {
		t.Fatal(err)
	}
	if got := CheckDrift(rec); got != StatusMissing {
		t.Errorf("CheckDrift() = %v, want %v", got, StatusMissing)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("content"))
	h2 := Hash([]byte("content"))
	h3 := Hash([]byte("different"))

	if h1 != h2 {
		t.Error("identical content hashed differently")
	}
	if h1 == h3 {
		t.Error("different content hashed identically")
	}
	if len(h1) != len("sha256:")+64 {
		t.Errorf("hash format = %q", h1)
	}
	if h1[:7] != "sha256:" {
		t.Errorf("hash prefix = %q", h1[:7])
	}
}

// Package install copies skills from a repository into an agent's
// skills directory and keeps the installation state current.
package install

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/niuverse/skillbook/internal/config"
	"github.com/niuverse/skillbook/internal/skill"
)

// Hash returns the "sha256:..." digest of content
func Hash(content []byte) string {
	h := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(h[:])
}

// HashFile hashes a file's content
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// Install copies the skill directory (SKILL.md plus references/,
// scripts/, assets/) into the agent's skills dir and records it in
// state. An existing installation of the same skill is replaced.
func Install(s *skill.Skill, paths *config.Paths, state *config.State, source string) (*config.InstalledSkill, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create agent directories: %w", err)
	}

	destDir := filepath.Join(paths.SkillsDir, s.DirName)

	// Replace any previous copy wholesale so removed files don't linger
	if err := os.RemoveAll(destDir); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", destDir, err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	files := []string{skill.Filename}
	files = append(files, s.References...)
	files = append(files, s.Scripts...)
	files = append(files, s.Assets...)

	for _, rel := range files {
		src := filepath.Join(s.Dir, filepath.FromSlash(rel))
		dst := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", rel, err)
		}
		log.Debug("installed file", "skill", s.Name, "file", rel)
	}

	hash, err := HashFile(filepath.Join(destDir, skill.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to hash installed skill: %w", err)
	}

	now := time.Now()
	rec := config.InstalledSkill{
		Name:        s.Name,
		Description: s.ShortDescription(120),
		Agent:       paths.Agent,
		Source:      source,
		LocalPath:   destDir,
		Hash:        hash,
		Files:       files,
		InstalledAt: now,
		UpdatedAt:   now,
	}

	if prev := state.FindInstalled(s.Name, paths.Agent); prev != nil {
		rec.InstalledAt = prev.InstalledAt
	}
	state.AddInstalled(rec)

	return &rec, nil
}

// Remove deletes an installed skill directory and its state record
func Remove(rec *config.InstalledSkill, state *config.State) error {
	if rec.LocalPath != "" {
		if err := os.RemoveAll(rec.LocalPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", rec.LocalPath, err)
		}
	}
	state.RemoveInstalled(rec.Name, rec.Agent)
	return nil
}

// DriftStatus describes an installed skill's relation to its recorded hash
type DriftStatus string

const (
	StatusOK       DriftStatus = "ok"       // on-disk content matches the record
	StatusModified DriftStatus = "modified" // SKILL.md differs from the recorded hash
	StatusMissing  DriftStatus = "missing"  // installed directory or SKILL.md is gone
)

// CheckDrift compares an installed skill against its recorded hash
func CheckDrift(rec *config.InstalledSkill) DriftStatus {
	path := filepath.Join(rec.LocalPath, skill.Filename)
	hash, err := HashFile(path)
	if err != nil {
		return StatusMissing
	}
	if rec.Hash != "" && hash != rec.Hash {
		return StatusModified
	}
	return StatusOK
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Package fetch discovers and downloads skills from remote GitHub
// repositories so they can be imported into a local skills repository.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v67/github"

	"github.com/niuverse/skillbook/internal/frontmatter"
	"github.com/niuverse/skillbook/internal/ghclient"
	"github.com/niuverse/skillbook/internal/skill"
	"github.com/niuverse/skillbook/internal/source"
)

// maxSkillBytes caps the total download size of one skill
const maxSkillBytes = 10 << 20

// Client fetches remote skills
type Client struct {
	http *http.Client
	gh   map[string]*ghclient.Client // keyed by host
}

// NewClient creates a fetch client
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
		gh:   make(map[string]*ghclient.Client),
	}
}

// client returns the GitHub client for a source's host
func (c *Client) client(src *source.Source) *ghclient.Client {
	host := src.Host
	if host == "" {
		host = "github.com"
	}
	if cl, ok := c.gh[host]; ok {
		return cl
	}

	var cl *ghclient.Client
	if src.IsEnterprise() {
		cl = ghclient.NewForHost(host)
	} else {
		cl = ghclient.New()
	}
	if !cl.IsAuthenticated() {
		log.Debug("no github token found, unauthenticated requests are rate limited", "host", host)
	}
	c.gh[host] = cl
	return cl
}

// FetchURL fetches raw content over HTTP
func (c *Client) FetchURL(rawURL string) ([]byte, error) {
	resp, err := c.http.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxSkillBytes))
}

// RemoteSkill is a skill directory discovered in a remote repository
type RemoteSkill struct {
	// DirName is the remote skill directory's base name
	DirName string
	// Path is the directory path within the repository
	Path string
	// Name and Description come from the remote SKILL.md frontmatter
	Name        string
	Description string
}

// DiscoverSkills finds skill directories in a GitHub source. When the
// source path is empty, a top-level skills/ directory is preferred,
// falling back to scanning the repository root.
func (c *Client) DiscoverSkills(ctx context.Context, src *source.Source) ([]RemoteSkill, error) {
	if src.Kind != source.KindGitHub {
		return nil, fmt.Errorf("source is not a GitHub repository")
	}

	root := src.Path
	if root == "" {
		if dirs, err := c.listDirs(ctx, src, skill.SkillsDirName); err == nil && len(dirs) > 0 {
			root = skill.SkillsDirName
		}
	}

	dirs, err := c.listDirs(ctx, src, root)
	if err != nil {
		return nil, err
	}

	var skills []RemoteSkill
	for _, dir := range dirs {
		remote, err := c.loadRemoteSkill(ctx, src, dir)
		if err != nil {
			log.Debug("skipping remote dir", "dir", dir, "err", err)
			continue
		}
		skills = append(skills, *remote)
	}

	// The source may itself point at a single skill directory
	if len(skills) == 0 && root != "" {
		if remote, err := c.loadRemoteSkill(ctx, src, root); err == nil {
			skills = append(skills, *remote)
		}
	}

	return skills, nil
}

// listDirs lists the subdirectories at a path within the source repo
func (c *Client) listDirs(ctx context.Context, src *source.Source, dir string) ([]string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: src.Ref}
	contents, err := c.client(src).ListContents(ctx, src.Owner, src.Repo, dir, opts)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range contents {
		if entry.GetType() == "dir" && !strings.HasPrefix(entry.GetName(), ".") {
			dirs = append(dirs, entry.GetPath())
		}
	}
	return dirs, nil
}

// loadRemoteSkill fetches and parses a remote directory's SKILL.md
func (c *Client) loadRemoteSkill(ctx context.Context, src *source.Source, dir string) (*RemoteSkill, error) {
	opts := &github.RepositoryContentGetOptions{Ref: src.Ref}
	content, err := c.client(src).GetContents(ctx, src.Owner, src.Repo, path.Join(dir, skill.Filename), opts)
	if err != nil {
		return nil, err
	}

	var md skill.Metadata
	if _, err := frontmatter.ParseTyped(content, &md); err != nil {
		return nil, err
	}
	if md.Name == "" || md.Description == "" {
		return nil, fmt.Errorf("remote %s lacks name or description", skill.Filename)
	}

	return &RemoteSkill{
		DirName:     path.Base(dir),
		Path:        dir,
		Name:        md.Name,
		Description: md.Description,
	}, nil
}

// rawDownloadURL returns the raw content URL for a file entry. The
// contents API hands back a download URL for regular files; entries
// without one fall back to the host's raw URL scheme.
func rawDownloadURL(src *source.Source, entry *github.RepositoryContent) string {
	if u := entry.GetDownloadURL(); u != "" {
		return u
	}
	rel := strings.TrimPrefix(entry.GetPath(), src.Path)
	rel = strings.TrimPrefix(rel, "/")
	return src.RawURL(rel)
}

// Download copies a remote skill directory (SKILL.md plus content
// subdirectories) into destDir. Returns the downloaded file paths
// relative to destDir.
func (c *Client) Download(ctx context.Context, src *source.Source, remote *RemoteSkill, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	var files []string
	var total int64
	if err := c.downloadDir(ctx, src, remote.Path, "", destDir, &files, &total); err != nil {
		return nil, err
	}

	return files, nil
}

// downloadDir recursively downloads a remote directory
func (c *Client) downloadDir(ctx context.Context, src *source.Source, remoteDir, subPath, destDir string, files *[]string, total *int64) error {
	opts := &github.RepositoryContentGetOptions{Ref: src.Ref}
	listPath := remoteDir
	if subPath != "" {
		listPath = path.Join(remoteDir, subPath)
	}

	contents, err := c.client(src).ListContents(ctx, src.Owner, src.Repo, listPath, opts)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", listPath, err)
	}

	for _, entry := range contents {
		rel := entry.GetName()
		if subPath != "" {
			rel = path.Join(subPath, entry.GetName())
		}

		switch entry.GetType() {
		case "dir":
			if strings.HasPrefix(entry.GetName(), ".") {
				continue
			}
			if err := c.downloadDir(ctx, src, remoteDir, rel, destDir, files, total); err != nil {
				return err
			}

		case "file":
			*total += int64(entry.GetSize())
			if *total > maxSkillBytes {
				return fmt.Errorf("skill exceeds download limit (%d bytes)", maxSkillBytes)
			}

			content, err := c.FetchURL(rawDownloadURL(src, entry))
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", entry.GetPath(), err)
			}

			dst := filepath.Join(destDir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(dst, content, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dst, err)
			}

			*files = append(*files, rel)
			log.Debug("downloaded", "file", rel, "bytes", entry.GetSize())
		}
	}

	return nil
}

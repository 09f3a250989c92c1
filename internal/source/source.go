// Package source parses the source strings accepted by skillbook
// fetch: GitHub shorthand (owner/repo[:path][@ref]), full GitHub or
// raw URLs, and local paths.
package source

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind of source
type Kind string

const (
	KindGitHub Kind = "github"
	KindURL    Kind = "url"
	KindLocal  Kind = "local"
)

// Source is a parsed source string
type Source struct {
	Kind     Kind
	Host     string // GitHub host, github.com unless enterprise
	Owner    string
	Repo     string
	Path     string // subpath within the repo, or local path
	Ref      string // branch, tag, or commit
	URL      string // full URL for KindURL
	Original string
}

var (
	// owner/repo or owner/repo:path
	shorthandRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_.-]+)(?::(.+))?$`)

	// owner/repo@ref or owner/repo:path@ref
	shorthandRefRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/([a-zA-Z0-9_.-]+)(?::([^@]+))?@(.+)$`)
)

// Parse parses a source string
func Parse(input string) (*Source, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty source")
	}

	if isLocalPath(input) {
		absPath, err := filepath.Abs(input)
		if err != nil {
			return nil, fmt.Errorf("invalid local path: %w", err)
		}
		return &Source{Kind: KindLocal, Path: absPath, Original: input}, nil
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return parseURL(input)
	}

	if m := shorthandRefRe.FindStringSubmatch(input); m != nil {
		return &Source{
			Kind:     KindGitHub,
			Host:     "github.com",
			Owner:    m[1],
			Repo:     m[2],
			Path:     m[3],
			Ref:      m[4],
			Original: input,
		}, nil
	}

	if m := shorthandRe.FindStringSubmatch(input); m != nil {
		return &Source{
			Kind:     KindGitHub,
			Host:     "github.com",
			Owner:    m[1],
			Repo:     m[2],
			Path:     m[3],
			Ref:      "main",
			Original: input,
		}, nil
	}

	return nil, fmt.Errorf("unable to parse source: %s", input)
}

func parseURL(input string) (*Source, error) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if isGitHubHost(u.Host) {
		return parseGitHubURL(u, input)
	}

	return &Source{Kind: KindURL, URL: input, Original: input}, nil
}

func isGitHubHost(host string) bool {
	lower := strings.ToLower(host)
	return lower == "github.com" ||
		lower == "raw.githubusercontent.com" ||
		strings.Contains(lower, "github")
}

func parseGitHubURL(u *url.URL, original string) (*Source, error) {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid GitHub URL: %s", original)
	}

	host := u.Host
	if host == "raw.githubusercontent.com" {
		host = "github.com"
	}

	src := &Source{
		Kind:     KindGitHub,
		Host:     host,
		Owner:    parts[0],
		Repo:     parts[1],
		Ref:      "main",
		URL:      original,
		Original: original,
	}

	switch {
	// raw.githubusercontent.com/owner/repo/ref/path
	case u.Host == "raw.githubusercontent.com" && len(parts) >= 3:
		src.Ref = parts[2]
		if len(parts) > 3 {
			src.Path = strings.Join(parts[3:], "/")
		}

	// github.com/owner/repo/blob/ref/path or .../tree/ref/path
	case len(parts) >= 4 && (parts[2] == "blob" || parts[2] == "tree" || parts[2] == "raw"):
		src.Ref = parts[3]
		if len(parts) > 4 {
			src.Path = strings.Join(parts[4:], "/")
		}
	}

	return src, nil
}

func isLocalPath(input string) bool {
	if strings.HasPrefix(input, ".") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~") {
		return true
	}

	_, err := os.Stat(input)
	return err == nil
}

// IsEnterprise reports whether this source targets a GitHub Enterprise host
func (s *Source) IsEnterprise() bool {
	return s.Host != "" && s.Host != "github.com"
}

// RawURL returns the raw content URL for a file within the source
func (s *Source) RawURL(path string) string {
	if s.Kind != KindGitHub {
		return ""
	}

	fullPath := path
	if s.Path != "" && path == "" {
		fullPath = s.Path
	} else if s.Path != "" {
		fullPath = s.Path + "/" + path
	}

	if !s.IsEnterprise() {
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s",
			s.Owner, s.Repo, s.Ref, fullPath)
	}
	return fmt.Sprintf("https://%s/%s/%s/raw/%s/%s",
		s.Host, s.Owner, s.Repo, s.Ref, fullPath)
}

// String returns a human-readable representation
func (s *Source) String() string {
	switch s.Kind {
	case KindGitHub:
		result := fmt.Sprintf("%s/%s", s.Owner, s.Repo)
		if s.Path != "" {
			result += ":" + s.Path
		}
		if s.Ref != "" && s.Ref != "main" {
			result += "@" + s.Ref
		}
		return result
	case KindLocal:
		return s.Path
	case KindURL:
		return s.URL
	default:
		return s.Original
	}
}

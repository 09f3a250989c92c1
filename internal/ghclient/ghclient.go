// Package ghclient wraps the go-github client used to fetch skills
// from GitHub repositories. Token resolution order: GITHUB_TOKEN,
// GH_TOKEN, the gh CLI's hosts.yml, then unauthenticated.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// Client wraps the go-github client
type Client struct {
	gh            *github.Client
	authenticated bool
}

// New creates a client for github.com
func New() *Client {
	token := getToken()

	var httpClient *http.Client
	authenticated := false

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		authenticated = true
		log.Debug("github client authenticated")
	}

	return &Client{
		gh:            github.NewClient(httpClient),
		authenticated: authenticated,
	}
}

// NewForHost creates a client for a GitHub Enterprise host
func NewForHost(host string) *Client {
	c := New()

	if host != "" && host != "github.com" && host != "api.github.com" {
		baseURL := fmt.Sprintf("https://%s/api/v3/", host)
		c.gh.BaseURL, _ = url.Parse(baseURL)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", host)
		c.gh.UploadURL, _ = url.Parse(uploadURL)
	}

	return c
}

// IsAuthenticated reports whether a token was found
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// GetContents fetches a single file's decoded content
func (c *Client) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) ([]byte, error) {
	fileContent, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}

	if fileContent == nil {
		return nil, fmt.Errorf("path is a directory, not a file")
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	return []byte(content), nil
}

// ListContents lists a directory within a repository
func (c *Client) ListContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) ([]*github.RepositoryContent, error) {
	_, dirContents, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}

	return dirContents, nil
}

// getToken resolves a GitHub token from the environment or gh CLI config
func getToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return readGhToken()
}

// ghHosts mirrors the shape of gh's hosts.yml
type ghHosts map[string]struct {
	OAuthToken string `yaml:"oauth_token"`
}

// readGhToken reads the gh CLI's stored token for github.com
func readGhToken() string {
	configDir := os.Getenv("GH_CONFIG_DIR")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config", "gh")
	}

	data, err := os.ReadFile(filepath.Join(configDir, "hosts.yml"))
	if err != nil {
		return ""
	}

	var hosts ghHosts
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return ""
	}

	return hosts["github.com"].OAuthToken
}

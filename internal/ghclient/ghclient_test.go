package ghclient

import (
	"os"
	"path/filepath"
	"testing"
)

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GH_CONFIG_DIR", t.TempDir()) // empty dir, no hosts.yml
}

func TestGetTokenFromEnv(t *testing.T) {
	clearTokenEnv(t)

	if got := getToken(); got != "" {
		t.Errorf("getToken() = %q, want empty", got)
	}

	t.Setenv("GH_TOKEN", "gh-token")
	if got := getToken(); got != "gh-token" {
		t.Errorf("getToken() = %q, want gh-token", got)
	}

	// GITHUB_TOKEN takes precedence
	t.Setenv("GITHUB_TOKEN", "github-token")
	if got := getToken(); got != "github-token" {
		t.Errorf("getToken() = %q, want github-token", got)
	}
}

func TestReadGhToken(t *testing.T) {
	clearTokenEnv(t)

	configDir := t.TempDir()
	hosts := "github.com:\n    oauth_token: stored-token\n    user: someone\n"
	if err := os.WriteFile(filepath.Join(configDir, "hosts.yml"), []byte(hosts), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GH_CONFIG_DIR", configDir)

	if got := getToken(); got != "stored-token" {
		t.Errorf("getToken() = %q, want stored-token", got)
	}
}

func TestReadGhTokenMalformed(t *testing.T) {
	clearTokenEnv(t)

	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, "hosts.yml"), []byte("{not yaml"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GH_CONFIG_DIR", configDir)

	if got := getToken(); got != "" {
		t.Errorf("getToken() = %q, want empty for malformed hosts.yml", got)
	}
}

func TestNewUnauthenticated(t *testing.T) {
	clearTokenEnv(t)

	c := New()
	if c.IsAuthenticated() {
		t.Error("client without token reports authenticated")
	}
	if c.gh == nil {
		t.Fatal("underlying client is nil")
	}
}

func TestNewAuthenticated(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("GITHUB_TOKEN", "some-token")

	c := New()
	if !c.IsAuthenticated() {
		t.Error("client with token reports unauthenticated")
	}
}

func TestNewForHost(t *testing.T) {
	clearTokenEnv(t)

	c := NewForHost("github.corp.example.com")
	if got := c.gh.BaseURL.String(); got != "https://github.corp.example.com/api/v3/" {
		t.Errorf("BaseURL = %q", got)
	}
	if got := c.gh.UploadURL.String(); got != "https://github.corp.example.com/api/uploads/" {
		t.Errorf("UploadURL = %q", got)
	}

	// github.com keeps the default API endpoint
	c = NewForHost("github.com")
	if got := c.gh.BaseURL.String(); got != "https://api.github.com/" {
		t.Errorf("BaseURL for github.com = %q", got)
	}
}

package source

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Source
		wantErr bool
	}{
		{
			name:  "simple owner/repo",
			input: "niuverse/skills",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Ref:      "main",
				Original: "niuverse/skills",
			},
		},
		{
			name:  "owner/repo with path",
			input: "niuverse/skills:skills/pdf-processing",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Path:     "skills/pdf-processing",
				Ref:      "main",
				Original: "niuverse/skills:skills/pdf-processing",
			},
		},
		{
			name:  "owner/repo with ref",
			input: "niuverse/skills@v1.2.0",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Ref:      "v1.2.0",
				Original: "niuverse/skills@v1.2.0",
			},
		},
		{
			name:  "owner/repo with path and ref",
			input: "niuverse/skills:skills/pdf@develop",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Path:     "skills/pdf",
				Ref:      "develop",
				Original: "niuverse/skills:skills/pdf@develop",
			},
		},
		{
			name:  "github tree URL",
			input: "https://github.com/niuverse/skills/tree/main/skills/pdf",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Path:     "skills/pdf",
				Ref:      "main",
				URL:      "https://github.com/niuverse/skills/tree/main/skills/pdf",
				Original: "https://github.com/niuverse/skills/tree/main/skills/pdf",
			},
		},
		{
			name:  "github blob URL",
			input: "https://github.com/niuverse/skills/blob/v2/skills/pdf/SKILL.md",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Path:     "skills/pdf/SKILL.md",
				Ref:      "v2",
				URL:      "https://github.com/niuverse/skills/blob/v2/skills/pdf/SKILL.md",
				Original: "https://github.com/niuverse/skills/blob/v2/skills/pdf/SKILL.md",
			},
		},
		{
			name:  "raw githubusercontent URL",
			input: "https://raw.githubusercontent.com/niuverse/skills/main/skills/pdf/SKILL.md",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "niuverse",
				Repo:     "skills",
				Path:     "skills/pdf/SKILL.md",
				Ref:      "main",
				URL:      "https://raw.githubusercontent.com/niuverse/skills/main/skills/pdf/SKILL.md",
				Original: "https://raw.githubusercontent.com/niuverse/skills/main/skills/pdf/SKILL.md",
			},
		},
		{
			name:  "non-github URL",
			input: "https://example.com/skills/pdf.md",
			want: &Source{
				Kind:     KindURL,
				URL:      "https://example.com/skills/pdf.md",
				Original: "https://example.com/skills/pdf.md",
			},
		},
		{
			name:  "repo with dots",
			input: "user/my.repo.name",
			want: &Source{
				Kind:     KindGitHub,
				Host:     "github.com",
				Owner:    "user",
				Repo:     "my.repo.name",
				Ref:      "main",
				Original: "user/my.repo.name",
			},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a source",
			input:   "justoneword",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLocal(t *testing.T) {
	got, err := Parse("./skills/pdf")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Kind != KindLocal {
		t.Errorf("Kind = %v, want %v", got.Kind, KindLocal)
	}
	if got.Path == "" || got.Path[0] != '/' {
		t.Errorf("Path = %q, want absolute path", got.Path)
	}
}

func TestRawURL(t *testing.T) {
	tests := []struct {
		name string
		src  *Source
		path string
		want string
	}{
		{
			name: "github.com source",
			src:  &Source{Kind: KindGitHub, Host: "github.com", Owner: "niuverse", Repo: "skills", Ref: "main"},
			path: "skills/pdf/SKILL.md",
			want: "https://raw.githubusercontent.com/niuverse/skills/main/skills/pdf/SKILL.md",
		},
		{
			name: "source with base path",
			src:  &Source{Kind: KindGitHub, Host: "github.com", Owner: "niuverse", Repo: "skills", Path: "skills/pdf", Ref: "main"},
			path: "SKILL.md",
			want: "https://raw.githubusercontent.com/niuverse/skills/main/skills/pdf/SKILL.md",
		},
		{
			name: "enterprise host",
			src:  &Source{Kind: KindGitHub, Host: "github.corp.example.com", Owner: "team", Repo: "skills", Ref: "main"},
			path: "SKILL.md",
			want: "https://github.corp.example.com/team/skills/raw/main/SKILL.md",
		},
		{
			name: "non-github source",
			src:  &Source{Kind: KindURL, URL: "https://example.com/x"},
			path: "SKILL.md",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.RawURL(tt.path); got != tt.want {
				t.Errorf("RawURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		src  *Source
		want string
	}{
		{
			name: "plain repo",
			src:  &Source{Kind: KindGitHub, Owner: "niuverse", Repo: "skills", Ref: "main"},
			want: "niuverse/skills",
		},
		{
			name: "repo with path and ref",
			src:  &Source{Kind: KindGitHub, Owner: "niuverse", Repo: "skills", Path: "skills/pdf", Ref: "v2"},
			want: "niuverse/skills:skills/pdf@v2",
		},
		{
			name: "local path",
			src:  &Source{Kind: KindLocal, Path: "/tmp/skills"},
			want: "/tmp/skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.src.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsEnterprise(t *testing.T) {
	if (&Source{Host: "github.com"}).IsEnterprise() {
		t.Error("github.com should not be enterprise")
	}
	if !(&Source{Host: "github.corp.example.com"}).IsEnterprise() {
		t.Error("custom host should be enterprise")
	}
}

package fetch

import (
	"testing"

	"github.com/google/go-github/v67/github"

	"github.com/niuverse/skillbook/internal/source"
)

func TestRawDownloadURL(t *testing.T) {
	tests := []struct {
		name  string
		src   *source.Source
		entry *github.RepositoryContent
		want  string
	}{
		{
			name: "api download url preferred",
			src: &source.Source{
				Kind: source.KindGitHub, Owner: "acme", Repo: "skills", Ref: "main",
			},
			entry: &github.RepositoryContent{
				Path:        github.String("skills/pdf/SKILL.md"),
				DownloadURL: github.String("https://raw.githubusercontent.com/acme/skills/main/skills/pdf/SKILL.md"),
			},
			want: "https://raw.githubusercontent.com/acme/skills/main/skills/pdf/SKILL.md",
		},
		{
			name: "missing download url falls back to raw scheme",
			src: &source.Source{
				Kind: source.KindGitHub, Owner: "acme", Repo: "skills", Ref: "main",
			},
			entry: &github.RepositoryContent{
				Path: github.String("skills/pdf/scripts/extract.py"),
			},
			want: "https://raw.githubusercontent.com/acme/skills/main/skills/pdf/scripts/extract.py",
		},
		{
			name: "source path stripped before joining",
			src: &source.Source{
				Kind: source.KindGitHub, Owner: "acme", Repo: "skills",
				Path: "bundles", Ref: "v2",
			},
			entry: &github.RepositoryContent{
				Path: github.String("bundles/pdf/SKILL.md"),
			},
			want: "https://raw.githubusercontent.com/acme/skills/v2/bundles/pdf/SKILL.md",
		},
		{
			name: "enterprise host raw scheme",
			src: &source.Source{
				Kind: source.KindGitHub, Host: "github.corp.example.com",
				Owner: "acme", Repo: "skills", Ref: "main",
			},
			entry: &github.RepositoryContent{
				Path: github.String("skills/pdf/SKILL.md"),
			},
			want: "https://github.corp.example.com/acme/skills/raw/main/skills/pdf/SKILL.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawDownloadURL(tt.src, tt.entry)
			if got != tt.want {
				t.Errorf("rawDownloadURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

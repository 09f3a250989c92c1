package frontmatter

import (
	"strings"
	"testing"
)

const sampleSkill = `---
name: pdf-processing
description: Extract text and tables from PDF files. Use when working with PDFs.
version: "1.0"
---

# PDF Processing

Use the bundled scripts to extract text.
`

func TestParse(t *testing.T) {
	fm, body, err := Parse([]byte(sampleSkill))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := GetString(fm, "name"); got != "pdf-processing" {
		t.Errorf("name = %q, want %q", got, "pdf-processing")
	}
	if got := GetString(fm, "description"); !strings.HasPrefix(got, "Extract text") {
		t.Errorf("description = %q, want prefix %q", got, "Extract text")
	}
	if !strings.HasPrefix(body, "# PDF Processing") {
		t.Errorf("body = %q, want to start with heading", body)
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	content := "# Just a heading\n\nSome text.\n"
	fm, body, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(fm) != 0 {
		t.Errorf("frontmatter = %v, want empty", fm)
	}
	if body != content {
		t.Errorf("body = %q, want unchanged content", body)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	content := "---\nname: [unclosed\n---\n\nbody\n"
	if _, _, err := Parse([]byte(content)); err == nil {
		t.Error("Parse() expected error for invalid YAML")
	}
}

func TestParseTyped(t *testing.T) {
	type meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}

	var m meta
	body, err := ParseTyped([]byte(sampleSkill), &m)
	if err != nil {
		t.Fatalf("ParseTyped() error = %v", err)
	}
	if m.Name != "pdf-processing" {
		t.Errorf("Name = %q, want %q", m.Name, "pdf-processing")
	}
	if m.Description == "" {
		t.Error("Description is empty")
	}
	if !strings.Contains(body, "bundled scripts") {
		t.Errorf("body = %q, missing expected content", body)
	}
}

func TestParseDocument(t *testing.T) {
	fm, err := ParseDocument([]byte(sampleSkill))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if got := GetString(fm, "name"); got != "pdf-processing" {
		t.Errorf("name = %q, want %q", got, "pdf-processing")
	}
}

func TestParseDocumentMissingFrontmatter(t *testing.T) {
	if _, err := ParseDocument([]byte("# No frontmatter here\n")); err == nil {
		t.Error("ParseDocument() expected error for missing frontmatter")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	fm := map[string]interface{}{
		"name":        "test-skill",
		"description": "A test skill",
	}
	body := "# Test\n\nContent here.\n"

	out, err := Serialize(fm, body)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	parsed, gotBody, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := GetString(parsed, "name"); got != "test-skill" {
		t.Errorf("name = %q, want %q", got, "test-skill")
	}
	if !strings.Contains(gotBody, "Content here.") {
		t.Errorf("body = %q, missing content", gotBody)
	}
}

func TestGetString(t *testing.T) {
	m := map[string]interface{}{
		"str": "value",
		"num": 42,
	}
	if got := GetString(m, "str"); got != "value" {
		t.Errorf("GetString(str) = %q, want %q", got, "value")
	}
	if got := GetString(m, "num"); got != "" {
		t.Errorf("GetString(num) = %q, want empty", got)
	}
	if got := GetString(m, "missing"); got != "" {
		t.Errorf("GetString(missing) = %q, want empty", got)
	}
}

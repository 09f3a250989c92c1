// Package frontmatter parses and serializes the YAML frontmatter block
// of SKILL.md files. Two parsers are provided: a fast delimiter split
// for typed extraction, and a goldmark-based parse that validates the
// document as markdown while extracting metadata.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// Parse extracts YAML frontmatter from content.
// Returns the parsed frontmatter map, the body content, and any error.
// Content without a frontmatter block yields an empty map and the
// unchanged text.
func Parse(content []byte) (map[string]interface{}, string, error) {
	text := string(content)
	fm := make(map[string]interface{})

	yamlContent, body, ok := split(text)
	if !ok {
		return fm, text, nil
	}

	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return fm, body, nil
}

// ParseTyped extracts YAML frontmatter into a typed struct.
// Returns the body content and any error.
func ParseTyped[T any](content []byte, target *T) (string, error) {
	text := string(content)

	yamlContent, body, ok := split(text)
	if !ok {
		return text, nil
	}

	if err := yaml.Unmarshal([]byte(yamlContent), target); err != nil {
		return "", fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return body, nil
}

// split cuts content into frontmatter YAML and body. ok is false when
// no complete frontmatter block is present.
func split(text string) (yamlContent, body string, ok bool) {
	if !strings.HasPrefix(text, "---") {
		return "", "", false
	}

	rest := strings.TrimPrefix(text[3:], "\n")
	idx := strings.Index(rest, "\n---")
	if idx == -1 {
		return "", "", false
	}

	yamlContent = rest[:idx]
	body = strings.TrimPrefix(rest[idx+4:], "\n")
	return yamlContent, body, true
}

// ParseDocument runs content through the markdown parser and returns
// the metadata map. Unlike Parse, this fails on content the markdown
// parser rejects and on documents without any frontmatter, making it
// the stricter choice for validation.
func ParseDocument(content []byte) (map[string]interface{}, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, fmt.Errorf("missing frontmatter")
	}

	return metaData, nil
}

// Serialize creates content with YAML frontmatter and body.
func Serialize(fm interface{}, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize frontmatter: %w", err)
	}

	var result strings.Builder
	result.WriteString("---\n")
	result.Write(yamlBytes)
	result.WriteString("---\n")
	if body != "" {
		result.WriteString("\n")
		result.WriteString(body)
	}

	return []byte(result.String()), nil
}

// GetString safely extracts a string from a frontmatter map
func GetString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

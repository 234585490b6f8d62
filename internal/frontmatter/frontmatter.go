// Package frontmatter parses YAML frontmatter and titles out of markdown
// post files.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block of an imported post file.
type Frontmatter struct {
	// Title overrides the first-heading title when set.
	Title string `yaml:"title"`

	// PostType is the content type ("post" when empty).
	PostType string `yaml:"post_type"`

	// Status is the post status ("publish" when empty).
	Status string `yaml:"status"`

	// Terms are term slugs to assign, keyed by taxonomy implicitly by
	// the import command.
	Terms []string `yaml:"terms"`
}

// Parse splits markdown content into frontmatter and body. Returns a nil
// Frontmatter when the content has no frontmatter block.
//
// Frontmatter is only detected when the first line is '---'; an unclosed
// block is treated as absent.
func Parse(content string) (*Frontmatter, string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, content, nil
	}

	endLine := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endLine = i
			break
		}
	}
	if endLine == -1 {
		return nil, content, nil
	}

	raw := strings.Join(lines[1:endLine], "\n")
	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}

	body := strings.Join(lines[endLine+1:], "\n")
	return &fm, body, nil
}

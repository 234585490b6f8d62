package frontmatter

import "testing"

func TestParse(t *testing.T) {
	t.Run("full frontmatter", func(t *testing.T) {
		content := `---
title: Hello World
post_type: article
status: draft
terms:
  - local-news
  - weather
---

# Ignored Heading

Body text.
`
		fm, body, err := Parse(content)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if fm == nil {
			t.Fatal("expected frontmatter")
		}
		if fm.Title != "Hello World" {
			t.Errorf("expected title 'Hello World', got %q", fm.Title)
		}
		if fm.PostType != "article" || fm.Status != "draft" {
			t.Errorf("unexpected type/status: %q/%q", fm.PostType, fm.Status)
		}
		if len(fm.Terms) != 2 || fm.Terms[0] != "local-news" {
			t.Errorf("unexpected terms: %v", fm.Terms)
		}
		if body == content {
			t.Error("expected body to exclude frontmatter")
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		content := "# Just a heading\n\nBody.\n"
		fm, body, err := Parse(content)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if fm != nil {
			t.Errorf("expected nil frontmatter, got %+v", fm)
		}
		if body != content {
			t.Error("expected body unchanged")
		}
	})

	t.Run("unclosed frontmatter treated as absent", func(t *testing.T) {
		content := "---\ntitle: Oops\n\nBody.\n"
		fm, _, err := Parse(content)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if fm != nil {
			t.Errorf("expected nil frontmatter for unclosed block, got %+v", fm)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		content := "---\ntitle: [unclosed\n---\n"
		if _, _, err := Parse(content); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

func TestFirstHeading(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"atx heading", "# My Title\n\nBody.\n", "My Title"},
		{"later heading", "Intro paragraph.\n\n## Section One\n", "Section One"},
		{"no heading", "Just text.\n", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FirstHeading(tc.content); got != tc.want {
				t.Errorf("FirstHeading = %q, want %q", got, tc.want)
			}
		})
	}
}

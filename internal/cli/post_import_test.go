package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cmorrow/canopy/internal/testutil"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestImportPostFile(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.MustCreateTaxonomy(t, s, "category", true)
	news := testutil.MustCreateTerm(t, s, "category", "News", 0)
	dir := t.TempDir()

	t.Run("frontmatter drives metadata", func(t *testing.T) {
		path := writeTestFile(t, dir, "storm.md", `---
title: Storm Warning
status: draft
terms:
  - news
---

Body text.
`)
		postID, err := importPostFile(s, "category", path)
		if err != nil {
			t.Fatalf("importPostFile failed: %v", err)
		}

		post, err := s.GetPost(postID)
		if err != nil {
			t.Fatal(err)
		}
		if post.Title != "Storm Warning" || post.Status != "draft" || post.PostType != "post" {
			t.Errorf("unexpected post: %+v", post)
		}

		ids, err := s.PostTermIDs(postID, "category")
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 1 || ids[0] != news {
			t.Errorf("expected term %d assigned, got %v", news, ids)
		}
	})

	t.Run("title falls back to first heading", func(t *testing.T) {
		path := writeTestFile(t, dir, "heading.md", "# Heading Title\n\nBody.\n")
		postID, err := importPostFile(s, "category", path)
		if err != nil {
			t.Fatalf("importPostFile failed: %v", err)
		}
		post, _ := s.GetPost(postID)
		if post.Title != "Heading Title" {
			t.Errorf("expected heading title, got %q", post.Title)
		}
	})

	t.Run("title falls back to filename", func(t *testing.T) {
		path := writeTestFile(t, dir, "bare-notes.md", "Just text.\n")
		postID, err := importPostFile(s, "category", path)
		if err != nil {
			t.Fatalf("importPostFile failed: %v", err)
		}
		post, _ := s.GetPost(postID)
		if post.Title != "bare-notes" {
			t.Errorf("expected filename title, got %q", post.Title)
		}
	})

	t.Run("unknown term slug skips the file before creating", func(t *testing.T) {
		stats, _ := s.Stats()
		before := stats.PostCount

		path := writeTestFile(t, dir, "bad.md", "---\nterms: [nope]\n---\nBody.\n")
		if _, err := importPostFile(s, "category", path); err == nil {
			t.Fatal("expected error for unknown slug")
		}

		stats, _ = s.Stats()
		if stats.PostCount != before {
			t.Errorf("expected no post created, count went %d -> %d", before, stats.PostCount)
		}
	})
}

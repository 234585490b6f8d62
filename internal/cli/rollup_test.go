package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cmorrow/canopy/internal/rollup"
	"github.com/cmorrow/canopy/internal/store"
)

// seedRollupStore creates an on-disk store with Root -> Mid -> Leaf and a
// post tagged only with Leaf. Returns the db path and the three term IDs.
func seedRollupStore(t *testing.T) (string, [3]int64, int64) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if err := s.CreateTaxonomy("category", "Categories", true); err != nil {
		t.Fatal(err)
	}
	root, err := s.CreateTerm("category", "Root", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	mid, err := s.CreateTerm("category", "Mid", "", root)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := s.CreateTerm("category", "Leaf", "", mid)
	if err != nil {
		t.Fatal(err)
	}

	post, err := s.CreatePost("post", "publish", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AssignTerms(post, []int64{leaf}); err != nil {
		t.Fatal(err)
	}

	return path, [3]int64{root, mid, leaf}, post
}

func runCanopy(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestRollupCommand(t *testing.T) {
	path, terms, post := seedRollupStore(t)

	if err := runCanopy(t, "--db", path, "rollup", "category", "all"); err != nil {
		t.Fatalf("rollup command failed: %v", err)
	}

	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ids, err := s.PostTermIDs(post, "category")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Errorf("expected post %d to carry all of %v, got %v", post, terms, ids)
	}

	for _, id := range terms {
		term, err := s.GetTerm(id)
		if err != nil {
			t.Fatal(err)
		}
		if term.Count != 1 {
			t.Errorf("term %d: expected count 1 after rollup recount, got %d", id, term.Count)
		}
	}
}

func TestRollupCommandValidation(t *testing.T) {
	path, _, _ := seedRollupStore(t)

	err := runCanopy(t, "--db", path, "rollup", "nope", "all")
	if !errors.Is(err, rollup.ErrUnknownTaxonomy) {
		t.Errorf("expected ErrUnknownTaxonomy, got %v", err)
	}

	err = runCanopy(t, "--db", path, "rollup", "category", "banana")
	if !errors.Is(err, rollup.ErrInvalidTermID) {
		t.Errorf("expected ErrInvalidTermID, got %v", err)
	}
}

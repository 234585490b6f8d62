package rollup

import (
	"errors"
	"strconv"
	"testing"

	"github.com/cmorrow/canopy/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.CreateTaxonomy("category", "Categories", true); err != nil {
		t.Fatalf("failed to create taxonomy: %v", err)
	}
	if err := s.CreateTaxonomy("format", "Formats", false); err != nil {
		t.Fatalf("failed to create flat taxonomy: %v", err)
	}
	return s
}

func mustTerm(t *testing.T, s *store.Store, taxonomy, name string, parent int64) int64 {
	t.Helper()
	id, err := s.CreateTerm(taxonomy, name, "", parent)
	if err != nil {
		t.Fatalf("failed to create term %q: %v", name, err)
	}
	return id
}

func mustPost(t *testing.T, s *store.Store, postType string, termIDs ...int64) int64 {
	t.Helper()
	id, err := s.CreatePost(postType, "publish", "")
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if len(termIDs) > 0 {
		if err := s.AssignTerms(id, termIDs); err != nil {
			t.Fatalf("failed to assign terms: %v", err)
		}
	}
	return id
}

func mustRun(t *testing.T, s *store.Store, opts Options) *Summary {
	t.Helper()
	opts.Sleep = -1
	summary, err := Run(s, opts)
	if err != nil {
		t.Fatalf("rollup failed: %v", err)
	}
	return summary
}

func assertTerms(t *testing.T, s *store.Store, postID int64, want ...int64) {
	t.Helper()
	got, err := s.PostTermIDs(postID, "category")
	if err != nil {
		t.Fatalf("PostTermIDs failed: %v", err)
	}
	gotSet := make(map[int64]bool, len(got))
	for _, id := range got {
		gotSet[id] = true
	}
	if len(got) != len(want) {
		t.Errorf("post %d: expected terms %v, got %v", postID, want, got)
		return
	}
	for _, id := range want {
		if !gotSet[id] {
			t.Errorf("post %d: expected term %d in %v", postID, id, got)
		}
	}
}

func TestValidationOrdering(t *testing.T) {
	s := newTestStore(t)

	// Unknown taxonomy wins even when post type and terms are also bad
	_, err := Run(s, Options{Taxonomy: "nope", Terms: []string{"bogus"}, PostType: "widget", Sleep: -1})
	if !errors.Is(err, ErrUnknownTaxonomy) {
		t.Errorf("expected ErrUnknownTaxonomy, got %v", err)
	}

	// Flat taxonomy is rejected before post type is checked
	_, err = Run(s, Options{Taxonomy: "format", Terms: []string{"bogus"}, PostType: "widget", Sleep: -1})
	if !errors.Is(err, ErrNonHierarchicalTaxonomy) {
		t.Errorf("expected ErrNonHierarchicalTaxonomy, got %v", err)
	}

	// Post type is checked before term tokens are parsed
	_, err = Run(s, Options{Taxonomy: "category", Terms: []string{"bogus"}, PostType: "widget", Sleep: -1})
	if !errors.Is(err, ErrUnknownPostType) {
		t.Errorf("expected ErrUnknownPostType, got %v", err)
	}

	// Non-numeric term tokens fail validation instead of coercing to 0
	_, err = Run(s, Options{Taxonomy: "category", Terms: []string{"10", "bogus"}, Sleep: -1})
	if !errors.Is(err, ErrInvalidTermID) {
		t.Errorf("expected ErrInvalidTermID, got %v", err)
	}
	_, err = Run(s, Options{Taxonomy: "category", Terms: []string{"-3"}, Sleep: -1})
	if !errors.Is(err, ErrInvalidTermID) {
		t.Errorf("expected ErrInvalidTermID for negative ID, got %v", err)
	}
}

func TestNoAffectedPosts(t *testing.T) {
	s := newTestStore(t)
	news := mustTerm(t, s, "category", "News", 0)

	_, err := Run(s, Options{Taxonomy: "category", Terms: []string{"all"}, Sleep: -1})
	if !errors.Is(err, ErrNoAffectedPosts) {
		t.Errorf("expected ErrNoAffectedPosts, got %v", err)
	}

	// The clean abort leaves counting enabled and writes nothing
	if s.CountingDeferred() {
		t.Error("expected counting to remain enabled after clean abort")
	}
	term, _ := s.GetTerm(news)
	if term.Count != 0 {
		t.Errorf("expected untouched count, got %d", term.Count)
	}
}

func TestRollupChain(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	mid := mustTerm(t, s, "category", "Mid", root)
	leaf := mustTerm(t, s, "category", "Leaf", mid)

	post := mustPost(t, s, "post", leaf)

	summary := mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}})

	assertTerms(t, s, post, root, mid, leaf)
	if summary.Matched != 1 || summary.Updated != 1 || summary.TermsAdded != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// Deferred counting reconciled with a single final recount
	for _, id := range []int64{root, mid, leaf} {
		term, err := s.GetTerm(id)
		if err != nil {
			t.Fatal(err)
		}
		if term.Count != 1 {
			t.Errorf("term %d: expected count 1 after recount, got %d", id, term.Count)
		}
	}
}

func TestIdempotence(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	mid := mustTerm(t, s, "category", "Mid", root)
	leaf := mustTerm(t, s, "category", "Leaf", mid)

	post := mustPost(t, s, "post", leaf)

	mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}})
	second := mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}})

	if second.Updated != 0 || second.TermsAdded != 0 {
		t.Errorf("second run should add nothing, got %+v", second)
	}
	assertTerms(t, s, post, root, mid, leaf)
}

func TestExplicitListScoping(t *testing.T) {
	s := newTestStore(t)
	animals := mustTerm(t, s, "category", "Animals", 0)
	mammals := mustTerm(t, s, "category", "Mammals", animals)
	plants := mustTerm(t, s, "category", "Plants", 0)
	trees := mustTerm(t, s, "category", "Trees", plants)

	// Tagged with a listed term and an unlisted term that both have parents
	both := mustPost(t, s, "post", mammals, trees)
	// Tagged only with an unlisted descendant: not matched by the query at all
	onlyTrees := mustPost(t, s, "post", trees)

	summary := mustRun(t, s, Options{
		Taxonomy: "category",
		Terms:    []string{formatID(mammals)},
	})

	if summary.Matched != 1 {
		t.Errorf("expected 1 matched post, got %d", summary.Matched)
	}

	// Only the listed term's chain propagates; the trees chain is ignored
	assertTerms(t, s, both, animals, mammals, trees)
	assertTerms(t, s, onlyTrees, trees)
}

func TestNoRegression(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	leafA := mustTerm(t, s, "category", "Leaf A", root)
	leafB := mustTerm(t, s, "category", "Leaf B", root)

	post := mustPost(t, s, "post", leafA, leafB)

	mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}})

	// Both original assignments survive alongside the added ancestor
	assertTerms(t, s, post, root, leafA, leafB)
}

func TestPaginationCompleteness(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	leaf := mustTerm(t, s, "category", "Leaf", root)

	for i := 0; i < 250; i++ {
		mustPost(t, s, "post", leaf)
	}

	var pageCounts []int
	summary := mustRun(t, s, Options{
		Taxonomy: "category",
		Terms:    []string{"all"},
		PageSize: 100,
		PageDone: func(count int) { pageCounts = append(pageCounts, count) },
	})

	if summary.Pages != 3 || summary.Processed != 250 || summary.Updated != 250 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if len(pageCounts) != 3 || pageCounts[0] != 100 || pageCounts[1] != 100 || pageCounts[2] != 50 {
		t.Errorf("expected pages of 100, 100, 50; got %v", pageCounts)
	}
}

func TestPerItemFailureIsolation(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	leaf := mustTerm(t, s, "category", "Leaf", root)
	broken := mustTerm(t, s, "category", "Broken", root)

	good := mustPost(t, s, "post", leaf)
	bad := mustPost(t, s, "post", broken)

	// Point the broken term at a parent that does not exist, so its
	// ancestor lookup fails mid-batch.
	if _, err := s.DB().Exec("UPDATE terms SET parent = 9999 WHERE id = ?", broken); err != nil {
		t.Fatal(err)
	}

	summary := mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}})

	if len(summary.Failures) != 1 || summary.Failures[0].PostID != bad {
		t.Errorf("expected one failure for post %d, got %+v", bad, summary.Failures)
	}
	if summary.Updated != 1 {
		t.Errorf("expected the healthy post to be updated, got %+v", summary)
	}
	assertTerms(t, s, good, root, leaf)
}

func TestPostTypeFilter(t *testing.T) {
	s := newTestStore(t)
	root := mustTerm(t, s, "category", "Root", 0)
	leaf := mustTerm(t, s, "category", "Leaf", root)

	post := mustPost(t, s, "post", leaf)
	page := mustPost(t, s, "page", leaf)

	mustRun(t, s, Options{Taxonomy: "category", Terms: []string{"all"}, PostType: "page"})

	// Only the page rolled up; the post keeps its single tag
	assertTerms(t, s, page, root, leaf)
	assertTerms(t, s, post, leaf)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

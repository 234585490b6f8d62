// Package rollup implements the ancestor-rollup batch processor.
//
// A rollup walks every post tagged with a selected set of terms and
// additionally tags each post with all ancestors of its assigned terms
// that are not already present. Assignments are only ever added.
package rollup

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cmorrow/canopy/internal/store"
)

// AllTerms is the selector token that targets every term in the taxonomy.
const AllTerms = "all"

// DefaultPageSize is the number of posts fetched per query page.
const DefaultPageSize = 100

// DefaultSleep is the pause between pages. It throttles sustained write
// load against the database during long runs.
const DefaultSleep = time.Second

var (
	// ErrUnknownTaxonomy indicates the taxonomy does not exist.
	ErrUnknownTaxonomy = errors.New("unknown taxonomy")
	// ErrNonHierarchicalTaxonomy indicates the taxonomy has no parent/child
	// structure, making a rollup meaningless.
	ErrNonHierarchicalTaxonomy = errors.New("taxonomy is not hierarchical")
	// ErrUnknownPostType indicates the post type does not exist.
	ErrUnknownPostType = errors.New("unknown post type")
	// ErrInvalidTermID indicates a term selector token is not a positive integer.
	ErrInvalidTermID = errors.New("invalid term ID")
	// ErrNoAffectedPosts indicates the term set matches no posts. The run
	// stops cleanly before any writes.
	ErrNoAffectedPosts = errors.New("no posts are affected")
)

// Options configures a rollup run.
type Options struct {
	// Taxonomy is the name of the hierarchical taxonomy to roll up.
	Taxonomy string

	// Terms is the raw term selector: either the single token "all" or
	// one or more decimal term IDs.
	Terms []string

	// PostType restricts the run to one content type. Defaults to "post".
	PostType string

	// PageSize overrides DefaultPageSize.
	PageSize int

	// Sleep overrides DefaultSleep. Zero in Options means the default;
	// use a negative value to disable the pause entirely.
	Sleep time.Duration

	// Preflight, if set, is called once with the total match count
	// before the page loop starts.
	Preflight func(matched int)

	// PageDone, if set, is called after each processed page with the
	// number of posts on that page.
	PageDone func(count int)
}

// ItemFailure records a post whose assignment write failed. The batch
// continues past individual failures so a long run does not lose progress.
type ItemFailure struct {
	PostID int64  `json:"post_id"`
	Reason string `json:"reason"`
}

// Summary describes a completed rollup run.
type Summary struct {
	Matched    int           `json:"matched"`
	Processed  int           `json:"processed"`
	Updated    int           `json:"updated"`
	TermsAdded int           `json:"terms_added"`
	Pages      int           `json:"pages"`
	Failures   []ItemFailure `json:"failures,omitempty"`
}

// Run executes a rollup against the store.
//
// Validation is fail-fast and ordered: taxonomy existence, hierarchy,
// post type, then term selector parsing. Zero matching posts is reported
// as ErrNoAffectedPosts before anything is written. Incremental term
// counting is suspended for the duration of the run and reconciled with
// one full recount on every exit path past validation.
func Run(s *store.Store, opts Options) (summary *Summary, err error) {
	if opts.PostType == "" {
		opts.PostType = "post"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	sleep := opts.Sleep
	if sleep == 0 {
		sleep = DefaultSleep
	}

	tax, lookupErr := s.GetTaxonomy(opts.Taxonomy)
	if lookupErr != nil {
		if errors.Is(lookupErr, store.ErrTaxonomyNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownTaxonomy, opts.Taxonomy)
		}
		return nil, lookupErr
	}
	if !tax.Hierarchical {
		return nil, fmt.Errorf("%w: '%s'", ErrNonHierarchicalTaxonomy, opts.Taxonomy)
	}

	hasType, typeErr := s.HasPostType(opts.PostType)
	if typeErr != nil {
		return nil, typeErr
	}
	if !hasType {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPostType, opts.PostType)
	}

	termIDs, explicit, selErr := resolveTerms(s, opts.Taxonomy, opts.Terms)
	if selErr != nil {
		return nil, selErr
	}

	matched, countErr := s.CountPostsWithTerms(opts.PostType, termIDs)
	if countErr != nil {
		return nil, countErr
	}
	if matched == 0 {
		return nil, fmt.Errorf("%w by taxonomy '%s' and post type '%s'", ErrNoAffectedPosts, opts.Taxonomy, opts.PostType)
	}

	if opts.Preflight != nil {
		opts.Preflight(matched)
	}

	workingSet := make(map[int64]bool, len(termIDs))
	for _, id := range termIDs {
		workingSet[id] = true
	}

	// Suspend per-write count maintenance for the batch; reconcile once
	// at the end, whatever path we leave by.
	s.DeferTermCounting(true)
	defer func() {
		s.DeferTermCounting(false)
		if rerr := s.RecountTerms(opts.Taxonomy); rerr != nil && err == nil {
			summary = nil
			err = fmt.Errorf("final term recount: %w", rerr)
		}
	}()

	summary = &Summary{Matched: matched}

	for page := 1; ; page++ {
		postIDs, pageErr := s.PostIDsWithTerms(opts.PostType, termIDs, page, opts.PageSize)
		if pageErr != nil {
			return nil, pageErr
		}
		if len(postIDs) == 0 {
			break
		}

		for _, postID := range postIDs {
			summary.Processed++
			added, itemErr := rollupPost(s, opts.Taxonomy, postID, workingSet, explicit)
			if itemErr != nil {
				summary.Failures = append(summary.Failures, ItemFailure{
					PostID: postID,
					Reason: itemErr.Error(),
				})
				continue
			}
			if added > 0 {
				summary.Updated++
				summary.TermsAdded += added
			}
		}

		summary.Pages++
		if opts.PageDone != nil {
			opts.PageDone(len(postIDs))
		}

		// Drop memoized ancestor chains so a long run does not
		// accumulate unbounded cache state.
		s.InvalidateCache()

		if len(postIDs) == opts.PageSize && sleep > 0 {
			time.Sleep(sleep)
		}
	}

	return summary, nil
}

// resolveTerms parses the term selector into a concrete ID set. It reports
// whether the selector was an explicit list, which scopes ancestor
// propagation to only the listed terms.
func resolveTerms(s *store.Store, taxonomy string, terms []string) (ids []int64, explicit bool, err error) {
	if len(terms) == 1 && terms[0] == AllTerms {
		ids, err = s.TermIDs(taxonomy)
		return ids, false, err
	}
	if len(terms) == 0 {
		return nil, false, fmt.Errorf("%w: no term IDs given", ErrInvalidTermID)
	}

	seen := make(map[int64]bool, len(terms))
	for _, token := range terms {
		id, parseErr := strconv.ParseInt(token, 10, 64)
		if parseErr != nil || id <= 0 {
			return nil, false, fmt.Errorf("%w: '%s'", ErrInvalidTermID, token)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, true, nil
}

// rollupPost computes and applies the missing ancestor terms for one post.
// Returns the number of assignments added.
func rollupPost(s *store.Store, taxonomy string, postID int64, workingSet map[int64]bool, explicit bool) (int, error) {
	terms, err := s.PostTerms(postID, taxonomy)
	if err != nil {
		return 0, err
	}
	if len(terms) == 0 {
		return 0, nil
	}

	assigned := make(map[int64]bool, len(terms))
	for _, term := range terms {
		assigned[term.ID] = true
	}

	toAdd := make(map[int64]bool)
	for _, term := range terms {
		// Propagation is scoped to the terms the caller asked about.
		if explicit && !workingSet[term.ID] {
			continue
		}
		if term.Parent == 0 {
			continue
		}

		chain, err := s.AncestorChain(term.ID)
		if err != nil {
			return 0, err
		}
		for _, ancestor := range chain {
			if !assigned[ancestor] {
				toAdd[ancestor] = true
			}
		}
	}

	if len(toAdd) == 0 {
		return 0, nil
	}

	additions := make([]int64, 0, len(toAdd))
	for id := range toAdd {
		additions = append(additions, id)
	}
	sort.Slice(additions, func(i, j int) bool { return additions[i] < additions[j] })

	if err := s.AssignTerms(postID, additions); err != nil {
		return 0, err
	}
	return len(additions), nil
}

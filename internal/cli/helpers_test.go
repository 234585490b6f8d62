package cli

import (
	"fmt"
	"testing"

	"github.com/cmorrow/canopy/internal/store"
)

func TestParseID(t *testing.T) {
	if id, err := parseID("42", "post ID"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}

	for _, bad := range []string{"", "abc", "0", "-1", "1.5"} {
		if _, err := parseID(bad, "term ID"); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}

func TestStoreErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{store.ErrTaxonomyNotFound, ErrUnknownTaxonomy},
		{store.ErrPostTypeNotFound, ErrUnknownPostType},
		{store.ErrTermNotFound, ErrTermNotFound},
		{store.ErrPostNotFound, ErrPostNotFound},
		{fmt.Errorf("wrapped: %w", store.ErrTermNotFound), ErrTermNotFound},
		{fmt.Errorf("disk on fire"), ErrDatabaseError},
	}

	for _, tc := range cases {
		if got := storeErrorCode(tc.err); got != tc.want {
			t.Errorf("storeErrorCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

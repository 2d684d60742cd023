package cache

import (
	"testing"

	"github.com/justsurfingit/job-hub/internal/dtos"
)

// TestListKey verifies equivalent queries share a key and pages default to 1.
func TestListKey(t *testing.T) {
	a := ListKey(dtos.PostingListQuery{Keyword: "  React ", Tag: "GO"})
	b := ListKey(dtos.PostingListQuery{Keyword: "react", Tag: "go", Page: 1})
	if a != b {
		t.Fatalf("ListKey = %q and %q, want equal", a, b)
	}
	if got, want := a, "postings:list:react|go|1"; got != want {
		t.Fatalf("ListKey = %q, want %q", got, want)
	}
	if c := ListKey(dtos.PostingListQuery{Keyword: "react", Tag: "go", Page: 2}); c == a {
		t.Fatalf("page 2 key = page 1 key %q", c)
	}
}

package notion

import (
	"strings"
	"testing"

	"github.com/justsurfingit/job-hub/internal/board"
)

func TestBuildCardProperties(t *testing.T) {
	props := buildCardProperties(board.Card{
		ID:             "c1",
		Company:        "Kakao",
		Title:          "Frontend Engineer",
		Deadline:       "2026-02-10",
		Status:         board.StatusApplied,
		NextActionDate: "",
		Memo:           "- Update portfolio",
	})

	if got := props["Position"].Title[0].Text.Content; got != "Frontend Engineer" {
		t.Fatalf("Position = %q, want %q", got, "Frontend Engineer")
	}
	if got := props["Stage"].Select.Name; got != "APPLIED" {
		t.Fatalf("Stage = %q, want APPLIED", got)
	}
	d, ok := props["Deadline"]
	if !ok || d.Date == nil {
		t.Fatalf("Deadline missing: %+v", props)
	}
	if got := d.Date.Start.Time.Format("2006-01-02"); got != "2026-02-10" {
		t.Fatalf("Deadline = %s, want 2026-02-10", got)
	}
	if _, ok := props["Next Action"]; ok {
		t.Fatalf("Next Action set for empty date")
	}
	if got := props["Memo"].RichText[0].Text.Content; got != "- Update portfolio" {
		t.Fatalf("Memo = %q", got)
	}
}

func TestBuildCardPropertiesSkipsUnknownDeadline(t *testing.T) {
	props := buildCardProperties(board.Card{Title: "x", Deadline: board.NoDeadline, Status: board.StatusInterest})
	if _, ok := props["Deadline"]; ok {
		t.Fatalf("Deadline set for %q", board.NoDeadline)
	}
	if _, ok := props["Company"]; ok {
		t.Fatalf("Company set for empty company")
	}
}

func TestRichTextSplitsLongContent(t *testing.T) {
	long := strings.Repeat("a", 4500)
	items := richText(long)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	var joined strings.Builder
	for _, it := range items {
		if n := len(it.Text.Content); n > maxRichTextLen {
			t.Fatalf("item length %d over limit", n)
		}
		joined.WriteString(it.Text.Content)
	}
	if joined.String() != long {
		t.Fatal("split content does not rebuild the original")
	}

	// The emoji takes two UTF-16 units and must move to the next item whole.
	edge := richText(strings.Repeat("a", maxRichTextLen-1) + "\U0001F600")
	if len(edge) != 2 || edge[1].Text.Content != "\U0001F600" {
		t.Fatalf("edge split = %d items", len(edge))
	}

	if richText("") != nil {
		t.Fatal("empty content produced items")
	}
}

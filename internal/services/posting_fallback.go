package services

import (
	"strings"

	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/justsurfingit/job-hub/internal/models"
)

type fallbackPosting struct {
	summary dtos.PostingSummary
	role    string
}

// Placeholder postings served while the database is unreachable.
var fallbackPostings = []fallbackPosting{
	{
		summary: dtos.PostingSummary{
			ID:         "1",
			Title:      "Frontend Engineer (React)",
			Company:    "Kakao",
			Deadline:   "2026-02-10",
			TechStack:  []string{"React", "TypeScript", "TanStack Query"},
			HasSummary: true,
		},
		role: "Build the React screens for browsing and managing job postings",
	},
	{
		summary: dtos.PostingSummary{
			ID:        "2",
			Title:     "Fullstack Engineer (Node/React)",
			Company:   "Taewoong Logistics",
			Deadline:  "2026-02-03",
			TechStack: []string{"Node.js", "Express", "MongoDB", "React"},
		},
	},
	{
		summary: dtos.PostingSummary{
			ID:         "3",
			Title:      "Frontend Intern",
			Company:    "Startup A",
			Deadline:   "2026-01-25",
			TechStack:  []string{"React", "Vite"},
			HasSummary: true,
		},
		role: "Develop and maintain frontend features",
	},
}

// FilterFallback applies the keyword filter to the placeholder postings.
// Tag and page are ignored: the set is smaller than a page.
func FilterFallback(q dtos.PostingListQuery) []dtos.PostingSummary {
	k := strings.ToLower(strings.TrimSpace(q.Keyword))
	out := make([]dtos.PostingSummary, 0, len(fallbackPostings))
	for _, p := range fallbackPostings {
		s := p.summary
		if k != "" && !strings.Contains(strings.ToLower(s.Title), k) && !strings.Contains(strings.ToLower(s.Company), k) {
			continue
		}
		s.TechStack = append([]string{}, s.TechStack...)
		out = append(out, s)
	}
	return out
}

// FallbackDetail expands a placeholder posting into a detail payload.
func FallbackDetail(id string) (dtos.PostingDetail, bool) {
	for _, p := range fallbackPostings {
		if p.summary.ID != id {
			continue
		}
		d := dtos.PostingDetail{
			ID:        p.summary.ID,
			Title:     p.summary.Title,
			Company:   p.summary.Company,
			Deadline:  p.summary.Deadline,
			Link:      "https://example.com",
			TechStack: append([]string{}, p.summary.TechStack...),
		}
		if p.summary.HasSummary {
			d.Summary = &models.JobSummary{
				Role:         p.role,
				Requirements: []string{"TypeScript/React experience"},
				Preferred:    []string{"React Query experience"},
				Stack:        append([]string{}, p.summary.TechStack...),
				Process:      "Documents -> Coding test/Assignment -> Interview",
			}
		}
		return d, true
	}
	return dtos.PostingDetail{}, false
}

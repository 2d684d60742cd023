package services

import (
	"sort"
	"time"

	"github.com/justsurfingit/job-hub/internal/board"
	"github.com/justsurfingit/job-hub/internal/dtos"
)

const statsTopN = 3

// BuildPostingStats computes the postings overview: totals, the three
// nearest deadlines and the first three postings still missing a summary.
func BuildPostingStats(list []dtos.PostingSummary, today time.Time) dtos.PostingStats {
	st := dtos.PostingStats{
		Total:        len(list),
		SoonestTop3:  []dtos.PostingDue{},
		NoSummaryTop: []dtos.PostingSummary{},
	}

	due := make([]dtos.PostingDue, 0, len(list))
	for _, p := range list {
		if p.HasSummary {
			st.WithSummary++
		} else if len(st.NoSummaryTop) < statsTopN {
			st.NoSummaryTop = append(st.NoSummaryTop, p)
		}
		offset, ok := board.DaysFromToday(p.Deadline, today)
		if !ok {
			continue
		}
		due = append(due, dtos.PostingDue{Posting: p, Offset: offset, DDay: board.DDayLabel(offset, true)})
	}

	sort.SliceStable(due, func(i, j int) bool { return due[i].Offset < due[j].Offset })
	if len(due) > statsTopN {
		due = due[:statsTopN]
	}
	st.SoonestTop3 = append(st.SoonestTop3, due...)
	return st
}

package board

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultNextActionLimit = 8
	DefaultDueWindowDays   = 7
	DefaultDueLimit        = 10
)

// Ranked pairs a card with its day offset.
type Ranked struct {
	Card   Card `json:"card"`
	Offset int  `json:"offset"`
	Chip   Chip `json:"chip"`
}

// rank keeps cards whose date resolves, sorts them by offset and caps the
// result. Equal offsets keep insertion order.
func rank(cards []Card, today time.Time, date func(Card) string, keep func(int) bool, limit int) []Ranked {
	out := make([]Ranked, 0, len(cards))
	for _, c := range cards {
		offset, ok := DaysFromToday(date(c), today)
		if !ok || !keep(offset) {
			continue
		}
		out = append(out, Ranked{Card: c, Offset: offset, Chip: ChipFor(offset, true)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// NextActions ranks cards with a next-action date, most overdue first.
func NextActions(cards []Card, today time.Time, limit int) []Ranked {
	return rank(cards, today,
		func(c Card) string { return c.NextActionDate },
		func(int) bool { return true },
		limit)
}

// DueWithin ranks cards whose deadline is between today and days from now.
func DueWithin(cards []Card, today time.Time, days, limit int) []Ranked {
	return rank(cards, today,
		func(c Card) string { return c.Deadline },
		func(offset int) bool { return offset >= 0 && offset <= days },
		limit)
}

// StatusCounts counts cards per stage. Every stage is present.
func StatusCounts(cards []Card) map[Status]int {
	counts := make(map[Status]int, len(Pipeline))
	for _, s := range Pipeline {
		counts[s] = 0
	}
	for _, c := range cards {
		counts[c.Status]++
	}
	return counts
}

// KPI summarises next-action dates.
type KPI struct {
	DueToday int `json:"dueToday"`
	Overdue  int `json:"overdue"`
	DueIn7   int `json:"dueIn7"`
}

// ActionKPI counts actions due today, overdue actions and deadlines within a
// week.
func ActionKPI(cards []Card, today time.Time) KPI {
	var k KPI
	for _, c := range cards {
		if offset, ok := DaysFromToday(c.NextActionDate, today); ok {
			switch {
			case offset == 0:
				k.DueToday++
			case offset < 0:
				k.Overdue++
			}
		}
		if offset, ok := DaysFromToday(c.Deadline, today); ok && offset >= 0 && offset <= DefaultDueWindowDays {
			k.DueIn7++
		}
	}
	return k
}

// QuickCandidates are the cards still in play (not in RESULT).
func QuickCandidates(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Status != StatusResult {
			out = append(out, c)
		}
	}
	return out
}

// QuickTemplates are the canned memo lines offered by the quick-action panel.
var QuickTemplates = []string{
	"Draft cover letter",
	"Update portfolio",
	"Practice coding test",
	"Prepare interview questions",
	"Research company and role",
}

// AppendMemo adds a bullet line to a trimmed memo. A memo that already holds
// the bullet is returned unchanged.
func AppendMemo(memo, line string) string {
	item := "- " + line
	memo = strings.TrimSpace(memo)
	if memo == "" {
		return item
	}
	if strings.Contains(memo, item) {
		return memo
	}
	return memo + "\n" + item
}

// Dashboard is everything the dashboard page renders from the board.
type Dashboard struct {
	Total       int            `json:"total"`
	Counts      map[Status]int `json:"counts"`
	KPI         KPI            `json:"kpi"`
	NextActions []Ranked       `json:"nextActions"`
	DueIn7      []Ranked       `json:"dueIn7"`
	Quick       []Card         `json:"quickCandidates"`
	Today       string         `json:"today"`
}

// BuildDashboard recomputes the dashboard from a snapshot.
func BuildDashboard(cards []Card, today time.Time) Dashboard {
	return Dashboard{
		Total:       len(cards),
		Counts:      StatusCounts(cards),
		KPI:         ActionKPI(cards, today),
		NextActions: NextActions(cards, today, DefaultNextActionLimit),
		DueIn7:      DueWithin(cards, today, DefaultDueWindowDays, DefaultDueLimit),
		Quick:       QuickCandidates(cards),
		Today:       FormatDate(today),
	}
}

// Columns groups cards by stage in pipeline order for the kanban board.
func Columns(cards []Card, today time.Time) []Column {
	cols := make([]Column, len(Pipeline))
	idx := make(map[Status]int, len(Pipeline))
	for i, s := range Pipeline {
		cols[i] = Column{Status: s, Cards: []BoardCard{}}
		idx[s] = i
	}
	for _, c := range cards {
		i, ok := idx[c.Status]
		if !ok {
			continue
		}
		offset, known := DaysFromToday(c.Deadline, today)
		cols[i].Cards = append(cols[i].Cards, BoardCard{Card: c, DDay: DDayLabel(offset, known)})
	}
	return cols
}

// Column is one kanban lane.
type Column struct {
	Status Status      `json:"status"`
	Cards  []BoardCard `json:"cards"`
}

// BoardCard is a card with its deadline label.
type BoardCard struct {
	Card
	DDay string `json:"dday"`
}

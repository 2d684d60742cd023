package board

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DayCell is one square of a month grid. Day is 0 for padding cells.
type DayCell struct {
	Day  int    `json:"day"`
	Date string `json:"date,omitempty"`
}

// Placeholder reports whether the cell pads the grid.
func (c DayCell) Placeholder() bool { return c.Day == 0 }

// titleLocale drives title ordering inside a calendar day.
var titleLocale = language.Korean

// DaysIn returns the number of days of a month given as a zero-based index.
func DaysIn(year, month0 int) int {
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid lays a month out in Sunday-first weeks of seven cells,
// padding before the first day and after the last one. month0 is zero-based
// and normalised the way time.Date does (12 is January of the next year).
func BuildMonthGrid(year, month0 int) [][]DayCell {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(first.Year(), int(first.Month())-1)

	cells := make([]DayCell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, DayCell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, DayCell{Day: d, Date: FormatDate(first.AddDate(0, 0, d-1))})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, DayCell{})
	}

	weeks := make([][]DayCell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// DeadlinesByDay buckets cards whose deadline falls inside the month by date
// string. Each bucket is ordered by title using locale collation.
func DeadlinesByDay(cards []Card, year, month0 int) map[string][]Card {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)

	out := make(map[string][]Card)
	for _, c := range cards {
		dt, ok := ParseDate(c.Deadline)
		if !ok {
			continue
		}
		if dt.Year() != first.Year() || dt.Month() != first.Month() {
			continue
		}
		key := FormatDate(dt)
		out[key] = append(out[key], c)
	}

	col := collate.New(titleLocale)
	for _, bucket := range out {
		sort.SliceStable(bucket, func(i, j int) bool {
			return col.CompareString(bucket[i].Title, bucket[j].Title) < 0
		})
	}
	return out
}

// CalendarCell is a grid cell annotated with its deadline count.
type CalendarCell struct {
	DayCell
	Deadlines int  `json:"deadlines"`
	Today     bool `json:"today"`
}

// Calendar is the month view served to the calendar page.
type Calendar struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Label    string           `json:"label"`
	Weeks    [][]CalendarCell `json:"weeks"`
	Selected string           `json:"selected"`
	Items    []DeadlineItem   `json:"items"`
}

// DeadlineItem is a card shown under the selected calendar day.
type DeadlineItem struct {
	Card Card   `json:"card"`
	DDay string `json:"dday"`
	Tone Tone   `json:"tone"`
}

// MonthCalendar builds the calendar for the month with per-day deadline
// counts and the deadlines of the selected day. An empty selected date means
// today.
func MonthCalendar(cards []Card, year, month0 int, selected string, today time.Time) Calendar {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	buckets := DeadlinesByDay(cards, year, month0)
	todayKey := FormatDate(today)
	if selected == "" {
		selected = todayKey
	}

	grid := BuildMonthGrid(year, month0)
	weeks := make([][]CalendarCell, len(grid))
	for w, week := range grid {
		row := make([]CalendarCell, len(week))
		for i, cell := range week {
			row[i] = CalendarCell{DayCell: cell}
			if cell.Placeholder() {
				continue
			}
			row[i].Deadlines = len(buckets[cell.Date])
			row[i].Today = cell.Date == todayKey
		}
		weeks[w] = row
	}

	items := make([]DeadlineItem, 0, len(buckets[selected]))
	for _, c := range buckets[selected] {
		offset, ok := DaysFromToday(c.Deadline, today)
		items = append(items, DeadlineItem{
			Card: c,
			DDay: DDayLabel(offset, ok),
			Tone: DeadlineTone(offset, ok),
		})
	}

	return Calendar{
		Year:     first.Year(),
		Month:    int(first.Month()) - 1,
		Label:    first.Format("2006-01"),
		Weeks:    weeks,
		Selected: selected,
		Items:    items,
	}
}

package board

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DateLayout is the calendar-date format used for deadlines and action dates.
const DateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders the calendar day of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// dayOf strips the time of day, keeping the calendar date as seen in t's
// location. The result is in UTC so that day arithmetic is never skewed by
// DST changes.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysFromToday returns the signed number of calendar days from today to the
// given date. ok is false when the date is empty, "-" or malformed.
func DaysFromToday(date string, today time.Time) (offset int, ok bool) {
	target, ok := ParseDate(date)
	if !ok {
		return 0, false
	}
	// Unix seconds avoid the ~292 year cap on time.Duration.
	return int((target.Unix() - dayOf(today).Unix()) / secondsPerDay), true
}

// DDayLabel is the compact board label: D-day, D-3, D+2.
func DDayLabel(offset int, ok bool) string {
	switch {
	case !ok:
		return "-"
	case offset == 0:
		return "D-day"
	case offset > 0:
		return fmt.Sprintf("D-%d", offset)
	default:
		return fmt.Sprintf("D+%d", -offset)
	}
}

// Tone hints how a chip should be colored.
type Tone string

const (
	ToneMuted  Tone = "muted"
	ToneWarn   Tone = "warn"
	ToneDanger Tone = "danger"
)

// Chip is the dashboard label for a day offset.
type Chip struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// ChipFor labels next-action offsets, calling out today and tomorrow.
func ChipFor(offset int, ok bool) Chip {
	switch {
	case !ok:
		return Chip{Text: "-", Tone: ToneMuted}
	case offset < 0:
		return Chip{Text: fmt.Sprintf("overdue %dd", -offset), Tone: ToneDanger}
	case offset == 0:
		return Chip{Text: "today", Tone: ToneWarn}
	case offset == 1:
		return Chip{Text: "tomorrow", Tone: ToneWarn}
	default:
		return Chip{Text: fmt.Sprintf("D-%d", offset), Tone: ToneMuted}
	}
}

// DeadlineTone colors deadline badges: overdue, within three days, or later.
func DeadlineTone(offset int, ok bool) Tone {
	switch {
	case !ok:
		return ToneMuted
	case offset < 0:
		return ToneDanger
	case offset <= 3:
		return ToneWarn
	default:
		return ToneMuted
	}
}

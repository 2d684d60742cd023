package board

import "errors"

// Status is the pipeline stage a card sits in.
type Status string

const (
	StatusInterest  Status = "INTEREST"
	StatusPrepare   Status = "PREPARE"
	StatusApplied   Status = "APPLIED"
	StatusInterview Status = "INTERVIEW"
	StatusResult    Status = "RESULT"
)

// Pipeline lists the stages in board column order.
var Pipeline = []Status{
	StatusInterest,
	StatusPrepare,
	StatusApplied,
	StatusInterview,
	StatusResult,
}

// NoDeadline is stored when the posting has no deadline.
const NoDeadline = "-"

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Valid reports whether s is one of the pipeline stages.
func (s Status) Valid() bool {
	for _, p := range Pipeline {
		if s == p {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Card is one tracked application.
type Card struct {
	ID             string `json:"id"`
	PostingID      string `json:"postingId"`
	Company        string `json:"company"`
	Title          string `json:"title"`
	Deadline       string `json:"deadline"`
	Status         Status `json:"status"`
	Memo           string `json:"memo,omitempty"`
	NextActionDate string `json:"nextActionDate,omitempty"`
}

// NewCard is the input to AddCard. Display fields are copied as-is.
type NewCard struct {
	PostingID string
	Company   string
	Title     string
	Deadline  string
	Status    Status
}

// CardPatch carries the mutable fields; nil means "leave untouched".
// An empty NextActionDate clears the date.
type CardPatch struct {
	Memo           *string
	NextActionDate *string
}

// AddResult tells the caller whether AddCard created a card.
type AddResult struct {
	Created bool   `json:"created"`
	CardID  string `json:"cardId"`
}

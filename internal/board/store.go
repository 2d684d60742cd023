package board

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the cards of one user session.
//
// Every mutation builds a new slice and swaps it in; readers holding the old
// slice never see a half-applied change.
type Store struct {
	mu        sync.RWMutex
	cards     []Card
	byPosting map[string]int
	newID     func() string
}

// NewStore returns an empty store that generates random UUIDs.
func NewStore() *Store {
	return &Store{
		byPosting: make(map[string]int),
		newID:     uuid.NewString,
	}
}

// AddCard appends a card for the posting unless one already exists, in which
// case the existing id is returned with Created=false and nothing changes.
func (s *Store) AddCard(in NewCard) (AddResult, error) {
	status := in.Status
	if status == "" {
		status = StatusInterest
	}
	if !status.Valid() {
		return AddResult{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byPosting[in.PostingID]; ok {
		return AddResult{Created: false, CardID: s.cards[i].ID}, nil
	}

	deadline := in.Deadline
	if deadline == "" {
		deadline = NoDeadline
	}
	card := Card{
		ID:        s.newID(),
		PostingID: in.PostingID,
		Company:   in.Company,
		Title:     in.Title,
		Deadline:  deadline,
		Status:    status,
	}

	next := make([]Card, len(s.cards), len(s.cards)+1)
	copy(next, s.cards)
	s.cards = append(next, card)
	s.byPosting[in.PostingID] = len(s.cards) - 1

	return AddResult{Created: true, CardID: card.ID}, nil
}

// MoveCard puts the card in another stage. Any stage may follow any other.
func (s *Store) MoveCard(id string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.replace(id, func(c *Card) {
		c.Status = status
	})
}

// UpdateCard merges the non-nil patch fields into the card.
func (s *Store) UpdateCard(id string, patch CardPatch) error {
	return s.replace(id, func(c *Card) {
		if patch.Memo != nil {
			c.Memo = *patch.Memo
		}
		if patch.NextActionDate != nil {
			c.NextActionDate = *patch.NextActionDate
		}
	})
}

// ApplyQuickAction appends the template line to the memo and schedules the
// card's next action for today, in one step.
func (s *Store) ApplyQuickAction(id, template string, today time.Time) (Card, error) {
	var out Card
	err := s.replace(id, func(c *Card) {
		c.Memo = AppendMemo(c.Memo, template)
		c.NextActionDate = FormatDate(today)
		out = *c
	})
	return out, err
}

// ClearQuickAction removes the card's next-action date.
func (s *Store) ClearQuickAction(id string) (Card, error) {
	var out Card
	err := s.replace(id, func(c *Card) {
		c.NextActionDate = ""
		out = *c
	})
	return out, err
}

func (s *Store) replace(id string, mutate func(*Card)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.cards {
		if s.cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotFound
	}

	next := make([]Card, len(s.cards))
	copy(next, s.cards)
	mutate(&next[idx])
	s.cards = next
	return nil
}

// FindByPostingID returns the card tracking the posting, if any.
func (s *Store) FindByPostingID(postingID string) (Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byPosting[postingID]
	if !ok {
		return Card{}, false
	}
	return s.cards[i], true
}

// Get returns the card with the given id.
func (s *Store) Get(id string) (Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Cards returns a snapshot in insertion order. The caller owns the slice.
func (s *Store) Cards() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Len returns the number of cards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

package notion

import (
	"context"
	"fmt"
	"unicode/utf16"

	gnt "github.com/dstotijn/go-notion"

	"github.com/justsurfingit/job-hub/internal/board"
)

type Client struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string) *Client {
	return &Client{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
	}
}

// Ping runs a one-row query to check the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// ExportCards creates one page per card and returns the page ids in card
// order. It stops at the first failure; pages created before it stay.
func (c *Client) ExportCards(ctx context.Context, cards []board.Card) ([]string, error) {
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		id, err := c.CreateCardPage(ctx, card)
		if err != nil {
			return ids, fmt.Errorf("export card %s: %w", card.ID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CreateCardPage creates a new row for the card.
func (c *Client) CreateCardPage(ctx context.Context, card board.Card) (string, error) {
	props := buildCardProperties(card)

	page, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// maxRichTextLen is Notion's limit for one rich text item, in UTF-16 units.
const maxRichTextLen = 2000

// richText splits s into items Notion accepts. Surrogate pairs are never split.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	var (
		out   []gnt.RichText
		start int
		units int
	)
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > maxRichTextLen {
			out = append(out, gnt.RichText{Text: &gnt.Text{Content: s[start:i]}})
			start, units = i, 0
		}
		units += n
	}
	return append(out, gnt.RichText{Text: &gnt.Text{Content: s[start:]}})
}

func dateProp(s string) *gnt.Date {
	t, ok := board.ParseDate(s)
	if !ok {
		return nil
	}
	return &gnt.Date{Start: gnt.NewDateTime(t, false)}
}

func buildCardProperties(card board.Card) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Position is the title property.
	props["Position"] = gnt.DatabasePageProperty{
		Title: richText(card.Title),
	}

	if card.Company != "" {
		props["Company"] = gnt.DatabasePageProperty{
			RichText: richText(card.Company),
		}
	}

	props["Stage"] = gnt.DatabasePageProperty{
		Select: &gnt.SelectOptions{Name: string(card.Status)},
	}

	if d := dateProp(card.Deadline); d != nil {
		props["Deadline"] = gnt.DatabasePageProperty{Date: d}
	}
	if d := dateProp(card.NextActionDate); d != nil {
		props["Next Action"] = gnt.DatabasePageProperty{Date: d}
	}

	if card.Memo != "" {
		props["Memo"] = gnt.DatabasePageProperty{
			RichText: richText(card.Memo),
		}
	}

	return props
}

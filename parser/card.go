package parser

import (
	"fmt"
	"strings"

	"housing-connect-bot/models"

	"github.com/PuerkitoBio/goquery"
)

// Selectors inside one lottery grid card.
const (
	cardImageSelector   = "img.card-image"
	cardTitleSelector   = ".title.title-h3"
	locationSelector    = ".location"
	unitsSelector       = ".pb-xs.title-h6"
	closingSelector     = ".prefix.title-h4"
	appliedBtnSelector  = "button.btn-grey-90"
	appliedButtonMarker = "Applied"
)

// ParseCard extracts a Listing from the HTML of one lottery grid card.
// The card index is only used for the title fallback. A card without a
// recognizable lottery id in its image source yields (nil, nil): such cards
// are skipped by callers, never fatal for the page scan.
func ParseCard(cardHTML string, category models.Category, index int, baseURL string) (*models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHTML))
	if err != nil {
		return nil, fmt.Errorf("parse card html: %w", err)
	}

	src := doc.Find(cardImageSelector).First().AttrOr("src", "")
	id := LotteryID(src)
	if id == "" {
		return nil, nil
	}

	listing := &models.Listing{
		ID:       id,
		Title:    fmt.Sprintf("Unknown_%d", index),
		Category: category,
		URL:      models.DetailURL(baseURL, id),
	}

	if title := strings.TrimSpace(doc.Find(cardTitleSelector).First().Text()); title != "" {
		listing.Title = title
	}
	if loc := strings.TrimSpace(doc.Find(locationSelector).First().Text()); loc != "" {
		listing.Location = &loc
	}
	if units, ok := Units(doc.Find(unitsSelector).First().Text()); ok {
		listing.UnitsAvailable = &units
	}
	if days, ok := DaysUntilClosing(doc.Find(closingSelector).First().Text()); ok {
		listing.DaysUntilClosing = &days
	}

	btnText := doc.Find(appliedBtnSelector).First().Text()
	listing.IsApplied = strings.Contains(btnText, appliedButtonMarker)

	return listing, nil
}

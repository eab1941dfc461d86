package bot

import (
	"log"
	"time"

	"housing-connect-bot/models"
	"housing-connect-bot/parser"
)

// CollectListings walks every page of a category and returns the unique
// listings in first-seen order. No login is required.
func (b *Bot) CollectListings(category models.Category) ([]models.Listing, error) {
	if err := b.NavigateToLotteries(category); err != nil {
		return nil, err
	}

	totalPages := b.TotalPages()
	log.Printf("Found %d pages of %s lotteries", totalPages, category)

	var all []models.Listing
	seen := make(map[string]bool)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		if pageNum > 1 {
			log.Printf("Navigating to page %d...", pageNum)
			b.GoToPage(pageNum)
		}

		pageListings := b.listingsOnCurrentPage(category)

		newCount := 0
		for _, listing := range pageListings {
			if seen[listing.ID] {
				continue
			}
			seen[listing.ID] = true
			all = append(all, listing)
			newCount++
		}
		log.Printf("  Page %d: found %d cards, %d new lotteries", pageNum, len(pageListings), newCount)
	}

	log.Printf("Total: found %d unique %s lotteries", len(all), category)
	return all, nil
}

// listingsOnCurrentPage parses every card on the already-navigated page.
// A card that fails to parse is logged and skipped, never fatal.
func (b *Bot) listingsOnCurrentPage(category models.Category) []models.Listing {
	time.Sleep(b.cfg.Timing.ScanSettle)

	cards, err := b.page.QueryAll(cardSelector)
	if err != nil {
		log.Printf("  Error querying cards: %v", err)
		return nil
	}
	log.Printf("  Found %d cards on page", len(cards))

	var out []models.Listing
	for i, card := range cards {
		html, err := card.HTML()
		if err != nil {
			log.Printf("  Error reading card %d: %v", i, err)
			continue
		}
		listing, err := parser.ParseCard(html, category, i, b.cfg.BaseURL)
		if err != nil {
			log.Printf("  Error parsing card %d: %v", i, err)
			continue
		}
		if listing == nil {
			log.Printf("  Card %d has no lottery id, skipping", i)
			continue
		}
		log.Printf("    [%s] %s", listing.ID, listing.Title)
		out = append(out, *listing)
	}
	return out
}

package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"housing-connect-bot/models"
)

// cardState is the cheap positional snapshot of one card, captured before
// any navigation disturbs the grid.
type cardState struct {
	index   int
	title   string
	applied bool
}

// ApplyToAll applies to every lottery of a category across all pages.
// Submitting an application always lands back on page 1 of the listing
// view, so the orchestrator re-synchronizes to the category and page before
// each attempt. Cards are deduplicated by title: at this point the workflow
// only has positional access, and the title is the cheapest stable key
// available before a card is parsed.
func (b *Bot) ApplyToAll(category models.Category) ([]models.ApplicationOutcome, error) {
	log.Printf("APPLYING TO ALL %s LOTTERIES", strings.ToUpper(string(category)))

	if err := b.NavigateToLotteries(category); err != nil {
		return nil, err
	}

	totalPages := b.TotalPages()
	log.Printf("Total pages: %d", totalPages)

	var outcomes []models.ApplicationOutcome
	processed := make(map[string]bool)

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		log.Printf("--- Page %d of %d ---", pageNum, totalPages)

		if pageNum > 1 {
			log.Printf("Navigating to page %d...", pageNum)
			b.GoToPage(pageNum)
			time.Sleep(b.cfg.RandomActionDelay())
		}

		// Snapshot card titles and applied flags before any navigation.
		states := b.cardStatesOnPage()
		log.Printf("Found %d lotteries on this page", len(states))

		for _, st := range states {
			log.Printf("--- Lottery %d/%d: %s ---", st.index+1, len(states), st.title)

			if processed[st.title] {
				log.Println("  Skipping duplicate")
				continue
			}
			processed[st.title] = true

			if st.applied {
				log.Println("  ⚠ Already applied (skipping)")
				outcomes = append(outcomes, models.ApplicationOutcome{
					Title:          st.title,
					AlreadyApplied: true,
					Eligible:       true,
					Message:        "Already applied",
				})
				continue
			}

			// Re-sync to the category and page before the attempt.
			if err := b.NavigateToLotteries(category); err != nil {
				log.Printf("  ✗ Could not return to listings: %v", err)
				outcomes = append(outcomes, models.ApplicationOutcome{
					Title:    st.title,
					Eligible: true,
					Message:  fmt.Sprintf("Could not return to listings: %v", err),
				})
				continue
			}
			time.Sleep(b.cfg.RandomActionDelay())
			if pageNum > 1 {
				b.GoToPage(pageNum)
				time.Sleep(b.cfg.RandomActionDelay())
			}

			outcomes = append(outcomes, b.ApplyByIndex(category, st.index))
			time.Sleep(b.cfg.RandomActionDelay())
		}
	}

	return outcomes, nil
}

func (b *Bot) cardStatesOnPage() []cardState {
	cards, err := b.page.QueryAll(cardSelector)
	if err != nil {
		log.Printf("Error querying cards: %v", err)
		return nil
	}

	states := make([]cardState, 0, len(cards))
	for i, card := range cards {
		title := fmt.Sprintf("Unknown_%d", i)
		if el, ok, _ := card.Query(cardTitleSelector); ok {
			if t, err := el.Text(); err == nil && strings.TrimSpace(t) != "" {
				title = strings.TrimSpace(t)
			}
		}
		states = append(states, cardState{index: i, title: title, applied: b.cardShowsApplied(card)})
	}
	return states
}

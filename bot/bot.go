// Package bot drives the housing lottery portal: it resolves lottery cards
// across SPA re-renders, paginates the listing grid, logs in through the
// external identity redirect, and submits applications card by card.
package bot

import (
	"log"
	"strconv"
	"strings"
	"time"

	"housing-connect-bot/browser"
	"housing-connect-bot/config"
	"housing-connect-bot/models"
)

// Bot operates one browser page against the portal. All operations are
// strictly sequential; the page is the only shared mutable resource.
type Bot struct {
	cfg  config.Config
	page browser.Page
}

// New creates a Bot on an already-open page.
func New(cfg config.Config, page browser.Page) *Bot {
	return &Bot{cfg: cfg, page: page}
}

// NavigateToLotteries opens the listing grid and selects the category tab.
// No login is required for this view.
func (b *Bot) NavigateToLotteries(category models.Category) error {
	log.Printf("Navigating to %s lotteries...", category)
	if err := b.page.Navigate(b.cfg.LotteriesURL()); err != nil {
		return err
	}
	time.Sleep(b.cfg.Timing.PageSettle)

	if _, err := b.page.WaitFor(cardSelector, b.cfg.Timing.CardWait); err != nil {
		log.Println("Timeout waiting for lottery cards, trying to continue...")
	} else {
		log.Println("Lottery cards loaded")
	}

	b.selectTab(category)
	return nil
}

// selectTab clicks the Rentals/Sales tab, first by exact visible text on the
// tab span, then by a loose text search across clickable elements.
func (b *Bot) selectTab(category models.Category) {
	tabText := category.TabText()

	tab, ok := findByText(b.page, tabSelector, tabText, true)
	if !ok {
		tab, ok = findByText(b.page, looseTabSelector, tabText, false)
	}
	if !ok {
		log.Printf("Could not find %s tab", tabText)
		return
	}
	if err := tab.Click(); err != nil {
		log.Printf("Could not click %s tab: %v", tabText, err)
		return
	}
	time.Sleep(b.cfg.Timing.TabSettle)
	log.Printf("Clicked on %s tab", tabText)
}

// returnToList brings the page back to the listing grid after a detail-page
// excursion, with one reload-and-retry when the cards do not come back.
// Failures here are logged only: the caller's outcome is already decided.
func (b *Bot) returnToList(category models.Category) {
	log.Println("  Navigating back to list...")
	if err := b.page.Navigate(b.cfg.LotteriesURL()); err != nil {
		log.Printf("  Navigation back to list failed: %v", err)
		return
	}
	time.Sleep(b.cfg.RandomActionDelay())

	if _, err := b.page.WaitFor(cardSelector, b.cfg.Timing.DetailWait); err != nil {
		log.Println("  Timeout on list, retrying...")
		if err := b.page.Reload(); err != nil {
			log.Printf("  Reload failed: %v", err)
		}
		time.Sleep(b.cfg.RandomActionDelay())
		if _, err := b.page.WaitFor(cardSelector, b.cfg.Timing.CardRetryWait); err != nil {
			log.Printf("  Lottery cards still missing: %v", err)
		}
	}

	b.selectTab(category)
}

// onListingsView reports whether the page is currently on the listing grid.
func (b *Bot) onListingsView() bool {
	url, err := b.page.URL()
	return err == nil && strings.Contains(url, lotteriesPathMarker)
}

// awaitCondition polls cond every interval until it holds or timeout
// elapses. Every wait in the bot is bounded; post-timeout policy is the
// caller's responsibility.
func awaitCondition(cond func() bool, interval, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
}

type elementScope interface {
	QueryAll(selector string) ([]browser.Element, error)
}

// findByText scans the elements matched by selector for one whose trimmed
// visible text equals (exact) or contains (loose) text. Fallback chains are
// built by calling this with progressively broader selectors, in order.
func findByText(scope elementScope, selector, text string, exact bool) (browser.Element, bool) {
	els, err := scope.QueryAll(selector)
	if err != nil {
		return nil, false
	}
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			continue
		}
		t = strings.TrimSpace(t)
		if exact && t == text {
			return el, true
		}
		if !exact && strings.Contains(t, text) {
			return el, true
		}
	}
	return nil, false
}

// formatMoney renders a non-negative dollar amount with thousands separators.
func formatMoney(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		out.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(s[i : i+3])
	}
	return out.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

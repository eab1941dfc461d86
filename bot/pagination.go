package bot

import (
	"log"
	"strconv"
	"time"

	"housing-connect-bot/parser"
)

// TotalPages reads the "X / Y" pagination marker and returns Y. A grid
// without pagination UI is a single page.
func (b *Bot) TotalPages() int {
	el, ok, err := b.page.Query(paginationTextSelector)
	if err != nil || !ok {
		return 1
	}
	text, err := el.Text()
	if err != nil {
		return 1
	}
	log.Printf("Pagination text: %s", text)
	if total, ok := parser.TotalPages(text); ok {
		return total
	}
	return 1
}

// GoToPage clicks the page link for pageNum and waits for the grid to
// re-render. Client-side routing fires no load event, so the first card's
// image source serves as a change fingerprint: the click is considered
// settled once it changes. An unchanged fingerprint within the ceiling is
// reported as success with a warning, since adjacent pages can legitimately
// start with the same card image.
func (b *Bot) GoToPage(pageNum int) bool {
	oldSrc := b.firstCardFingerprint()

	link, ok := findByText(b.page, pageLinkSelector, strconv.Itoa(pageNum), true)
	if !ok {
		link, ok = findByText(b.page, pageLinkFallback, strconv.Itoa(pageNum), true)
	}
	if !ok {
		log.Printf("Error navigating to page %d: page link not found", pageNum)
		return false
	}

	if err := link.Click(); err != nil {
		log.Printf("Error navigating to page %d: %v", pageNum, err)
		return false
	}

	changed := awaitCondition(func() bool {
		return b.firstCardFingerprint() != oldSrc
	}, b.cfg.Timing.PageChangeCheck, b.cfg.Timing.PageChangeWait)

	if changed {
		// Small additional wait for full render.
		time.Sleep(b.cfg.Timing.PageChangeCheck)
		return true
	}

	log.Printf("  Warning: page %d content may not have changed", pageNum)
	return true
}

func (b *Bot) firstCardFingerprint() string {
	el, ok, err := b.page.Query(cardImageSelector)
	if err != nil || !ok {
		return ""
	}
	src, err := el.Attribute("src")
	if err != nil {
		return ""
	}
	return src
}

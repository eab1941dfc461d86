package bot

import (
	"fmt"
	"log"
	"strings"
	"time"

	"housing-connect-bot/browser"
	"housing-connect-bot/models"
	"housing-connect-bot/parser"
)

// ApplyByIndex runs the application workflow for the card at index on the
// current page of the listing grid: re-locate the card, check applied state,
// open the detail view, verify income eligibility, submit, confirm, and
// return to the grid. Requires a prior successful Login.
//
// Every terminal state produces exactly one outcome; nothing is thrown past
// this boundary.
func (b *Bot) ApplyByIndex(category models.Category, index int) models.ApplicationOutcome {
	outcome := models.ApplicationOutcome{Title: "Unknown", Eligible: true}

	if !b.onListingsView() {
		if err := b.NavigateToLotteries(category); err != nil {
			outcome.Message = fmt.Sprintf("Could not reach listings view: %v", err)
			return outcome
		}
	}

	// LOCATE_CARD: card identity is positional, the grid DOM is rebuilt on
	// every navigation.
	cards, err := b.page.QueryAll(cardSelector)
	if err != nil {
		outcome.Message = fmt.Sprintf("Could not query lottery cards: %v", err)
		return outcome
	}
	if index >= len(cards) {
		outcome.Message = fmt.Sprintf("Card index %d out of range", index)
		return outcome
	}
	card := cards[index]

	if titleEl, ok, _ := card.Query(cardTitleSelector); ok {
		if t, err := titleEl.Text(); err == nil && strings.TrimSpace(t) != "" {
			outcome.Title = strings.TrimSpace(t)
		}
	}
	log.Printf("Processing: %s", outcome.Title)

	// CHECK_CARD_APPLIED
	if b.cardShowsApplied(card) {
		outcome.AlreadyApplied = true
		outcome.Message = "Already applied"
		log.Println("  ⚠ Already applied (skipping)")
		return outcome
	}

	// OPEN_DETAIL: the View Details control only appears on hover.
	if err := card.Hover(); err != nil {
		log.Printf("  Hover failed: %v", err)
	}
	time.Sleep(b.cfg.Timing.HoverSettle)

	viewBtn, ok := findByText(card, "button", viewDetailsMarker, false)
	if !ok {
		outcome.Message = "Could not find View Details button"
		log.Printf("  ✗ %s", outcome.Message)
		return outcome
	}
	if err := viewBtn.Click(); err != nil {
		outcome.Message = fmt.Sprintf("Could not open detail view: %v", err)
		log.Printf("  ✗ %s", outcome.Message)
		return outcome
	}

	b.waitForDetail()

	// CHECK_DETAIL_APPLIED
	if b.detailShowsApplied() {
		outcome.AlreadyApplied = true
		outcome.Message = "Already applied"
		log.Println("  ⚠ Already applied (detail page)")
		return outcome
	}

	// CHECK_ELIGIBILITY: assumed eligible when the page lists no income
	// range (fails open).
	body, _ := b.page.BodyText()
	if min, max, ok := parser.IncomeRange(body); ok {
		if b.cfg.AnnualIncome < min || b.cfg.AnnualIncome > max {
			outcome.Eligible = false
			outcome.Message = fmt.Sprintf("Not eligible: $%s outside $%s - $%s",
				formatMoney(b.cfg.AnnualIncome), formatMoney(min), formatMoney(max))
			log.Printf("  ✗ %s", outcome.Message)
			return outcome
		}
		log.Printf("  ✓ Eligible: $%s within $%s - $%s",
			formatMoney(b.cfg.AnnualIncome), formatMoney(min), formatMoney(max))
	}

	// SUBMIT
	applyBtn, ok := b.findApplyNow()
	if !ok {
		outcome.Message = "Could not find Apply Now button"
		log.Printf("  ✗ %s", outcome.Message)
		return outcome
	}
	log.Println("  Clicking Apply Now...")
	if err := applyBtn.Click(); err != nil {
		outcome.Message = fmt.Sprintf("Could not click Apply Now: %v", err)
		log.Printf("  ✗ %s", outcome.Message)
		return outcome
	}
	time.Sleep(b.cfg.Timing.ApplySettle)

	b.confirmDialog()

	// CONFIRM
	if _, ok := b.appliedButton(); ok {
		outcome.Success = true
		outcome.Message = "Successfully applied!"
		log.Printf("  ✓ %s", outcome.Message)
	} else if b.onLoginPath() {
		outcome.Message = "Redirected to login - not logged in"
		log.Printf("  ⚠ %s", outcome.Message)
	} else {
		// The submission click completed but the UI state is ambiguous:
		// report success with a visible caveat rather than discarding it.
		outcome.Success = true
		outcome.Message = "Application submitted (unverified)"
		log.Printf("  ? %s", outcome.Message)
	}

	// RETURN_TO_LIST
	b.returnToList(category)
	return outcome
}

// waitForDetail waits for the detail page to show any readiness indicator:
// an Apply Now link, an Applied button, or the eligible-income text block.
// The bound is long because the portal rate-limits detail pages. On timeout
// the page is reloaded and the wait retried once; after that the workflow
// proceeds with whatever state exists.
func (b *Bot) waitForDetail() {
	log.Println("  Waiting for detail page to load...")
	time.Sleep(b.cfg.RandomActionDelay())

	if !awaitCondition(b.detailReady, b.cfg.Timing.PollInterval, b.cfg.Timing.DetailWait) {
		log.Println("  Warning: timeout waiting for detail page content, retrying...")
		if err := b.page.Reload(); err != nil {
			log.Printf("  Reload failed: %v", err)
		}
		time.Sleep(b.cfg.RandomActionDelay())
		if !awaitCondition(b.detailReady, b.cfg.Timing.PollInterval, b.cfg.Timing.DetailWait) {
			log.Println("  Still waiting, giving extra time...")
			time.Sleep(b.cfg.Timing.DetailGiveUp)
		}
	}

	// Extra settle time for SPA rendering.
	time.Sleep(b.cfg.RandomActionDelay())
}

func (b *Bot) detailReady() bool {
	if _, ok := b.findApplyNow(); ok {
		return true
	}
	if _, ok := b.appliedButton(); ok {
		return true
	}
	body, err := b.page.BodyText()
	return err == nil && strings.Contains(body, eligibleIncomeMarker)
}

// confirmDialog handles the optional confirmation dialog: click the
// agreement checkbox box itself (never the label text, which carries an
// outbound link), then the Submit control. Some listings submit without a
// dialog, so its absence is not an error.
func (b *Bot) confirmDialog() {
	checkbox, err := b.page.WaitFor(checkboxSelector, b.cfg.Timing.DialogWait)
	if err != nil {
		log.Println("  No confirmation dialog found")
		return
	}

	log.Println("  Clicking agreement checkbox...")
	if err := checkbox.Click(); err != nil {
		log.Printf("  Checkbox click failed: %v", err)
	}
	time.Sleep(b.cfg.Timing.HoverSettle)

	submit, ok := b.findSubmit()
	if !ok {
		log.Println("  Could not find Submit button")
		return
	}
	log.Println("  Clicking Submit...")
	if err := submit.Click(); err != nil {
		log.Printf("  Submit click failed: %v", err)
	}
	time.Sleep(b.cfg.Timing.SubmitSettle)
}

// findApplyNow tries the three Apply Now selector strategies in order, most
// to least specific. The order matters for reproducibility.
func (b *Bot) findApplyNow() (browser.Element, bool) {
	for _, sel := range []string{applyPrimarySelector, applySecondarySelector, applyAnySelector} {
		if el, ok := findByText(b.page, sel, applyNowMarker, false); ok {
			return el, true
		}
	}
	return nil, false
}

// findSubmit locates the dialog's Submit control, resolving a text-bearing
// span up to its clickable ancestor when no button matches directly.
func (b *Bot) findSubmit() (browser.Element, bool) {
	if btn, ok := findByText(b.page, "button", submitMarker, false); ok {
		return btn, true
	}
	span, ok := findByText(b.page, "span", submitMarker, false)
	if !ok {
		return nil, false
	}
	parent, err := span.Parent()
	if err != nil {
		return span, true
	}
	return parent, true
}

func (b *Bot) cardShowsApplied(card browser.Element) bool {
	el, ok, err := card.Query(cardAppliedSelector)
	if err != nil || !ok {
		return false
	}
	t, err := el.Text()
	return err == nil && strings.Contains(t, appliedMarker)
}

// appliedButton finds the grey Applied indicator button on the detail page.
func (b *Bot) appliedButton() (browser.Element, bool) {
	return findByText(b.page, cardAppliedSelector, appliedMarker, false)
}

// detailShowsApplied checks the detail page for any already-applied signal:
// the grey indicator, any button containing "Applied", or the body phrases
// the portal uses after a submission.
func (b *Bot) detailShowsApplied() bool {
	if _, ok := b.appliedButton(); ok {
		return true
	}
	if _, ok := findByText(b.page, "button", appliedMarker, false); ok {
		return true
	}
	body, err := b.page.BodyText()
	if err != nil {
		return false
	}
	return strings.Contains(body, "You have already applied") ||
		strings.Contains(body, "Application Submitted")
}

func (b *Bot) onLoginPath() bool {
	url, err := b.page.URL()
	if err != nil {
		return false
	}
	lower := strings.ToLower(url)
	return strings.Contains(lower, "login") || strings.Contains(lower, "id4/account")
}

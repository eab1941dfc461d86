package bot

import (
	"log"
	"strings"
	"time"

	"housing-connect-bot/browser"
)

// Login authenticates against the portal's external identity provider.
// The flow is best-effort by design: every failure mode returns false with
// a logged reason, nothing escapes this boundary.
//
// Success is declared iff the browser lands back under the application base
// path and is no longer on the identity-provider login path.
func (b *Bot) Login() bool {
	if b.cfg.Username == "" || b.cfg.Password == "" {
		log.Println("ERROR: USERNAME and PASSWORD must be set")
		return false
	}

	log.Println("Step 1: Navigating to main page...")
	if err := b.page.Navigate(b.cfg.BaseURL); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	time.Sleep(b.cfg.Timing.PageSettle)

	log.Println("Step 2: Looking for login link...")
	loginLink, ok := b.findLoginLink()
	if !ok {
		log.Println("  Could not find login link")
		return false
	}
	if err := loginLink.Click(); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	time.Sleep(b.cfg.Timing.PageSettle)
	if url, err := b.page.URL(); err == nil {
		log.Printf("  Redirected to: %s", truncate(url, 60))
	}

	log.Println("Step 3: Filling login form...")
	emailInput, err := b.page.WaitFor(emailInputSelector, b.cfg.Timing.LoginFieldWait)
	if err != nil {
		log.Println("  Could not find login form fields")
		return false
	}
	passwordInput, ok, err := b.page.Query(passwordInputSelector)
	if err != nil || !ok {
		log.Println("  Could not find login form fields")
		return false
	}

	if err := emailInput.Input(b.cfg.Username); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	time.Sleep(b.cfg.Timing.HoverSettle)
	if err := passwordInput.Input(b.cfg.Password); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	time.Sleep(b.cfg.Timing.HoverSettle)

	log.Println("Step 4: Submitting login...")
	if submit, ok := b.findLoginSubmit(); ok {
		if err := submit.Click(); err != nil {
			log.Printf("Login error: %v", err)
			return false
		}
	} else {
		// No explicit submit control: the form's implicit submit still fires.
		if err := passwordInput.PressEnter(); err != nil {
			log.Printf("Login error: %v", err)
			return false
		}
	}

	// Wait for the redirect back to the main site.
	time.Sleep(b.cfg.Timing.LoginSettle)

	url, err := b.page.URL()
	if err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	if strings.Contains(url, b.cfg.BaseURL) && !strings.Contains(url, loginPathMarker) {
		log.Println("✓ Login successful!")
		return true
	}
	log.Printf("✗ Login may have failed. Current URL: %s", truncate(url, 60))
	return false
}

func (b *Bot) findLoginLink() (browser.Element, bool) {
	for _, text := range []string{"Log In", "Login", "Sign In"} {
		if link, ok := findByText(b.page, "a", text, false); ok {
			return link, true
		}
	}
	return nil, false
}

func (b *Bot) findLoginSubmit() (browser.Element, bool) {
	if el, ok, err := b.page.Query(submitTypedSelector); err == nil && ok {
		return el, true
	}
	for _, text := range []string{"Log In", "Login"} {
		if el, ok := findByText(b.page, "button", text, false); ok {
			return el, true
		}
	}
	return nil, false
}

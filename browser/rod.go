package browser

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Browser owns the Chrome process and its single automation page.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
}

// Options controls the Chrome launch.
type Options struct {
	Headless    bool
	UserDataDir string
}

// Launch starts Chrome and opens the single page the bot drives. A system
// Chrome/Chromium is preferred when found; rod downloads one otherwise.
func Launch(opts Options) (*Browser, error) {
	if opts.UserDataDir != "" {
		if err := os.MkdirAll(opts.UserDataDir, 0755); err != nil {
			log.Printf("Warning: failed to create browser data directory %s: %v\n", opts.UserDataDir, err)
			opts.UserDataDir = ""
		}
	}

	l := launcher.New().
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("mute-audio").
		Set("window-size", "1280,800")
	if opts.UserDataDir != "" {
		l = l.UserDataDir(opts.UserDataDir)
	}

	for _, path := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	log.Println("Browser started successfully")
	return &Browser{browser: b, page: page}, nil
}

// Page returns the single automation page.
func (b *Browser) Page() Page {
	return &rodPage{page: b.page}
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	if b.browser != nil {
		return b.browser.Close()
	}
	return nil
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	p.page.WaitLoad()
	return nil
}

func (p *rodPage) Reload() error {
	if err := p.page.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	p.page.WaitLoad()
	return nil
}

func (p *rodPage) URL() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", fmt.Errorf("read page url: %w", err)
	}
	return info.URL, nil
}

func (p *rodPage) Query(selector string) (Element, bool, error) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return &rodElement{el: el}, true, nil
}

func (p *rodPage) QueryAll(selector string) ([]Element, error) {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query all %q: %w", selector, err)
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

func (p *rodPage) WaitFor(selector string, timeout time.Duration) (Element, error) {
	el, err := p.page.Timeout(timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("wait for %q: %w", selector, err)
	}
	return &rodElement{el: el}, nil
}

func (p *rodPage) BodyText() (string, error) {
	has, el, err := p.page.Has("body")
	if err != nil || !has {
		return "", err
	}
	return el.Text()
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func (e *rodElement) HTML() (string, error) {
	return e.el.HTML()
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Hover() error {
	return e.el.Hover()
}

func (e *rodElement) Input(text string) error {
	return e.el.Input(text)
}

func (e *rodElement) PressEnter() error {
	return e.el.Type(input.Enter)
}

func (e *rodElement) Parent() (Element, error) {
	parent, err := e.el.Parent()
	if err != nil {
		return nil, fmt.Errorf("parent element: %w", err)
	}
	return &rodElement{el: parent}, nil
}

func (e *rodElement) Query(selector string) (Element, bool, error) {
	has, el, err := e.el.Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return &rodElement{el: el}, true, nil
}

func (e *rodElement) QueryAll(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query all %q: %w", selector, err)
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

// Package browser is the boundary to the underlying browser automation
// driver. The bot only sees Page and Element; the production implementation
// drives Chrome through rod, tests substitute a fake.
package browser

import "time"

// Page is one browser tab on the portal. Query performs an immediate lookup
// and reports absence instead of waiting; WaitFor blocks until the selector
// appears or the timeout elapses.
type Page interface {
	Navigate(url string) error
	Reload() error
	URL() (string, error)
	Query(selector string) (Element, bool, error)
	QueryAll(selector string) ([]Element, error)
	WaitFor(selector string, timeout time.Duration) (Element, error)
	BodyText() (string, error)
}

// Element is a live DOM element. Query/QueryAll scope lookups to the
// element's subtree.
type Element interface {
	Text() (string, error)
	Attribute(name string) (string, error)
	HTML() (string, error)
	Click() error
	Hover() error
	Input(text string) error
	PressEnter() error
	Parent() (Element, error)
	Query(selector string) (Element, bool, error)
	QueryAll(selector string) ([]Element, error)
}

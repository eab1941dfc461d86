package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"housing-connect-bot/browser"
	"housing-connect-bot/config"
)

// fakePage implements browser.Page over a goquery document. Clickable
// elements carry a data-action attribute; clicking one runs the registered
// action, which typically swaps the page content, simulating the SPA.
type fakePage struct {
	url          string
	doc          *goquery.Document
	actions      map[string]func(*fakePage)
	onNavigate   func(*fakePage, string)
	onReload     func(*fakePage)
	inputs       map[string]string
	reloads      int
	pressedEnter bool
}

func newFakePage(html string) *fakePage {
	p := &fakePage{
		actions: make(map[string]func(*fakePage)),
		inputs:  make(map[string]string),
	}
	p.setHTML(html)
	return p
}

func (p *fakePage) setHTML(html string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(err)
	}
	p.doc = doc
}

func (p *fakePage) Navigate(url string) error {
	p.url = url
	if p.onNavigate != nil {
		p.onNavigate(p, url)
	}
	return nil
}

func (p *fakePage) Reload() error {
	p.reloads++
	if p.onReload != nil {
		p.onReload(p)
	}
	return nil
}

func (p *fakePage) URL() (string, error) {
	return p.url, nil
}

func (p *fakePage) Query(selector string) (browser.Element, bool, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return &fakeElement{page: p, sel: sel}, true, nil
}

func (p *fakePage) QueryAll(selector string) ([]browser.Element, error) {
	var out []browser.Element
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &fakeElement{page: p, sel: s})
	})
	return out, nil
}

func (p *fakePage) WaitFor(selector string, _ time.Duration) (browser.Element, error) {
	el, ok, err := p.Query(selector)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("element %q not found", selector)
	}
	return el, nil
}

func (p *fakePage) BodyText() (string, error) {
	return p.doc.Find("body").Text(), nil
}

type fakeElement struct {
	page *fakePage
	sel  *goquery.Selection
}

func (e *fakeElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e *fakeElement) HTML() (string, error) {
	return goquery.OuterHtml(e.sel)
}

func (e *fakeElement) Click() error {
	if action := e.sel.AttrOr("data-action", ""); action != "" {
		if fn, ok := e.page.actions[action]; ok {
			fn(e.page)
		}
	}
	return nil
}

func (e *fakeElement) Hover() error { return nil }

func (e *fakeElement) Input(text string) error {
	key := e.sel.AttrOr("name", e.sel.AttrOr("type", ""))
	e.page.inputs[key] = text
	return nil
}

func (e *fakeElement) PressEnter() error {
	e.page.pressedEnter = true
	return nil
}

func (e *fakeElement) Parent() (browser.Element, error) {
	return &fakeElement{page: e.page, sel: e.sel.Parent()}, nil
}

func (e *fakeElement) Query(selector string) (browser.Element, bool, error) {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return &fakeElement{page: e.page, sel: sel}, true, nil
}

func (e *fakeElement) QueryAll(selector string) ([]browser.Element, error) {
	var out []browser.Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &fakeElement{page: e.page, sel: s})
	})
	return out, nil
}

// testConfig returns a Config with millisecond wait bounds so tests never
// sleep for real.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.BaseURL = "https://housing.example/PublicWeb"
	cfg.Username = "user@example.com"
	cfg.Password = "hunter2"
	cfg.AnnualIncome = 60000
	ms := time.Millisecond
	cfg.Timing = config.Timing{
		PageSettle:      ms,
		TabSettle:       ms,
		HoverSettle:     ms,
		ScanSettle:      ms,
		CardWait:        ms,
		CardRetryWait:   ms,
		DetailWait:      5 * ms,
		DetailGiveUp:    ms,
		LoginFieldWait:  ms,
		LoginSettle:     ms,
		ApplySettle:     ms,
		DialogWait:      ms,
		SubmitSettle:    ms,
		PollInterval:    ms,
		PageChangeWait:  5 * ms,
		PageChangeCheck: ms,
		ActionDelayMin:  ms,
		ActionDelayMax:  ms,
	}
	return cfg
}

// Fixture builders mirroring the portal DOM.

func cardFixture(id, title string, applied bool) string {
	var b strings.Builder
	b.WriteString(`<app-lottery-grid-card>`)
	if id != "" {
		b.WriteString(`<img class="card-image" src="https://cdn.example/photos/` + id + `.jpeg">`)
	}
	b.WriteString(`<div class="title title-h3">` + title + `</div>`)
	b.WriteString(`<div class="location">Brooklyn, NY</div>`)
	if applied {
		b.WriteString(`<button class="btn-grey-90">Applied</button>`)
	} else {
		b.WriteString(`<button class="btn-view" data-action="view-` + id + `">View Details</button>`)
	}
	b.WriteString(`</app-lottery-grid-card>`)
	return b.String()
}

func listFixture(pagination string, cards ...string) string {
	var b strings.Builder
	b.WriteString(`<div><span class="font-lg">Rentals</span><span class="font-lg">Sales</span>`)
	for _, c := range cards {
		b.WriteString(c)
	}
	if pagination != "" {
		b.WriteString(`<div class="small-screen">` + pagination + `</div>`)
		b.WriteString(`<ul class="ngx-pagination">` +
			`<li><a data-action="goto-1">1</a></li>` +
			`<li><a data-action="goto-2">2</a></li>` +
			`</ul>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func detailFixture(id, incomeRange string) string {
	var b strings.Builder
	b.WriteString(`<div><h1>Lottery ` + id + `</h1>`)
	if incomeRange != "" {
		b.WriteString(`<div>Eligible Income: ` + incomeRange + `</div>`)
	}
	b.WriteString(`<a class="btn btn-primary" data-action="apply-` + id + `">Apply Now</a></div>`)
	return b.String()
}

func dialogFixture(id string) string {
	return `<div><div class="mat-checkbox-inner-container"></div>` +
		`<button data-action="submit-` + id + `">Submit</button></div>`
}

func appliedFixture() string {
	return `<div><button class="btn-grey-90">Applied</button></div>`
}

// wireListing registers the view, apply, and submit actions for one lottery
// so that a full application round-trip works against the fake.
func wireListing(p *fakePage, cfg config.Config, id, incomeRange string) {
	p.actions["view-"+id] = func(p *fakePage) {
		p.url = cfg.BaseURL + "/lottery-details/" + id
		p.setHTML(detailFixture(id, incomeRange))
	}
	p.actions["apply-"+id] = func(p *fakePage) {
		p.setHTML(dialogFixture(id))
	}
	p.actions["submit-"+id] = func(p *fakePage) {
		p.setHTML(appliedFixture())
	}
}

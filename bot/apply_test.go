package bot

import (
	"strings"
	"testing"

	"housing-connect-bot/models"
)

func TestApplyByIndexOutOfRange(t *testing.T) {
	cfg := testConfig()
	page := newFakePage(listFixture("", cardFixture("101", "Alpha Tower", false)))
	page.url = cfg.LotteriesURL()

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 5)

	if outcome.Success {
		t.Error("Success = true, want false")
	}
	if outcome.AlreadyApplied {
		t.Error("AlreadyApplied = true, want false")
	}
	if !outcome.Eligible {
		t.Error("Eligible = false, want true")
	}
	if !strings.Contains(outcome.Message, "5") || !strings.Contains(outcome.Message, "out of range") {
		t.Errorf("Message = %q, want it to name index 5 as out of range", outcome.Message)
	}
}

func TestApplyByIndexAlreadyAppliedCard(t *testing.T) {
	cfg := testConfig()
	page := newFakePage(listFixture("", cardFixture("101", "Alpha Tower", true)))
	page.url = cfg.LotteriesURL()

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if !outcome.AlreadyApplied {
		t.Error("AlreadyApplied = false, want true")
	}
	if outcome.Success {
		t.Error("Success = true, want false")
	}
	if outcome.Title != "Alpha Tower" {
		t.Errorf("Title = %q, want %q", outcome.Title, "Alpha Tower")
	}
}

func TestApplyByIndexNotEligible(t *testing.T) {
	cfg := testConfig()
	cfg.AnnualIncome = 20000

	page := newFakePage(listFixture("", cardFixture("101", "Alpha Tower", false)))
	page.url = cfg.LotteriesURL()
	wireListing(page, cfg, "101", "$32,195 - $226,800")

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if outcome.Eligible {
		t.Error("Eligible = true, want false")
	}
	if outcome.Success {
		t.Error("Success = true, want false")
	}
	for _, amount := range []string{"$20,000", "$32,195", "$226,800"} {
		if !strings.Contains(outcome.Message, amount) {
			t.Errorf("Message = %q, want it to contain %s", outcome.Message, amount)
		}
	}
}

func TestApplyByIndexIncomeBoundsAreInclusive(t *testing.T) {
	cfg := testConfig()
	cfg.AnnualIncome = 100000

	listHTML := listFixture("", cardFixture("101", "Alpha Tower", false))
	page := newFakePage(listHTML)
	page.url = cfg.LotteriesURL()
	page.onNavigate = func(p *fakePage, url string) {
		if strings.Contains(url, "search-lotteries") {
			p.setHTML(listHTML)
		}
	}
	wireListing(page, cfg, "101", "$30,000 - $100,000")

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if !outcome.Eligible {
		t.Errorf("Eligible = false at the upper bound, message %q", outcome.Message)
	}
	if !outcome.Success {
		t.Errorf("Success = false, message %q", outcome.Message)
	}
}

func TestApplyByIndexFullRoundTrip(t *testing.T) {
	cfg := testConfig()

	listHTML := listFixture("", cardFixture("101", "Alpha Tower", false))
	page := newFakePage("")
	page.onNavigate = func(p *fakePage, url string) {
		if strings.Contains(url, "search-lotteries") {
			p.setHTML(listHTML)
		}
	}
	wireListing(page, cfg, "101", "$32,195 - $226,800")

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if !outcome.Success {
		t.Fatalf("Success = false, message %q", outcome.Message)
	}
	if outcome.Message != "Successfully applied!" {
		t.Errorf("Message = %q, want confirmed success", outcome.Message)
	}
	if outcome.Title != "Alpha Tower" {
		t.Errorf("Title = %q, want %q", outcome.Title, "Alpha Tower")
	}

	// The workflow must land back on the listing grid.
	if url, _ := page.URL(); !strings.Contains(url, "search-lotteries") {
		t.Errorf("final URL = %q, want the listings view", url)
	}
}

func TestApplyByIndexDetailShowsAlreadyApplied(t *testing.T) {
	cfg := testConfig()

	page := newFakePage(listFixture("", cardFixture("101", "Alpha Tower", false)))
	page.url = cfg.LotteriesURL()
	page.actions["view-101"] = func(p *fakePage) {
		p.url = cfg.BaseURL + "/lottery-details/101"
		p.setHTML(`<div><p>You have already applied to this lottery.</p>` +
			`<div>Eligible Income: $30,000 - $100,000</div></div>`)
	}

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if !outcome.AlreadyApplied {
		t.Errorf("AlreadyApplied = false, message %q", outcome.Message)
	}
	if outcome.Success {
		t.Error("Success = true, want false")
	}
}

func TestApplyByIndexMissingApplyButton(t *testing.T) {
	cfg := testConfig()

	page := newFakePage(listFixture("", cardFixture("101", "Alpha Tower", false)))
	page.url = cfg.LotteriesURL()
	page.actions["view-101"] = func(p *fakePage) {
		p.url = cfg.BaseURL + "/lottery-details/101"
		p.setHTML(`<div><div>Eligible Income: $30,000 - $100,000</div></div>`)
	}

	b := New(cfg, page)
	outcome := b.ApplyByIndex(models.CategoryRental, 0)

	if outcome.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(outcome.Message, "Apply Now") {
		t.Errorf("Message = %q, want it to name the missing control", outcome.Message)
	}
}

package models

// Category is the lottery listing category on the portal.
type Category string

const (
	CategoryRental Category = "rental"
	CategorySale   Category = "sale"
)

// TabText returns the visible text of the listing-grid tab for the category.
func (c Category) TabText() string {
	if c == CategorySale {
		return "Sales"
	}
	return "Rentals"
}

// Listing holds everything observed about one lottery card or detail page.
// A Listing is built once by the parser and never mutated afterwards.
type Listing struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         Category `json:"-"`
	Location         *string  `json:"location"`
	UnitsAvailable   *int     `json:"units_available"`
	DaysUntilClosing *int     `json:"days_until_closing"`
	MinIncome        *int     `json:"min_income,omitempty"`
	MaxIncome        *int     `json:"max_income,omitempty"`
	IsApplied        bool     `json:"is_applied"`
	URL              string   `json:"url"`
}

// DetailURL derives the canonical detail-page URL for a lottery id.
func DetailURL(baseURL, id string) string {
	return baseURL + "/lottery-details/" + id
}

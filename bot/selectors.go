package bot

// CSS selectors and text markers for the Housing Connect portal.
// Centralising them makes future layout updates trivial.
const (
	cardSelector        = "app-lottery-grid-card"
	cardImageSelector   = "app-lottery-grid-card img.card-image"
	cardTitleSelector   = ".title.title-h3"
	cardAppliedSelector = "button.btn-grey-90"

	// Category tabs on the listing grid
	tabSelector      = "span.font-lg"
	looseTabSelector = "span, a, button"

	// Pagination
	paginationTextSelector = ".small-screen"
	pageLinkSelector       = ".ngx-pagination li a"
	pageLinkFallback       = ".ngx-pagination a"

	// Login form on the external identity provider
	emailInputSelector    = `input[type="email"], input[type="text"], input[name="email"], input#email`
	passwordInputSelector = `input[type="password"]`
	submitTypedSelector   = `button[type="submit"], input[type="submit"]`

	// Detail page / confirmation dialog
	applyPrimarySelector   = "a.btn.btn-primary"
	applySecondarySelector = "a.btn-primary"
	applyAnySelector       = "a"
	checkboxSelector       = ".mat-checkbox-inner-container"

	// Text markers
	appliedMarker        = "Applied"
	viewDetailsMarker    = "View Details"
	applyNowMarker       = "Apply Now"
	submitMarker         = "Submit"
	eligibleIncomeMarker = "Eligible Income"

	// URL fragments
	lotteriesPathMarker = "search-lotteries"
	loginPathMarker     = "id4/account/login"
)

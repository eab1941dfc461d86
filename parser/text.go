package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lotteryIDRe  = regexp.MustCompile(`/photos/(\d+)\.`)
	totalPagesRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	unitsRe      = regexp.MustCompile(`(\d+)\s*Unit`)
	daysRe       = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	incomeRe     = regexp.MustCompile(`(?i)Eligible Income:?\s*\$?([\d,]+)\s*-\s*\$?([\d,]+)`)
)

// LotteryID extracts the numeric lottery id from a card image source URL,
// e.g. "https://.../MailTemplates/photos/34926806.png" -> "34926806".
// Returns "" when the URL carries no id.
func LotteryID(imgSrc string) string {
	m := lotteryIDRe.FindStringSubmatch(imgSrc)
	if m == nil {
		return ""
	}
	return m[1]
}

// TotalPages parses pagination text like "1 / 4" and returns the total page
// count. Returns false when the text contains no such marker.
func TotalPages(text string) (int, bool) {
	m := totalPagesRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Units parses "X Unit(s) Available"-style text into a unit count.
func Units(text string) (int, bool) {
	m := unitsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DaysUntilClosing parses "X day(s)"-style text, case-insensitive.
func DaysUntilClosing(text string) (int, bool) {
	m := daysRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IncomeRange parses an eligible income range from detail-page body text,
// e.g. "Eligible Income: $32,195 - $226,800" -> (32195, 226800, true).
// Thousands separators are stripped. Returns false when the phrase is
// absent from the text.
func IncomeRange(text string) (min, max int, ok bool) {
	m := incomeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	min, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, 0, false
	}
	max, err = strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}

package bot

import (
	"fmt"
	"strings"

	"housing-connect-bot/models"
)

// Summary partitions application outcomes into their terminal buckets.
// Failed holds outcomes that were eligible and not already applied but did
// not succeed.
type Summary struct {
	Applied        []models.ApplicationOutcome
	AlreadyApplied []models.ApplicationOutcome
	NotEligible    []models.ApplicationOutcome
	Failed         []models.ApplicationOutcome
}

// BuildSummary buckets outcomes in their original order.
func BuildSummary(outcomes []models.ApplicationOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch {
		case o.Success:
			s.Applied = append(s.Applied, o)
		case o.AlreadyApplied:
			s.AlreadyApplied = append(s.AlreadyApplied, o)
		case !o.Eligible:
			s.NotEligible = append(s.NotEligible, o)
		default:
			s.Failed = append(s.Failed, o)
		}
	}
	return s
}

// Total is the number of outcomes across all buckets.
func (s Summary) Total() int {
	return len(s.Applied) + len(s.AlreadyApplied) + len(s.NotEligible) + len(s.Failed)
}

// Format renders the categorized human-readable summary.
func (s Summary) Format() string {
	var out strings.Builder

	fmt.Fprintf(&out, "✓ Successfully Applied (%d):\n", len(s.Applied))
	for _, o := range s.Applied {
		fmt.Fprintf(&out, "    - %s\n", o.Title)
	}

	fmt.Fprintf(&out, "\n⚠ Already Applied (%d):\n", len(s.AlreadyApplied))
	for _, o := range s.AlreadyApplied {
		fmt.Fprintf(&out, "    - %s\n", o.Title)
	}

	fmt.Fprintf(&out, "\n✗ Not Eligible (%d):\n", len(s.NotEligible))
	for _, o := range s.NotEligible {
		fmt.Fprintf(&out, "    - %s: %s\n", o.Title, o.Message)
	}

	if len(s.Failed) > 0 {
		fmt.Fprintf(&out, "\n? Failed (%d):\n", len(s.Failed))
		for _, o := range s.Failed {
			fmt.Fprintf(&out, "    - %s: %s\n", o.Title, o.Message)
		}
	}

	fmt.Fprintf(&out, "\nTOTAL: %d processed\n", s.Total())
	fmt.Fprintf(&out, "  - Applied: %d\n", len(s.Applied))
	fmt.Fprintf(&out, "  - Already Applied: %d\n", len(s.AlreadyApplied))
	fmt.Fprintf(&out, "  - Not Eligible: %d\n", len(s.NotEligible))
	fmt.Fprintf(&out, "  - Failed: %d\n", len(s.Failed))

	return out.String()
}

package domain

import "fmt"

// Band is the severity classification applied wherever a rating is displayed
// or thresholded. Thresholds are fixed; keep them in sync with BandOf.
type Band string

const (
	BandExceptional  Band = "Exceptional"
	BandRecommended  Band = "Recommended"
	BandAverage      Band = "Average"
	BandBelowAverage Band = "Below Average"
	BandPoor         Band = "Poor"
)

// BandOf maps a 0.0–5.0 rating onto the five-level banding.
func BandOf(rating float64) Band {
	switch {
	case rating >= 4.5:
		return BandExceptional
	case rating >= 4.0:
		return BandRecommended
	case rating >= 3.0:
		return BandAverage
	case rating >= 2.0:
		return BandBelowAverage
	default:
		return BandPoor
	}
}

// Color returns the color token rendered alongside the band.
func (b Band) Color() string {
	switch b {
	case BandExceptional:
		return "green"
	case BandRecommended:
		return "blue"
	case BandAverage:
		return "yellow"
	case BandBelowAverage:
		return "orange"
	default:
		return "red"
	}
}

// FormatPrice renders a price the way the catalog displays it. Zero means free.
func FormatPrice(price float64) string {
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%g", price)
}

package domain

import "testing"

func TestBandOf(t *testing.T) {
	cases := []struct {
		rating float64
		want   Band
	}{
		{5.0, BandExceptional},
		{4.5, BandExceptional},
		{4.4, BandRecommended},
		{4.0, BandRecommended},
		{3.9, BandAverage},
		{3.0, BandAverage},
		{2.9, BandBelowAverage},
		{2.0, BandBelowAverage},
		{1.9, BandPoor},
		{0, BandPoor},
	}
	for _, tc := range cases {
		if got := BandOf(tc.rating); got != tc.want {
			t.Fatalf("BandOf(%v) = %v, want %v", tc.rating, got, tc.want)
		}
	}
}

func TestBandColorsAreDistinct(t *testing.T) {
	bands := []Band{BandExceptional, BandRecommended, BandAverage, BandBelowAverage, BandPoor}
	seen := make(map[string]Band)
	for _, b := range bands {
		c := b.Color()
		if prev, ok := seen[c]; ok {
			t.Fatalf("bands %v and %v share color %q", prev, b, c)
		}
		seen[c] = b
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(0); got != "Free" {
		t.Fatalf("FormatPrice(0) = %q", got)
	}
	if got := FormatPrice(19.99); got != "$19.99" {
		t.Fatalf("FormatPrice(19.99) = %q", got)
	}
}

package utils

import (
	"math"
	"testing"
)

func TestFormatFixed(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{25, "25.0"},
		{33.333333, "33.3"},
		{66.66666, "66.7"},
		{math.NaN(), "0.0"},
		{math.Inf(1), "0.0"},
	}
	for _, tc := range cases {
		if got := FormatFixed(tc.in, 1); got != tc.want {
			t.Fatalf("FormatFixed(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(12.345, 1); got != 12.3 {
		t.Fatalf("RoundTo(12.345, 1) = %v", got)
	}
	if got := RoundTo(-33.35, 1); got != -33.4 {
		t.Fatalf("RoundTo(-33.35, 1) = %v", got)
	}
	if got := RoundTo(math.NaN(), 1); got != 0 {
		t.Fatalf("RoundTo(NaN) = %v", got)
	}
}

func TestPercent_ZeroWhole(t *testing.T) {
	if got := Percent(5, 0); got != 0 {
		t.Fatalf("Percent(5, 0) = %v", got)
	}
	if got := Percent(1, 4); got != 25 {
		t.Fatalf("Percent(1, 4) = %v", got)
	}
}

package domain

import "testing"

func TestCoerceCompleted(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{"no", false},
		{"true", false},
		{"", false},
		{float64(1), true},
		{float64(0), false},
		{float64(2), false},
		{1, true},
		{0, false},
		{nil, false},
		{[]string{"yes"}, false},
	}

	for _, tc := range cases {
		if got := CoerceCompleted(tc.in); got != tc.want {
			t.Fatalf("CoerceCompleted(%#v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Fatalf("expected %q to be valid", p)
		}
	}
	for _, p := range []Priority{"", "urgent", "LOW", "critical"} {
		if p.Valid() {
			t.Fatalf("expected %q to be invalid", p)
		}
	}
}

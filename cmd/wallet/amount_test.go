package main

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"7", 700, true},
		{"0.05", 5, true},
		{".50", 50, true},
		{" 3.1 ", 310, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"1.234", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("parseAmount(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseAmount(%q) succeeded with %d, want error", tc.in, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount(1234); got != "12.34" {
		t.Errorf("formatAmount(1234) = %q", got)
	}
	if got := formatAmount(5); got != "0.05" {
		t.Errorf("formatAmount(5) = %q", got)
	}
	if got := formatAmount(-700); got != "-7.00" {
		t.Errorf("formatAmount(-700) = %q", got)
	}
}

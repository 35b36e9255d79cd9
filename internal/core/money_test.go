package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

// Parsing then displaying must preserve the amount: cents == round(in*100)
// and the displayed value is cents/100.
func TestAmountRoundTrip(t *testing.T) {
	cases := []struct {
		in      string
		cents   int64
		dollars float64
	}{
		{"15", 1500, 15},
		{"666.66", 66666, 666.66},
		{"0.01", 1, 0.01},
	}
	for _, tc := range cases {
		cents, err := ParseDecimalToCents(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if cents != tc.cents {
			t.Fatalf("%q: cents=%d, want %d", tc.in, cents, tc.cents)
		}
		if got := (Money{Cents: cents}).Dollars(); got != tc.dollars {
			t.Fatalf("%q: dollars=%v, want %v", tc.in, got, tc.dollars)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123, "$1.23"},
		{100000, "$1,000.00"},
		{123456, "$1,234.56"},
		{123456789, "$1,234,567.89"},
		{-4950, "-$49.50"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.cents); got != tc.want {
			t.Fatalf("FormatCurrency(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

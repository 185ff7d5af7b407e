package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 1, true},
		{"1200", 1200, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"+5", 0, false},
		{"12.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseMajorAmount(t *testing.T) {
	cases := []struct {
		in       string
		currency string
		out      int64
		ok       bool
	}{
		{"12.34", "EUR", 1234, true},
		{"12,34", "EUR", 1234, true},
		{"1", "EUR", 100, true},
		{"0.01", "USD", 1, true},
		{"1500", "JPY", 1500, true},
		{"12.345", "EUR", 0, false},
		{"1.5", "JPY", 0, false},
		{"0", "EUR", 0, false},
		{"-1", "EUR", 0, false},
		{"abc", "EUR", 0, false},
		{"1", "XXX-unknown", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMajorAmount(tc.in, tc.currency)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q %s expected %d, got %d (err=%v)", tc.in, tc.currency, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q %s expected error", tc.in, tc.currency)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 123456, Currency: "USD"}).String(); got != "$1,234.56" {
		t.Fatalf("unexpected USD display %q", got)
	}
	if got := (Money{Cents: 1200}).String(); got != "1200" {
		t.Fatalf("unexpected raw display %q", got)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

package main

import (
	"testing"
)

func TestCanonicalize_Normalization(t *testing.T) {
	canon := NewCanonicalizer(nil)
	tests := []struct {
		raw  string
		want string
	}{
		{"nvda", "NVDA"},
		{"  NVDA  ", "NVDA"},
		{" vgt\t", "VGT"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := canon.Canonicalize(tt.raw); got != tt.want {
			t.Errorf("Canonicalize(%q): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestCanonicalize_Aliases(t *testing.T) {
	canon := NewCanonicalizer(map[string]string{
		"fb":     "META",
		"VUSA.L": "vu",
	})
	tests := []struct {
		raw  string
		want string
	}{
		{"FB", "META"},
		{"fb", "META"},
		{" fb ", "META"},
		{"vusa.l", "VU"},
		{"META", "META"},
		{"NVDA", "NVDA"},
	}
	for _, tt := range tests {
		if got := canon.Canonicalize(tt.raw); got != tt.want {
			t.Errorf("Canonicalize(%q): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	canon := NewCanonicalizer(map[string]string{
		"FB": "META",
		// A chained table: A resolves through B.
		"A": "B",
		"B": "C",
	})
	for _, raw := range []string{"fb", "META", " a ", "B", "C", "nvda", ""} {
		once := canon.Canonicalize(raw)
		twice := canon.Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize(%q) not idempotent: %q then %q", raw, once, twice)
		}
	}
	if got := canon.Canonicalize("A"); got != "C" {
		t.Errorf("chained alias should flatten to C, got %q", got)
	}
}

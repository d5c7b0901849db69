// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import "testing"

// latin1Misread simulates the upstream defect: each UTF-8 byte of s becomes
// one code point, as if the bytes had been decoded as Latin-1.
func latin1Misread(s string) string {
	b := []byte(s)
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func TestRepairRecoversDoubleEncoding(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"cyrillic", "Привет, мир"},
		{"accented latin", "café naïve"},
		{"cjk", "会議の記録"},
		{"mixed", "meeting — Привет"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mangled := latin1Misread(tt.text)
			if mangled == tt.text {
				t.Fatalf("test input %q did not mangle", tt.text)
			}
			if got := Repair(mangled); got != tt.text {
				t.Errorf("Repair(%q) = %q, want %q", mangled, got, tt.text)
			}
		})
	}
}

func TestRepairLeavesCleanTextAlone(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ascii", "plain notes about the meeting"},
		{"empty", ""},
		{"already valid cyrillic", "Привет"},
		{"latin1 punctuation", "a±b"},
		{"emoji", "done ✅"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repair(tt.text); got != tt.text {
				t.Errorf("Repair(%q) = %q, want unchanged", tt.text, got)
			}
		})
	}
}

func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"Привет",
		latin1Misread("Привет"),
		"café",
	}
	for _, in := range inputs {
		once := Repair(in)
		twice := Repair(once)
		if once != twice {
			t.Errorf("Repair not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestRepairRejectsNullBytes(t *testing.T) {
	// A mangled string whose round-trip would contain NUL stays unchanged.
	in := latin1Misread("a\x00b")
	if got := Repair(in); got != in {
		t.Errorf("Repair(%q) = %q, want unchanged", in, got)
	}
}

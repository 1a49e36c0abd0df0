package vcd

import (
	"errors"
	"testing"
)

func TestParseTimescale(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1 us", "1 us"},
		{"us", "1 us"},
		{"100ps", "100 ps"},
		{"  10 ns ", "10 ns"},
		{"s", "1 s"},
		{"100 fs", "100 fs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := ParseTimescale(tt.in)
			if err != nil {
				t.Fatalf("ParseTimescale(%q) failed: %v", tt.in, err)
			}
			if ts.String() != tt.expected {
				t.Errorf("ParseTimescale(%q) = %q, want %q", tt.in, ts, tt.expected)
			}
		})
	}
}

func TestParseTimescaleInvalid(t *testing.T) {
	tests := []string{
		"2 us",
		"1 Gs",
		"",
		"  ",
		"100",
		"1 us extra",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseTimescale(in); !errors.Is(err, ErrTimescale) {
				t.Errorf("ParseTimescale(%q) = %v, want ErrTimescale", in, err)
			}
		})
	}
}

func TestNewTimescale(t *testing.T) {
	ts, err := NewTimescale(10, "fs")
	if err != nil {
		t.Fatalf("NewTimescale(10, fs) failed: %v", err)
	}
	if ts.String() != "10 fs" {
		t.Errorf("String() = %q, want %q", ts, "10 fs")
	}

	if _, err := NewTimescale(2, "us"); !errors.Is(err, ErrTimescale) {
		t.Errorf("magnitude 2 accepted: %v", err)
	}
	if _, err := NewTimescale(1, "day"); !errors.Is(err, ErrTimescale) {
		t.Errorf("unit day accepted: %v", err)
	}
}

package domain

import (
	"encoding/json"
	"testing"
)

func TestCentsString(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{999, "9.99"},
		{1000, "10.00"},
		{123456, "1234.56"},
		{-999, "-9.99"},
	}

	for _, tt := range tests {
		if got := tt.cents.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{"9.99", 999, false},
		{"10", 1000, false},
		{"0.5", 50, false},
		{"  12.50 ", 1250, false},
		{"-3.25", -325, false},
		{".99", 99, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.999", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCents(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCents(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCentsJSON(t *testing.T) {
	out, err := json.Marshal(Cents(1999))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"19.99"` {
		t.Errorf("marshal = %s, want %q", out, `"19.99"`)
	}

	var c Cents
	if err := json.Unmarshal([]byte(`"4.50"`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c != 450 {
		t.Errorf("unmarshal = %d, want 450", c)
	}

	// Bare numbers are accepted too.
	if err := json.Unmarshal([]byte(`7`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c != 700 {
		t.Errorf("unmarshal = %d, want 700", c)
	}
}

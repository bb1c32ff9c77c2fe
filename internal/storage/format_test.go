package storage

import "testing"

func TestFormatMs(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "0.000 s"},
		{7, "0.007 s"},
		{12345, "12.345 s"},
		{60000, "60.000 s"},
	}
	for _, tt := range tests {
		if got := FormatMs(tt.ms); got != tt.expected {
			t.Errorf("FormatMs(%d) = %q, expected %q", tt.ms, got, tt.expected)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1250); got != "+1.250 s" {
		t.Errorf("FormatDelta(1250) = %q", got)
	}
	if got := FormatDelta(-500); got != "-0.500 s" {
		t.Errorf("FormatDelta(-500) = %q", got)
	}
}

package cycle

import (
	"testing"
	"time"
)

func TestCurrent(t *testing.T) {
	now := time.Date(2026, time.February, 10, 15, 4, 5, 0, time.UTC)
	if got := Current(now); got != "2026-02" {
		t.Errorf("Current() = %q, want 2026-02", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"2026-01", true},
		{"2024-12", true},
		{"2026-13", false},
		{"2026-1", false},
		{"202601", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.token); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"2026-01", "2026-02"},
		{"2025-12", "2026-01"},
	}
	for _, tt := range tests {
		if got := Next(tt.token); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

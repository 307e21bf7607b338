package storage

import "testing"

func TestMatchLabel(t *testing.T) {
	tests := []struct {
		query, label string
		want         bool
	}{
		{"be%2:42:03::", "be%2:42:03::", true},
		{"be%2:42:03::", "be%2:42:09::", false},
		{"be%*", "be%2:42:09::", true},
		{"be%*", "bank%1:14:00::", false},
		{"*", "anything", true},
		{"bank%1:14:00::*", "bank%1:14:00::", true},
		{"", "be", false},
	}

	for _, tt := range tests {
		if got := MatchLabel(tt.query, tt.label); got != tt.want {
			t.Errorf("MatchLabel(%q, %q) = %v, want %v", tt.query, tt.label, got, tt.want)
		}
	}
}

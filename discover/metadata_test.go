package discover

import (
	"testing"

	"github.com/toolrack/toolrack/unit"
)

func TestDisplayNameFromSource(t *testing.T) {
	tests := []struct {
		candidate string
		want      string
	}{
		{"code_fx_rates.yaml", "Code Fx Rates"},
		{"code10.yaml", "Code10"},
		{"code.yaml", "Code"},
		{"code_app_5.yaml", "Code App 5"},
		{"code__double.yaml", "Code  Double"},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			if got := DisplayNameFromSource(tt.candidate, DefaultSuffix); got != tt.want {
				t.Fatalf("DisplayNameFromSource(%q) = %q, want %q", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestNumericIDFromSource(t *testing.T) {
	tests := []struct {
		candidate string
		want      int
	}{
		{"code10.yaml", 10},
		{"code_app_5.yaml", 5},
		{"code2.yaml", 2},
		{"code007.yaml", 7},
		{"code_12_3.yaml", 12},
		{"code_alpha.yaml", unit.DefaultNumericID},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			if got := NumericIDFromSource(tt.candidate, DefaultPrefix); got != tt.want {
				t.Fatalf("NumericIDFromSource(%q) = %d, want %d", tt.candidate, got, tt.want)
			}
		})
	}
}

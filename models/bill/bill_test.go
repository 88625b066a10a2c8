package bill

import (
	"math"
	"regexp"
	"testing"
)

func TestGenerateBillNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BILL-\d+-\d{4}$`)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		n := GenerateBillNumber()
		if !pattern.MatchString(n) {
			t.Errorf("GenerateBillNumber() = %v, want match %v", n, pattern)
		}
		seen[n] = true
	}
	if len(seen) < 2 {
		t.Errorf("GenerateBillNumber() produced no variation across calls")
	}
}

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		taxPercent float64
		wantTax    float64
		wantTotal  float64
	}{
		{"no tax", 100, 0, 0, 100},
		{"ten percent", 100, 10, 10, 110},
		{"fractional", 49.99, 18, 8.9982, 58.9882},
		{"zero amount", 0, 18, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, total := CalculateTotal(tt.amount, tt.taxPercent)
			if math.Abs(tax-tt.wantTax) > 1e-9 {
				t.Errorf("CalculateTotal() tax = %v, want %v", tax, tt.wantTax)
			}
			if math.Abs(total-tt.wantTotal) > 1e-9 {
				t.Errorf("CalculateTotal() total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

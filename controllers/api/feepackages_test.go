package api

import "testing"

func TestFeePackageRequest_Validate(t *testing.T) {
	negDays := -7
	days := 30
	tests := []struct {
		name string
		req  FeePackageRequest
		want string
	}{
		{"ok", FeePackageRequest{Name: "Gold", MonthlyFee: 49.99, DurationDays: &days}, ""},
		{"ok without duration", FeePackageRequest{Name: "Gold", MonthlyFee: 49.99}, ""},
		{"missing name", FeePackageRequest{MonthlyFee: 10}, "Name is required"},
		{"blank name", FeePackageRequest{Name: "   ", MonthlyFee: 10}, "Name is required"},
		{"negative fee", FeePackageRequest{Name: "Gold", MonthlyFee: -1}, "Monthly fee must be a positive number"},
		{"negative duration", FeePackageRequest{Name: "Gold", MonthlyFee: 10, DurationDays: &negDays}, "Duration days must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSupplementRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  SupplementRequest
		want string
	}{
		{"ok", SupplementRequest{Name: "Whey", Price: 29.99, Stock: 5}, ""},
		{"missing name", SupplementRequest{Price: 10}, "Name is required"},
		{"negative price", SupplementRequest{Name: "Whey", Price: -1}, "Price must be a positive number"},
		{"negative stock", SupplementRequest{Name: "Whey", Price: 10, Stock: -1}, "Stock must be zero or a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.validate(); got != tt.want {
				t.Errorf("validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@sub.domain.org", true},
		{"no-at-sign", false},
		{"spaces in@name.com", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := isValidEmail(tt.email); got != tt.want {
				t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"987-654-3210", true},
		{"(987) 654-3210", true},
		{"12345", false},
		{"98765432101", false},
		{"98765abcde", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := isValidPhone(tt.phone); got != tt.want {
				t.Errorf("isValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

package extraction

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12,50", 12.50},
		{"12.50", 12.50},
		{"-12.50", -12.50},
		{"+12.50", 12.50},
		{"(12.50)", -12.50},
		{"( 12.50 )", -12.50},
		{"€ 1.234,56", 1234.56},
		{"$1,234.56", 1234.56},
		{"£99.99", 99.99},
		{"1,234", 1234},
		{"1,234,567", 1234567},
		{"1.234", 1234},
		{"0.125", 0.125},
		{"45.00 DR", -45},
		{"45.00 CR", 45},
		{"-€9,99", -9.99},
		{"1 234,56", 1234.56},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Decimal comma and decimal dot renderings of the same value agree, and the
// parenthesized form is the negation.
func TestParseAmountConventionsAgree(t *testing.T) {
	comma, err := ParseAmount("12,50")
	if err != nil {
		t.Fatal(err)
	}
	dot, err := ParseAmount("12.50")
	if err != nil {
		t.Fatal(err)
	}
	paren, err := ParseAmount("(12.50)")
	if err != nil {
		t.Fatal(err)
	}
	if comma != dot {
		t.Errorf("comma and dot renderings disagree: %v vs %v", comma, dot)
	}
	if paren != -dot {
		t.Errorf("parenthesized amount = %v, want %v", paren, -dot)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "€", "N/A", "12-50"} {
		if _, err := ParseAmount(input); err == nil {
			t.Errorf("ParseAmount(%q) expected error, got none", input)
		}
	}
}

package extraction

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount extracts a signed amount from a statement string.
// Negative means debit. Handles currency symbols, thousands separators,
// decimal commas, surrounding parentheses, and CR/DR suffixes:
// "12,50", "12.50", "€ 1.234,56", "$1,234.56", "(12.50)", "45.00 DR".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false

	// Accounting style: parentheses mark a debit.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// CR marks a credit, DR a debit.
	switch upper := strings.ToUpper(s); {
	case strings.HasSuffix(upper, "CR"):
		s = strings.TrimSpace(s[:len(s)-2])
	case strings.HasSuffix(upper, "DR"):
		negative = true
		s = strings.TrimSpace(s[:len(s)-2])
	}

	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}

	for _, sym := range []string{"€", "$", "£", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	if s == "" {
		return 0, fmt.Errorf("no digits in amount")
	}

	s = normalizeSeparators(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if negative {
		value = -value
	}
	return value, nil
}

// normalizeSeparators resolves decimal comma vs thousands separators,
// returning a plain "1234.56" form.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// The later separator is the decimal point; the other is grouping.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by 1-2 digits is a decimal comma;
		// anything else is grouping ("1,234" or "1,234,567").
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// Dots are grouping only when they cannot be a decimal point.
		if strings.Count(s, ".") > 1 || (len(s)-lastDot-1 == 3 && s[:lastDot] != "0") {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

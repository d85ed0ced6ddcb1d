package extraction

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		loc   Locale
		want  time.Time
	}{
		{"ISO", "2024-03-12", LocaleAuto, date(2024, time.March, 12)},
		{"ISO slashes", "2024/03/12", LocaleAuto, date(2024, time.March, 12)},
		{"day first default", "12/03/2024", LocaleAuto, date(2024, time.March, 12)},
		{"ambiguous defaults day first", "03/04/2024", LocaleAuto, date(2024, time.April, 3)},
		{"ambiguous fr", "03/04/2024", LocaleFR, date(2024, time.April, 3)},
		{"ambiguous en", "03/04/2024", LocaleEN, date(2024, time.March, 4)},
		{"unambiguous day first wins over en", "13/04/2024", LocaleEN, date(2024, time.April, 13)},
		{"unambiguous month first", "04/13/2024", LocaleAuto, date(2024, time.April, 13)},
		{"two digit year", "12.03.24", LocaleAuto, date(2024, time.March, 12)},
		{"dashes", "12-03-2024", LocaleAuto, date(2024, time.March, 12)},
		{"french month abbrev", "21 déc. 2024", LocaleAuto, date(2024, time.December, 21)},
		{"french month full", "2 janvier 2024", LocaleAuto, date(2024, time.January, 2)},
		{"english day month", "15 Jan 2024", LocaleAuto, date(2024, time.January, 15)},
		{"english month day", "Jan 15, 2024", LocaleAuto, date(2024, time.January, 15)},
		{"august accent", "5 août 2023", LocaleAuto, date(2023, time.August, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.loc)
			if err != nil {
				t.Fatalf("ParseDate(%q, %q) error: %v", tt.input, tt.loc, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q, %q) = %v, want %v", tt.input, tt.loc, got, tt.want)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"31/02/2024",
		"2024-13-01",
		"00/00/0000",
		"32 Jan 2024",
	}
	for _, input := range inputs {
		if _, err := ParseDate(input, LocaleAuto); err == nil {
			t.Errorf("ParseDate(%q) expected error, got none", input)
		}
	}
}

// Re-parsing the canonical rendering of a resolved date must yield the same
// date under any locale.
func TestParseDateCanonicalRoundTrip(t *testing.T) {
	inputs := []string{"03/04/2024", "13/04/2024", "21 déc. 2024", "2024-03-12"}
	for _, input := range inputs {
		for _, loc := range []Locale{LocaleAuto, LocaleFR, LocaleEN} {
			first, err := ParseDate(input, loc)
			if err != nil {
				t.Fatalf("ParseDate(%q, %q) error: %v", input, loc, err)
			}
			second, err := ParseDate(first.Format("2006-01-02"), loc)
			if err != nil {
				t.Fatalf("re-parse of %q failed: %v", first.Format("2006-01-02"), err)
			}
			if !second.Equal(first) {
				t.Errorf("round trip of %q under %q: %v != %v", input, loc, second, first)
			}
		}
	}
}

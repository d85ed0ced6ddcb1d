package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Locale selects the convention for day/month-ambiguous numeric dates.
// When declared, it wins unconditionally for ambiguous tokens; when empty,
// day-first (French convention) is the documented default.
type Locale string

const (
	LocaleAuto Locale = ""   // day-first default
	LocaleFR   Locale = "fr" // day-first
	LocaleEN   Locale = "en" // month-first
)

// ParseLocale normalizes a locale hint string; unknown values fall back to auto.
func ParseLocale(s string) Locale {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fr", "fr-fr", "french":
		return LocaleFR
	case "en", "en-us", "english":
		return LocaleEN
	default:
		return LocaleAuto
	}
}

var numericDateRe = regexp.MustCompile(`^(\d{1,4})([/\-.])(\d{1,2})[/\-.](\d{1,4})$`)

// dayMonthNameRe matches "21 déc. 2024", "15 Jan 2024", "2 janvier 2024".
var dayMonthNameRe = regexp.MustCompile(`^(\d{1,2})[\s.]+([\p{L}]+)\.?[\s,]*(\d{2,4})?$`)

// monthNameDayRe matches "Jan 15, 2024", "December 2 2023".
var monthNameDayRe = regexp.MustCompile(`^([\p{L}]+)\.?\s+(\d{1,2})(?:[,\s]+(\d{2,4}))?$`)

// monthNames covers English and French month names and the abbreviations
// that appear in exported bank statements.
var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January, "janvier": time.January, "janv": time.January,
	"february": time.February, "feb": time.February, "fevrier": time.February, "février": time.February, "fevr": time.February, "févr": time.February, "fev": time.February, "fév": time.February,
	"march": time.March, "mar": time.March, "mars": time.March,
	"april": time.April, "apr": time.April, "avril": time.April, "avr": time.April,
	"may": time.May, "mai": time.May,
	"june": time.June, "jun": time.June, "juin": time.June,
	"july": time.July, "jul": time.July, "juillet": time.July, "juil": time.July,
	"august": time.August, "aug": time.August, "aout": time.August, "août": time.August,
	"september": time.September, "sep": time.September, "sept": time.September, "septembre": time.September,
	"october": time.October, "oct": time.October, "octobre": time.October,
	"november": time.November, "nov": time.November, "novembre": time.November,
	"december": time.December, "dec": time.December, "decembre": time.December, "déc": time.December, "décembre": time.December,
}

// ParseDate resolves a date token into a calendar date at midnight UTC.
//
// Formats are tried in order: ISO (YYYY-MM-DD), numeric day-first
// (DD/MM/YYYY), numeric month-first (MM/DD/YYYY), then month-name forms.
// When a numeric token is structurally valid under both conventions
// (e.g. 03/04/2024), the declared locale decides; without a locale the
// day-first reading wins. Re-parsing the canonical YYYY-MM-DD rendering of
// the result always yields the same date.
func ParseDate(s string, loc Locale) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		return parseNumericDate(m[1], m[3], m[4], loc)
	}
	if m := dayMonthNameRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthFromName(m[2]); ok {
			return dateFromParts(m[3], month, m[1])
		}
	}
	if m := monthNameDayRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthFromName(m[1]); ok {
			return dateFromParts(m[3], month, m[2])
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseNumericDate(first, second, third string, loc Locale) (time.Time, error) {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	c, _ := strconv.Atoi(third)

	// ISO: a four-digit leading field is always the year.
	if len(first) == 4 {
		if validDate(a, b, c) {
			return civilDate(a, time.Month(b), c), nil
		}
		return time.Time{}, fmt.Errorf("invalid ISO date %s-%s-%s", first, second, third)
	}

	year := normalizeYear(c)
	dayFirstOK := validDate(year, b, a)   // a=day, b=month
	monthFirstOK := validDate(year, a, b) // a=month, b=day

	switch {
	case dayFirstOK && monthFirstOK:
		if loc == LocaleEN {
			return civilDate(year, time.Month(a), b), nil
		}
		return civilDate(year, time.Month(b), a), nil
	case dayFirstOK:
		return civilDate(year, time.Month(b), a), nil
	case monthFirstOK:
		return civilDate(year, time.Month(a), b), nil
	default:
		return time.Time{}, fmt.Errorf("invalid date %s/%s/%s", first, second, third)
	}
}

func dateFromParts(yearStr string, month time.Month, dayStr string) (time.Time, error) {
	day, _ := strconv.Atoi(dayStr)
	year := time.Now().UTC().Year()
	if yearStr != "" {
		y, _ := strconv.Atoi(yearStr)
		year = normalizeYear(y)
	}
	if !validDate(year, int(month), day) {
		return time.Time{}, fmt.Errorf("invalid date %d %s %d", day, month, year)
	}
	return civilDate(year, month, day), nil
}

func monthFromName(s string) (time.Month, bool) {
	m, ok := monthNames[strings.TrimSuffix(strings.ToLower(s), ".")]
	return m, ok
}

func normalizeYear(y int) int {
	if y < 100 {
		return y + 2000
	}
	return y
}

// validDate checks calendar validity, including month lengths and leap years.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || year < 1900 || year > 2200 {
		return false
	}
	t := civilDate(year, time.Month(month), day)
	return t.Day() == day && t.Month() == time.Month(month)
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

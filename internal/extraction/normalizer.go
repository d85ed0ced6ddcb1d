package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Patterns for cleaning merchant descriptions.
	paymentPrefixRe = regexp.MustCompile(`(?i)^(pos |eftpos |visa |mastercard |amex |carte |cb |paypal \*)`)
	punctuationRe   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	// Trailing reference tokens: bare digit groups of length >= 3, optionally
	// prefixed with a ref marker ("REF0231", "4412", "no12345").
	referenceTokenRe = regexp.MustCompile(`^(?:ref|réf|no|id)?\d{3,}$`)
	refMarkerRe      = regexp.MustCompile(`^(?:ref|réf|no)$`)
)

// NormalizeMerchantKey derives the grouping key for a raw description:
// lower-cased, punctuation stripped, whitespace collapsed, with trailing
// numeric reference suffixes removed so that "NETFLIX.COM 4412" and
// "NETFLIX.COM 8839" collapse to the same key.
//
// Stripping is deliberately conservative: only trailing standalone digit
// groups (and their ref markers) are removed, never non-numeric suffixes,
// so distinct merchants sharing a prefix stay distinct.
func NormalizeMerchantKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = paymentPrefixRe.ReplaceAllString(s, "")
	s = punctuationRe.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	stripped := false
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if referenceTokenRe.MatchString(last) {
			tokens = tokens[:len(tokens)-1]
			stripped = true
			continue
		}
		// A bare ref marker left behind once its digits are gone.
		if stripped && refMarkerRe.MatchString(last) {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	return strings.Join(tokens, " ")
}

var titleCaser = cases.Title(language.English)

// FormatMerchantName formats a raw description for display: payment
// prefixes and reference numbers removed, words title-cased.
func FormatMerchantName(raw string) string {
	s := paymentPrefixRe.ReplaceAllString(strings.TrimSpace(raw), "")
	s = punctuationRe.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	for len(words) > 1 && referenceTokenRe.MatchString(strings.ToLower(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	for i, word := range words {
		if len(word) > 2 {
			words[i] = titleCaser.String(strings.ToLower(word))
		} else {
			words[i] = strings.ToUpper(word)
		}
	}
	out := strings.Join(words, " ")
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

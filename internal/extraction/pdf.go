package extraction

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxPDFTextBytes = 512 * 1024 // cap for extracted text

// statementLineRe matches a transaction line: date token, description span,
// trailing signed amount. Lines that do not match are non-transaction
// content (headers, footers, balances) and are discarded.
//
// Groups: (1) date, (2) description, (3) amount.
var statementLineRe = regexp.MustCompile(
	`(?i)^` +
		// Date: numeric (12/03/2024, 2024-03-12, 12.03.24) or day + month name
		// (21 déc. 2024, 15 Jan 2024) or month name + day (Jan 15, 2024).
		`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}` +
		`|\d{4}[/\-]\d{2}[/\-]\d{2}` +
		`|\d{1,2}[\s.]+\p{L}+\.?[\s,]*\d{2,4}` +
		`|\p{L}+\.?\s+\d{1,2}(?:[,\s]+\d{2,4})?)` +
		// Description, non-greedy.
		`\s+(.+?)\s+` +
		// Amount: optional sign/parenthesis, currency symbol, thousands
		// groups, comma or dot decimals, CR/DR suffix.
		`([-(]?\s*[€$£]?\s*\d{1,3}(?:[ .,]\d{3})*[.,]\d{1,2}\s*\)?(?:\s*(?:CR|DR))?)$`,
)

// nonTransactionKeywords flags summary and header lines that would otherwise
// match the transaction pattern (e.g. running balances).
var nonTransactionKeywords = []string{
	"solde", "balance", "total", "page", "relevé", "généré le", "résumé",
	"opening", "closing", "statement period",
}

// readPDF extracts text from the PDF and recovers transaction rows with
// line-based heuristics. The pdf library can panic on malformed input, so
// decoding is wrapped in recover and reported as UNSUPPORTED_FORMAT.
func readPDF(data []byte) ([]RawRow, error) {
	lines, err := extractPDFLines(data)
	if err != nil {
		return nil, unsupportedFormat("decode PDF", err)
	}
	return rowsFromLines(lines), nil
}

func extractPDFLines(data []byte) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during PDF decoding: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF reader: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract plain text: %w", err)
	}
	textBytes, err := io.ReadAll(io.LimitReader(plainText, maxPDFTextBytes))
	if err != nil {
		return nil, fmt.Errorf("read plain text: %w", err)
	}

	for _, line := range strings.Split(string(textBytes), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

// rowsFromLines applies the transaction-line heuristics to extracted text.
func rowsFromLines(lines []string) []RawRow {
	var rows []RawRow
	for i, line := range lines {
		if isNonTransactionLine(line) {
			continue
		}
		m := statementLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rows = append(rows, RawRow{
			Line: i + 1,
			Raw:  line,
			Fields: map[string]string{
				"date":        strings.TrimSpace(m[1]),
				"description": strings.TrimSpace(m[2]),
				"amount":      strings.TrimSpace(m[3]),
			},
		})
	}
	return rows
}

func isNonTransactionLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range nonTransactionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

package extraction

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// RawRow is one candidate transaction row recovered from a statement file.
// Fields are keyed by canonical column name: "date", "description", "amount".
type RawRow struct {
	Line   int
	Raw    string
	Fields map[string]string
}

// Column keyword patterns used to recognize a CSV header row.
var (
	dateHeaderKeywords   = []string{"date", "posted", "transaction"}
	descHeaderKeywords   = []string{"description", "memo", "merchant", "details", "payee", "libellé", "libelle"}
	amountHeaderKeywords = []string{"amount", "debit", "credit", "montant", "débit", "crédit"}
)

// DetectFormat sniffs the statement format from raw bytes.
func DetectFormat(data []byte) (domain.SourceFormat, error) {
	if len(data) == 0 {
		return "", unsupportedFormat("empty file", nil)
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return domain.FormatPDF, nil
	}
	if looksLikeDelimitedText(data) {
		return domain.FormatCSV, nil
	}
	return "", unsupportedFormat("file is neither a PDF nor delimited text", nil)
}

// ReadStatement decodes raw file bytes into candidate transaction rows.
// It fails with EMPTY_STATEMENT when no candidate rows are found.
func ReadStatement(data []byte, format domain.SourceFormat) ([]RawRow, error) {
	var (
		rows []RawRow
		err  error
	)
	switch format {
	case domain.FormatCSV:
		rows, err = readCSV(data)
	case domain.FormatPDF:
		rows, err = readPDF(data)
	default:
		return nil, unsupportedFormat("unknown statement format "+string(format), nil)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, emptyStatement("no candidate transaction rows found")
	}
	return rows, nil
}

// readCSV splits delimited text into rows, using the header row to locate
// the date/description/amount columns when one is present, and positional
// columns (date, description, amount) otherwise.
func readCSV(data []byte) ([]RawRow, error) {
	delim := sniffDelimiter(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, unsupportedFormat("malformed delimited text", err)
	}

	dateIdx, descIdx, amountIdx := 0, 1, 2
	start := 0
	if len(records) > 0 {
		if d, de, a, ok := matchHeader(records[0]); ok {
			dateIdx, descIdx, amountIdx = d, de, a
			start = 1
		}
	}

	var rows []RawRow
	for i := start; i < len(records); i++ {
		rec := records[i]
		if isBlankRecord(rec) {
			continue
		}
		row := RawRow{
			Line:   i + 1,
			Raw:    strings.Join(rec, string(delim)),
			Fields: map[string]string{},
		}
		if dateIdx < len(rec) {
			row.Fields["date"] = strings.TrimSpace(rec[dateIdx])
		}
		if descIdx < len(rec) {
			row.Fields["description"] = strings.TrimSpace(rec[descIdx])
		}
		if amountIdx < len(rec) {
			row.Fields["amount"] = strings.TrimSpace(rec[amountIdx])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// matchHeader reports the column indexes for date/description/amount if the
// record looks like a known header row.
func matchHeader(rec []string) (dateIdx, descIdx, amountIdx int, ok bool) {
	dateIdx, descIdx, amountIdx = -1, -1, -1
	for i, field := range rec {
		f := strings.ToLower(strings.TrimSpace(field))
		switch {
		case dateIdx < 0 && containsAny(f, dateHeaderKeywords):
			dateIdx = i
		case descIdx < 0 && containsAny(f, descHeaderKeywords):
			descIdx = i
		case amountIdx < 0 && containsAny(f, amountHeaderKeywords):
			amountIdx = i
		}
	}
	if dateIdx >= 0 && amountIdx >= 0 {
		if descIdx < 0 {
			descIdx = 1
		}
		return dateIdx, descIdx, amountIdx, true
	}
	return 0, 1, 2, false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// sniffDelimiter picks the delimiter that appears most consistently in the
// first few non-empty lines.
func sniffDelimiter(data []byte) rune {
	lines := strings.Split(string(data), "\n")
	counts := map[rune]int{',': 0, ';': 0, '\t': 0}
	seen := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for d := range counts {
			counts[d] += strings.Count(line, string(d))
		}
		seen++
		if seen >= 10 {
			break
		}
	}
	best, bestCount := ',', counts[',']
	for _, d := range []rune{';', '\t'} {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// looksLikeDelimitedText accepts data that is mostly printable and carries at
// least one known delimiter.
func looksLikeDelimitedText(data []byte) bool {
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	text := string(sample)
	printable := 0
	for _, r := range text {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	if float64(printable) < 0.95*float64(len([]rune(text))) {
		return false
	}
	return strings.ContainsAny(text, ",;\t")
}

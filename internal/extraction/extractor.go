package extraction

import (
	"context"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// ExtractTransactions converts raw rows into canonical transactions.
// Rows that fail date or amount parsing, or carry a zero amount, are
// collected as skipped-row diagnostics and never abort extraction.
func ExtractTransactions(rows []RawRow, format domain.SourceFormat, loc Locale) ([]domain.Transaction, []domain.SkippedRow) {
	var (
		txs     []domain.Transaction
		skipped []domain.SkippedRow
	)
	for _, row := range rows {
		tx, reason := extractOne(row, format, loc)
		if reason != "" {
			skipped = append(skipped, domain.SkippedRow{Line: row.Line, Raw: row.Raw, Reason: reason})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, skipped
}

func extractOne(row RawRow, format domain.SourceFormat, loc Locale) (domain.Transaction, string) {
	date, err := ParseDate(row.Fields["date"], loc)
	if err != nil {
		return domain.Transaction{}, "date: " + err.Error()
	}
	amount, err := ParseAmount(row.Fields["amount"])
	if err != nil {
		return domain.Transaction{}, "amount: " + err.Error()
	}
	if amount == 0 {
		return domain.Transaction{}, "zero amount"
	}
	desc := row.Fields["description"]
	if desc == "" {
		return domain.Transaction{}, "missing description"
	}
	return domain.Transaction{
		Date:               date,
		Amount:             amount,
		RawDescription:     desc,
		NormalizedMerchant: NormalizeMerchantKey(desc),
		Source:             format,
	}, ""
}

// ReadTransactions is the full extraction front half: format detection,
// row recovery, and canonicalization in one call.
func ReadTransactions(ctx context.Context, data []byte, formatHint domain.SourceFormat, loc Locale) ([]domain.Transaction, []domain.SkippedRow, domain.SourceFormat, error) {
	format := formatHint
	if format == "" {
		detected, err := DetectFormat(data)
		if err != nil {
			return nil, nil, "", err
		}
		format = detected
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, format, err
	}

	rows, err := ReadStatement(data, format)
	if err != nil {
		return nil, nil, format, err
	}

	txs, skipped := ExtractTransactions(rows, format, loc)
	if len(txs) == 0 {
		return nil, skipped, format, emptyStatement("no rows could be parsed into transactions")
	}
	return txs, skipped, format, nil
}

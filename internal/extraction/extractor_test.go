package extraction

import (
	"context"
	"strings"
	"testing"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

func TestExtractTransactions(t *testing.T) {
	rows := []RawRow{
		{Line: 1, Raw: "ok", Fields: map[string]string{"date": "01/02/2024", "description": "NETFLIX.COM 4412", "amount": "-12.99"}},
		{Line: 2, Raw: "bad date", Fields: map[string]string{"date": "notadate", "description": "X", "amount": "5.00"}},
		{Line: 3, Raw: "bad amount", Fields: map[string]string{"date": "01/02/2024", "description": "X", "amount": "n/a"}},
		{Line: 4, Raw: "zero", Fields: map[string]string{"date": "01/02/2024", "description": "X", "amount": "0.00"}},
		{Line: 5, Raw: "no desc", Fields: map[string]string{"date": "01/02/2024", "description": "", "amount": "5.00"}},
	}

	txs, skipped := ExtractTransactions(rows, domain.FormatCSV, LocaleAuto)
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if len(skipped) != 4 {
		t.Fatalf("got %d skipped rows, want 4", len(skipped))
	}

	tx := txs[0]
	if tx.Amount != -12.99 {
		t.Errorf("amount = %v", tx.Amount)
	}
	if tx.NormalizedMerchant != "netflix com" {
		t.Errorf("normalized merchant = %q", tx.NormalizedMerchant)
	}
	if tx.Source != domain.FormatCSV {
		t.Errorf("source = %q", tx.Source)
	}

	wantReasons := []string{"date:", "amount:", "zero amount", "missing description"}
	for i, prefix := range wantReasons {
		if !strings.HasPrefix(skipped[i].Reason, prefix) {
			t.Errorf("skipped[%d].Reason = %q, want prefix %q", i, skipped[i].Reason, prefix)
		}
	}
}

func TestReadTransactionsEndToEnd(t *testing.T) {
	data := []byte("Date,Description,Amount\n" +
		"01/02/2024,NETFLIX.COM 4412,-12.99\n" +
		"notadate,BROKEN ROW,-1.00\n" +
		"15/02/2024,SPOTIFY AB,-9.99\n")

	txs, skipped, format, err := ReadTransactions(context.Background(), data, "", LocaleAuto)
	if err != nil {
		t.Fatalf("ReadTransactions() error: %v", err)
	}
	if format != domain.FormatCSV {
		t.Errorf("format = %q", format)
	}
	if len(txs) != 2 {
		t.Errorf("got %d transactions, want 2", len(txs))
	}
	if len(skipped) != 1 {
		t.Errorf("got %d skipped rows, want 1", len(skipped))
	}
}

func TestReadTransactionsAllRowsBroken(t *testing.T) {
	data := []byte("Date,Description,Amount\n" +
		"notadate,BROKEN,-1.00\n" +
		"alsobad,BROKEN,-2.00\n")

	_, skipped, _, err := ReadTransactions(context.Background(), data, "", LocaleAuto)
	if !IsStatementError(err, ErrEmptyStatement) {
		t.Fatalf("error = %v, want code %s", err, ErrEmptyStatement)
	}
	if len(skipped) != 2 {
		t.Errorf("got %d skipped rows, want 2", len(skipped))
	}
}

func TestReadTransactionsUnsupported(t *testing.T) {
	_, _, _, err := ReadTransactions(context.Background(), []byte{0x00, 0x01}, "", LocaleAuto)
	if !IsStatementError(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want code %s", err, ErrUnsupportedFormat)
	}
}

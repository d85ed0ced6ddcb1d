// Package service orchestrates the statement analysis pipeline and exposes
// it over HTTP.
package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/analysis"
	"github.com/CoderArchie/Membership-Manager/internal/classify"
	"github.com/CoderArchie/Membership-Manager/internal/config"
	"github.com/CoderArchie/Membership-Manager/internal/domain"
	"github.com/CoderArchie/Membership-Manager/internal/extraction"
)

// AnalyzeOptions carries the caller's hints for one upload.
type AnalyzeOptions struct {
	// FormatHint skips sniffing when the caller knows the format.
	FormatHint domain.SourceFormat
	// LocaleHint overrides the configured statement locale.
	LocaleHint string
}

// Analyzer runs the full pipeline: statement reading, transaction
// extraction, merchant grouping, frequency inference, and recurrence
// classification. It is stateless; each call is an independent, eager
// pass over one uploaded statement.
type Analyzer struct {
	recurrence    *analysis.RecurrenceClassifier
	defaultLocale extraction.Locale
	logger        *zap.Logger
}

// NewAnalyzer wires the pipeline from configuration and the injected
// categorization capability.
func NewAnalyzer(cfg *config.Config, categorizer classify.Categorizer, logger *zap.Logger) *Analyzer {
	recurrence := analysis.NewRecurrenceClassifier(categorizer, analysis.RecurrenceConfig{
		RegularityThreshold: cfg.RegularityThreshold,
		ConfidenceFloor:     cfg.CategoryConfidenceFloor,
		CategorizerTimeout:  cfg.CategorizerTimeout,
		MonthlyFactors:      cfg.MonthlyFactors(),
	}, logger)
	return &Analyzer{
		recurrence:    recurrence,
		defaultLocale: extraction.ParseLocale(cfg.StatementLocale),
		logger:        logger,
	}
}

// Analyze turns raw statement bytes into labeled membership records plus
// skipped-row diagnostics. Fatal statement errors (unsupported format,
// empty statement) are returned with an empty record set; per-row and
// categorization failures never fail the call.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, opts AnalyzeOptions) ([]domain.MembershipRecord, []domain.SkippedRow, error) {
	locale := a.defaultLocale
	if opts.LocaleHint != "" {
		locale = extraction.ParseLocale(opts.LocaleHint)
	}

	txs, skipped, format, err := extraction.ReadTransactions(ctx, data, opts.FormatHint, locale)
	if err != nil {
		return nil, skipped, err
	}

	groups := analysis.GroupByMerchant(txs)

	var records []domain.MembershipRecord
	for _, group := range groups {
		dates := make([]time.Time, len(group.Transactions))
		for i, tx := range group.Transactions {
			dates[i] = tx.Date
		}
		freq := analysis.AnalyzeFrequency(group.Key, dates)

		record, ok := a.recurrence.Classify(ctx, group, freq)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].EstimatedMonthlyCost > records[j].EstimatedMonthlyCost
	})

	a.logger.Info("statement analyzed",
		zap.String("format", string(format)),
		zap.Int("transactions", len(txs)),
		zap.Int("merchants", len(groups)),
		zap.Int("memberships", len(records)),
		zap.Int("skipped_rows", len(skipped)))

	return records, skipped, nil
}

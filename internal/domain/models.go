// Package domain defines the entities shared across the statement analysis pipeline.
package domain

import (
	"strings"
	"time"
)

// SourceFormat tags which statement format a transaction came from.
// Diagnostic only; it carries no behavioral meaning downstream.
type SourceFormat string

const (
	FormatPDF SourceFormat = "pdf"
	FormatCSV SourceFormat = "csv"
)

// Transaction is a single statement row in canonical form.
// Immutable once extracted; Amount is signed, negative = debit.
type Transaction struct {
	Date               time.Time    `json:"date"`
	Amount             float64      `json:"amount"`
	RawDescription     string       `json:"raw_description"`
	NormalizedMerchant string       `json:"normalized_merchant"`
	Source             SourceFormat `json:"source_format"`
}

// MerchantGroup holds all transactions for one normalized merchant key,
// ordered by date ascending.
type MerchantGroup struct {
	Key          string        `json:"key"`
	Transactions []Transaction `json:"transactions"`
}

// Interval is the inferred payment frequency bucket for a merchant.
type Interval string

const (
	IntervalWeekly    Interval = "Weekly"
	IntervalBiWeekly  Interval = "BiWeekly"
	IntervalMonthly   Interval = "Monthly"
	IntervalQuarterly Interval = "Quarterly"
	IntervalYearly    Interval = "Yearly"
	IntervalIrregular Interval = "Irregular"
)

// FrequencyResult describes the dominant payment interval for one merchant.
// RegularityScore is in [0,1]; 1.0 means perfectly periodic spacing.
type FrequencyResult struct {
	Merchant        string   `json:"merchant"`
	Interval        Interval `json:"interval_kind"`
	RegularityScore float64  `json:"regularity_score"`
	Occurrences     int      `json:"occurrence_count"`
}

// Category is the expense category assigned to a membership.
type Category string

const (
	CategorySport     Category = "Sport"
	CategorySoftware  Category = "Software"
	CategoryStreaming Category = "Streaming"
	CategoryNews      Category = "News"
	CategoryServices  Category = "Services"
	CategoryOther     Category = "Other"
)

// ParseCategory maps a free-form category string (e.g. from an AI backend)
// to the enum, falling back to Other.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range []Category{
		CategorySport, CategorySoftware, CategoryStreaming, CategoryNews, CategoryServices,
	} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// MembershipRecord is the final labeled output for one merchant.
type MembershipRecord struct {
	ID                   string          `json:"id"`
	Merchant             string          `json:"merchant"`
	Category             Category        `json:"category"`
	CategoryDegraded     bool            `json:"category_degraded"`
	IsRecurring          bool            `json:"is_recurring"`
	Frequency            FrequencyResult `json:"frequency"`
	Transactions         []Transaction   `json:"transactions"`
	TotalSpent           float64         `json:"total_spent"`
	EstimatedMonthlyCost float64         `json:"estimated_monthly_cost"`
}

// SkippedRow records a statement row that could not be parsed.
// Collected as diagnostics; never fatal on its own.
type SkippedRow struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

package analysis

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/classify"
	"github.com/CoderArchie/Membership-Manager/internal/domain"
	"github.com/CoderArchie/Membership-Manager/internal/extraction"
)

// RecurrenceClassifier combines frequency regularity with an injected
// categorization capability to label merchant groups as memberships.
type RecurrenceClassifier struct {
	categorizer classify.Categorizer

	// Tunable business rules; see config.Load for the documented defaults.
	regularityThreshold float64
	confidenceFloor     float64
	categorizerTimeout  time.Duration
	monthlyFactors      map[domain.Interval]float64

	logger *zap.Logger
}

// RecurrenceConfig holds the classifier's tuning knobs.
type RecurrenceConfig struct {
	RegularityThreshold float64
	ConfidenceFloor     float64
	CategorizerTimeout  time.Duration
	MonthlyFactors      map[domain.Interval]float64
}

// DefaultMonthlyFactors converts per-interval average amounts to an
// estimated monthly cost.
func DefaultMonthlyFactors() map[domain.Interval]float64 {
	return map[domain.Interval]float64{
		domain.IntervalWeekly:    4.33,
		domain.IntervalBiWeekly:  2.17,
		domain.IntervalMonthly:   1,
		domain.IntervalQuarterly: 1.0 / 3.0,
		domain.IntervalYearly:    1.0 / 12.0,
	}
}

// NewRecurrenceClassifier wires the classifier with its categorization
// capability and tuning knobs.
func NewRecurrenceClassifier(categorizer classify.Categorizer, cfg RecurrenceConfig, logger *zap.Logger) *RecurrenceClassifier {
	if cfg.MonthlyFactors == nil {
		cfg.MonthlyFactors = DefaultMonthlyFactors()
	}
	if cfg.CategorizerTimeout <= 0 {
		cfg.CategorizerTimeout = 20 * time.Second
	}
	return &RecurrenceClassifier{
		categorizer:         categorizer,
		regularityThreshold: cfg.RegularityThreshold,
		confidenceFloor:     cfg.ConfidenceFloor,
		categorizerTimeout:  cfg.CategorizerTimeout,
		monthlyFactors:      cfg.MonthlyFactors,
		logger:              logger,
	}
}

// Classify labels one merchant group. The second return value is false for
// non-recurring merchants, which are excluded from the final result set
// (only subscriptions are shown). A merchant with a single transaction is
// never recurring, whatever its amount or category.
func (rc *RecurrenceClassifier) Classify(ctx context.Context, group domain.MerchantGroup, freq domain.FrequencyResult) (domain.MembershipRecord, bool) {
	recurring := freq.Interval != domain.IntervalIrregular &&
		freq.Occurrences >= 2 &&
		freq.RegularityScore >= rc.regularityThreshold
	if !recurring {
		return domain.MembershipRecord{}, false
	}

	category, degraded := rc.categorize(ctx, group)

	total := 0.0
	for _, tx := range group.Transactions {
		total += math.Abs(tx.Amount)
	}
	average := total / float64(len(group.Transactions))

	return domain.MembershipRecord{
		ID:                   uuid.New().String(),
		Merchant:             extraction.FormatMerchantName(group.Transactions[0].RawDescription),
		Category:             category,
		CategoryDegraded:     degraded,
		IsRecurring:          true,
		Frequency:            freq,
		Transactions:         group.Transactions,
		TotalSpent:           round2(total),
		EstimatedMonthlyCost: round2(average * rc.monthlyFactors[freq.Interval]),
	}, true
}

// categorize calls the injected capability under a bounded timeout.
// Failures and low-confidence answers degrade to Other with a diagnostic
// flag; they never abort the pipeline.
func (rc *RecurrenceClassifier) categorize(ctx context.Context, group domain.MerchantGroup) (domain.Category, bool) {
	samples := make([]string, 0, 3)
	for _, tx := range group.Transactions {
		samples = append(samples, tx.RawDescription)
		if len(samples) == 3 {
			break
		}
	}

	ctx, cancel := context.WithTimeout(ctx, rc.categorizerTimeout)
	defer cancel()

	category, confidence, err := rc.categorizer.Classify(ctx, group.Key, samples)
	if err != nil {
		rc.logger.Warn("categorization failed, degrading to Other",
			zap.String("merchant", group.Key),
			zap.Error(err))
		return domain.CategoryOther, true
	}
	if confidence < rc.confidenceFloor {
		return domain.CategoryOther, true
	}
	return category, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

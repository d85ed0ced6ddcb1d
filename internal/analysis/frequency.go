package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// Expected day gaps per interval bucket.
const (
	weeklyGap    = 7.0
	biweeklyGap  = 14.0
	monthlyGap   = 30.44
	quarterlyGap = 91.3
	yearlyGap    = 365.25
)

// AnalyzeFrequency infers the dominant payment interval for one merchant
// from its transaction dates (ascending).
//
// Successive day gaps are reduced to their median, then bucketed:
// up to ~18 days resolves to Weekly or BiWeekly by nearest expected gap,
// 25-35 days Monthly, 80-100 Quarterly, 350-380 Yearly. Gaps outside all
// buckets, or fewer than two occurrences, yield Irregular with a zero
// score. A single payment carries no frequency signal and is an expected
// case, not an error.
func AnalyzeFrequency(merchant string, dates []time.Time) domain.FrequencyResult {
	result := domain.FrequencyResult{
		Merchant:    merchant,
		Interval:    domain.IntervalIrregular,
		Occurrences: len(dates),
	}
	if len(dates) < 2 {
		return result
	}

	gaps := dayGaps(dates)
	if len(gaps) == 0 {
		return result
	}

	median := medianOf(gaps)
	interval, expected := bucketFor(median)
	if interval == domain.IntervalIrregular {
		return result
	}

	result.Interval = interval
	result.RegularityScore = regularity(gaps, expected)
	return result
}

func dayGaps(dates []time.Time) []float64 {
	var gaps []float64
	for i := 1; i < len(dates); i++ {
		days := dates[i].Sub(dates[i-1]).Hours() / 24
		if days > 0 {
			gaps = append(gaps, days)
		}
	}
	return gaps
}

func bucketFor(median float64) (domain.Interval, float64) {
	switch {
	case median <= 18:
		// Distinguish ~7 vs ~14 by nearest expected gap.
		if math.Abs(median-weeklyGap) <= math.Abs(median-biweeklyGap) {
			return domain.IntervalWeekly, weeklyGap
		}
		return domain.IntervalBiWeekly, biweeklyGap
	case median >= 25 && median <= 35:
		return domain.IntervalMonthly, monthlyGap
	case median >= 80 && median <= 100:
		return domain.IntervalQuarterly, quarterlyGap
	case median >= 350 && median <= 380:
		return domain.IntervalYearly, yearlyGap
	default:
		return domain.IntervalIrregular, 0
	}
}

// regularity is 1 - (gap standard deviation / expected gap), clamped to [0,1].
func regularity(gaps []float64, expected float64) float64 {
	score := 1 - stdDev(gaps)/expected
	return math.Max(0, math.Min(1, score))
}

func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdDev is the sample standard deviation; a single gap has zero spread.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

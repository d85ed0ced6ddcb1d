package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/classify"
	"github.com/CoderArchie/Membership-Manager/internal/config"
	"github.com/CoderArchie/Membership-Manager/internal/domain"
	"github.com/CoderArchie/Membership-Manager/internal/extraction"
)

func testConfig() *config.Config {
	return &config.Config{
		RegularityThreshold:     0.5,
		CategoryConfidenceFloor: 0.4,
		CategorizerTimeout:      time.Second,
		WeeklyToMonthly:         4.33,
		BiWeeklyToMonthly:       2.17,
		QuarterlyToMonthly:      1.0 / 3.0,
		YearlyToMonthly:         1.0 / 12.0,
	}
}

func testAnalyzer() *Analyzer {
	return NewAnalyzer(testConfig(), classify.NewRuleBased(), zap.NewNop())
}

const sampleCSV = "Date,Description,Amount\n" +
	"05/01/2024,NETFLIX.COM 4412,-12.99\n" +
	"05/02/2024,NETFLIX.COM 8839,-12.99\n" +
	"05/03/2024,NETFLIX.COM 9921,-12.99\n" +
	"10/01/2024,RESTAURANT LE GOURMET,-45.20\n" +
	"20/02/2024,BASIC-FIT 100234,-29.99\n" +
	"21/03/2024,BASIC-FIT 100234,-29.99\n" +
	"notadate,BROKEN ROW,-1.00\n"

func TestAnalyzeCSVStatement(t *testing.T) {
	analyzer := testAnalyzer()

	records, skipped, err := analyzer.Analyze(context.Background(), []byte(sampleCSV), AnalyzeOptions{})
	require.NoError(t, err)

	// One-off restaurant charge is excluded; the broken row is a diagnostic.
	require.Len(t, records, 2)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Reason, "date")

	// Sorted by estimated monthly cost, highest first.
	gym := records[0]
	assert.Equal(t, "Basic Fit", gym.Merchant)
	assert.Equal(t, domain.CategorySport, gym.Category)
	assert.True(t, gym.IsRecurring)
	assert.Equal(t, domain.IntervalMonthly, gym.Frequency.Interval)
	assert.Equal(t, 29.99, gym.EstimatedMonthlyCost)
	assert.Equal(t, 59.98, gym.TotalSpent)

	netflix := records[1]
	assert.Equal(t, "Netflix Com", netflix.Merchant)
	assert.Equal(t, domain.CategoryStreaming, netflix.Category)
	assert.Equal(t, 3, netflix.Frequency.Occurrences)
	assert.Equal(t, 12.99, netflix.EstimatedMonthlyCost)
	assert.NotEmpty(t, netflix.ID)
}

func TestAnalyzeUnsupportedInput(t *testing.T) {
	analyzer := testAnalyzer()

	_, _, err := analyzer.Analyze(context.Background(), []byte{0x00, 0x01, 0x02}, AnalyzeOptions{})
	require.Error(t, err)
	assert.True(t, extraction.IsStatementError(err, extraction.ErrUnsupportedFormat))
}

func TestAnalyzeEmptyStatement(t *testing.T) {
	analyzer := testAnalyzer()

	_, _, err := analyzer.Analyze(context.Background(), []byte("Date,Description,Amount\n"), AnalyzeOptions{})
	require.Error(t, err)
	assert.True(t, extraction.IsStatementError(err, extraction.ErrEmptyStatement))
}

// The locale hint flips the reading of day/month-ambiguous dates, which can
// change the inferred interval.
func TestAnalyzeLocaleHint(t *testing.T) {
	analyzer := testAnalyzer()

	// Under en these are Jan 3, Feb 3, Mar 3; under fr they are March 1, 2, 3.
	csv := "Date,Description,Amount\n" +
		"01/03/2024,SPOTIFY AB,-9.99\n" +
		"02/03/2024,SPOTIFY AB,-9.99\n" +
		"03/03/2024,SPOTIFY AB,-9.99\n"

	records, _, err := analyzer.Analyze(context.Background(), []byte(csv), AnalyzeOptions{LocaleHint: "en"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.IntervalMonthly, records[0].Frequency.Interval)

	records, _, err = analyzer.Analyze(context.Background(), []byte(csv), AnalyzeOptions{LocaleHint: "fr"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.IntervalWeekly, records[0].Frequency.Interval)
}

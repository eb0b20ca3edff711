package domain_test

import (
	"testing"
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"jan 31 plus one month lands on feb 28", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 plus one month in leap year lands on feb 29", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"feb 28 plus one month keeps day 28", date(2025, time.February, 28), 1, date(2025, time.March, 28)},
		{"oct 31 plus one month lands on nov 30", date(2025, time.October, 31), 1, date(2025, time.November, 30)},
		{"year rollover", date(2025, time.November, 15), 3, date(2026, time.February, 15)},
		{"twelve months is a calendar year", date(2025, time.February, 28), 12, date(2026, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AddMonths(tt.start, tt.months))
		})
	}
}

func TestFrequency_NextAfter(t *testing.T) {
	start := date(2025, time.January, 31)

	assert.Equal(t, date(2025, time.February, 1), domain.FrequencyDaily.NextAfter(start))
	assert.Equal(t, date(2025, time.February, 7), domain.FrequencyWeekly.NextAfter(start))
	assert.Equal(t, date(2025, time.February, 28), domain.FrequencyMonthly.NextAfter(start))
	assert.Equal(t, date(2025, time.April, 30), domain.FrequencyQuarterly.NextAfter(start))
	assert.Equal(t, date(2026, time.January, 31), domain.FrequencyYearly.NextAfter(start))
}

func TestFrequency_MonthlyDoesNotDriftAcrossShortMonths(t *testing.T) {
	// Advancing month by month from Jan 31 must stay within consecutive
	// months even when February shortens the day.
	d := date(2025, time.January, 31)
	months := []time.Month{time.February, time.March, time.April, time.May}
	for _, want := range months {
		d = domain.FrequencyMonthly.NextAfter(d)
		assert.Equal(t, want, d.Month())
	}
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, domain.ValidFrequency(domain.FrequencyQuarterly))
	assert.False(t, domain.ValidFrequency(domain.Frequency("fortnightly")))
}

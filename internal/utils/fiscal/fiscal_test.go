package fiscal_test

import (
	"testing"
	"time"

	"github.com/openfmis/ipsas_ledger/internal/utils/fiscal"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseYearEnd(t *testing.T) {
	month, day, err := fiscal.ParseYearEnd("06-30")
	assert.NoError(t, err)
	assert.Equal(t, 6, month)
	assert.Equal(t, 30, day)

	month, day, err = fiscal.ParseYearEnd("12-31")
	assert.NoError(t, err)
	assert.Equal(t, 12, month)
	assert.Equal(t, 31, day)

	// Leap-year February is a valid year-end.
	_, _, err = fiscal.ParseYearEnd("02-29")
	assert.NoError(t, err)

	invalid := []string{"", "junk", "13-01", "00-15", "04-31", "02-30", "6/30", "06"}
	for _, in := range invalid {
		_, _, err := fiscal.ParseYearEnd(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestGetFiscalPeriodCalendarYear(t *testing.T) {
	for m := 1; m <= 12; m++ {
		p, err := fiscal.GetFiscalPeriod(date(2026, m, 15), fiscal.CalendarYearEnd)
		assert.NoError(t, err)
		assert.Equal(t, 2026, p.FiscalYear)
		assert.Equal(t, m, p.Period)
	}
}

func TestGetFiscalPeriodJuneYearEnd(t *testing.T) {
	testCases := []struct {
		name       string
		date       time.Time
		fiscalYear int
		period     int
	}{
		{"first day of new fiscal year", date(2026, 7, 1), 2027, 1},
		{"mid first period", date(2026, 7, 15), 2027, 1},
		{"last day of fiscal year", date(2026, 6, 30), 2026, 12},
		{"January falls in period seven", date(2026, 1, 15), 2026, 7},
		{"December falls in period six", date(2026, 12, 10), 2027, 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := fiscal.GetFiscalPeriod(tc.date, "06-30")
			assert.NoError(t, err)
			assert.Equal(t, tc.fiscalYear, p.FiscalYear)
			assert.Equal(t, tc.period, p.Period)
		})
	}
}

func TestGetFiscalPeriodSeptemberYearEnd(t *testing.T) {
	p, err := fiscal.GetFiscalPeriod(date(2026, 9, 30), "09-30")
	assert.NoError(t, err)
	assert.Equal(t, 2026, p.FiscalYear)
	assert.Equal(t, 12, p.Period)

	p, err = fiscal.GetFiscalPeriod(date(2026, 10, 1), "09-30")
	assert.NoError(t, err)
	assert.Equal(t, 2027, p.FiscalYear)
	assert.Equal(t, 1, p.Period)
}

func TestGetFiscalPeriodInvalidYearEnd(t *testing.T) {
	_, err := fiscal.GetFiscalPeriod(date(2026, 1, 1), "13-40")
	assert.Error(t, err)
}

func TestCurrentFiscalYear(t *testing.T) {
	fy, err := fiscal.CurrentFiscalYear(date(2026, 8, 31), "06-30")
	assert.NoError(t, err)
	assert.Equal(t, 2027, fy)

	fy, err = fiscal.CurrentFiscalYear(date(2026, 8, 31), fiscal.CalendarYearEnd)
	assert.NoError(t, err)
	assert.Equal(t, 2026, fy)
}

// Package fiscal derives fiscal years and periods from calendar dates and an
// entity's configured fiscal-year-end.
package fiscal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CalendarYearEnd is the fiscal-year-end of entities on a calendar year.
const CalendarYearEnd = "12-31"

// Period is a fiscal year plus a 1-12 accounting period within it.
type Period struct {
	FiscalYear int
	Period     int
}

// ParseYearEnd validates an MM-DD fiscal-year-end and returns its month and day.
// The day must exist in the month (leap-year February is accepted).
func ParseYearEnd(fiscalYearEnd string) (month, day int, err error) {
	parts := strings.SplitN(fiscalYearEnd, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("fiscal year end must be in MM-DD format, got %q", fiscalYearEnd)
	}
	month, merr := strconv.Atoi(parts[0])
	day, derr := strconv.Atoi(parts[1])
	if merr != nil || derr != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("fiscal year end must be in MM-DD format, got %q", fiscalYearEnd)
	}
	// Normalization check: time.Date rolls invalid days into the next month.
	probe := time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(probe.Month()) != month || probe.Day() != day {
		return 0, 0, fmt.Errorf("fiscal year end %q is not a valid date", fiscalYearEnd)
	}
	return month, day, nil
}

// GetFiscalPeriod computes the fiscal year and period for a date given the
// entity's fiscal-year-end. For a calendar year-end the period is the
// calendar month; otherwise the period is offset from the fiscal-year start
// month, clamped to [1,12].
func GetFiscalPeriod(date time.Time, fiscalYearEnd string) (Period, error) {
	endMonth, endDay, err := ParseYearEnd(fiscalYearEnd)
	if err != nil {
		return Period{}, err
	}

	year, month := date.Year(), int(date.Month())

	if endMonth == 12 && endDay == 31 {
		return Period{FiscalYear: year, Period: month}, nil
	}

	fyEnd := time.Date(year, time.Month(endMonth), endDay, 23, 59, 59, 0, date.Location())

	var p Period
	if !date.After(fyEnd) {
		p.FiscalYear = year
		if month <= endMonth {
			p.Period = month + (12 - endMonth)
		} else {
			p.Period = month - endMonth
		}
	} else {
		p.FiscalYear = year + 1
		p.Period = month - endMonth
	}

	p.Period = clampPeriod(p.Period)
	return p, nil
}

// CurrentFiscalYear returns the fiscal year the given date falls in.
func CurrentFiscalYear(now time.Time, fiscalYearEnd string) (int, error) {
	p, err := GetFiscalPeriod(now, fiscalYearEnd)
	if err != nil {
		return 0, err
	}
	return p.FiscalYear, nil
}

func clampPeriod(p int) int {
	if p < 1 {
		return 1
	}
	if p > 12 {
		return 12
	}
	return p
}

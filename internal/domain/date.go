package domain

import "time"

// BudgetDateLayout is the fixed day-first format budget date ranges are
// stored in, at calendar-day granularity.
const BudgetDateLayout = "02/01/2006"

// ParseBudgetDay parses a budget range boundary into a UTC midnight time.
func ParseBudgetDay(s string) (time.Time, error) {
	return time.ParseInLocation(BudgetDateLayout, s, time.UTC)
}

// FormatBudgetDay renders a time as a budget range boundary.
func FormatBudgetDay(t time.Time) string {
	return t.Format(BudgetDateLayout)
}

package billing

import "time"

// DateLayout is the calendar-date format used everywhere dates cross the
// engine boundary as strings.
const DateLayout = "2006-01-02"

// NextDueDate turns a member's billing day-of-month into the next concrete
// due date relative to ref. If the day has not yet passed in ref's month
// the due date lands in that month; otherwise it rolls to the following
// month, with December rolling into January of the next year.
//
// The constructed date must exist exactly. Day 31 in a 30-day month, or 29
// in a non-leap February, fails with ErrInvalidDueDay rather than being
// clamped: the business rule is an exact day-of-month match or an explicit
// correction by the operator.
//
// This is the single authority for "when is this member next due"; no
// other code recomputes due dates.
func NextDueDate(billingDay int, ref time.Time) (time.Time, error) {
	if billingDay < 1 || billingDay > 31 {
		return time.Time{}, ErrInvalidDueDay
	}

	year, month := ref.Year(), ref.Month()
	if billingDay < ref.Day() {
		if month == time.December {
			year++
			month = time.January
		} else {
			month++
		}
	}

	due := time.Date(year, month, billingDay, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 31 becomes Mar 2); that counts as
	// an invalid day, not a rollover.
	if due.Day() != billingDay || due.Month() != month {
		return time.Time{}, ErrInvalidDueDay
	}
	return due, nil
}

// dateOnly returns t's calendar day as a UTC midnight. Every stored date
// in the system is a UTC midnight (time.Parse of YYYY-MM-DD, NextDueDate),
// so query boundaries must be built the same way or a non-UTC server shifts
// them into the neighboring day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

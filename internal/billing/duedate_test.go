package billing

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestNextDueDate_NoRollover day has not passed yet this month
func TestNextDueDate_NoRollover(t *testing.T) {
	got, err := NextDueDate(15, date(2024, time.January, 10))
	if err != nil {
		t.Fatalf("NextDueDate(15, 2024-01-10) error = %v, want nil", err)
	}
	if want := date(2024, time.January, 15); !got.Equal(want) {
		t.Errorf("NextDueDate(15, 2024-01-10) = %v, want %v", got, want)
	}
}

// TestNextDueDate_SameDay due day equal to reference day stays in the month
func TestNextDueDate_SameDay(t *testing.T) {
	got, err := NextDueDate(10, date(2024, time.January, 10))
	if err != nil {
		t.Fatalf("NextDueDate(10, 2024-01-10) error = %v, want nil", err)
	}
	if want := date(2024, time.January, 10); !got.Equal(want) {
		t.Errorf("NextDueDate(10, 2024-01-10) = %v, want %v", got, want)
	}
}

// TestNextDueDate_Rollover day already passed, rolls to next month
func TestNextDueDate_Rollover(t *testing.T) {
	got, err := NextDueDate(15, date(2024, time.January, 20))
	if err != nil {
		t.Fatalf("NextDueDate(15, 2024-01-20) error = %v, want nil", err)
	}
	if want := date(2024, time.February, 15); !got.Equal(want) {
		t.Errorf("NextDueDate(15, 2024-01-20) = %v, want %v", got, want)
	}
}

// TestNextDueDate_YearRollover December rolls into January of next year
func TestNextDueDate_YearRollover(t *testing.T) {
	got, err := NextDueDate(5, date(2024, time.December, 10))
	if err != nil {
		t.Fatalf("NextDueDate(5, 2024-12-10) error = %v, want nil", err)
	}
	if want := date(2025, time.January, 5); !got.Equal(want) {
		t.Errorf("NextDueDate(5, 2024-12-10) = %v, want %v", got, want)
	}
}

// TestNextDueDate_InvalidDay days that do not exist in the target month
func TestNextDueDate_InvalidDay(t *testing.T) {
	testCases := []struct {
		day int
		ref time.Time
	}{
		{31, date(2024, time.February, 10)}, // leap February still has 29 days
		{29, date(2023, time.February, 1)},  // non-leap February
		{31, date(2024, time.April, 1)},     // 30-day month
		{30, date(2024, time.February, 10)}, // 30 never fits February
	}

	for _, tc := range testCases {
		_, err := NextDueDate(tc.day, tc.ref)
		if !errors.Is(err, ErrInvalidDueDay) {
			t.Errorf("NextDueDate(%d, %v) error = %v, want ErrInvalidDueDay", tc.day, tc.ref, err)
		}
	}
}

// TestNextDueDate_LastDayOfLongMonth day 31 on March 31 is due that same
// day, not an error and not a rollover into April
func TestNextDueDate_LastDayOfLongMonth(t *testing.T) {
	got, err := NextDueDate(31, date(2024, time.March, 31))
	if err != nil {
		t.Fatalf("NextDueDate(31, 2024-03-31) error = %v, want nil", err)
	}
	if want := date(2024, time.March, 31); !got.Equal(want) {
		t.Errorf("NextDueDate(31, 2024-03-31) = %v, want %v", got, want)
	}
}

// TestNextDueDate_LeapFebruary day 29 is fine in a leap year
func TestNextDueDate_LeapFebruary(t *testing.T) {
	got, err := NextDueDate(29, date(2024, time.February, 1))
	if err != nil {
		t.Fatalf("NextDueDate(29, 2024-02-01) error = %v, want nil", err)
	}
	if want := date(2024, time.February, 29); !got.Equal(want) {
		t.Errorf("NextDueDate(29, 2024-02-01) = %v, want %v", got, want)
	}
}

// TestNextDueDate_OutOfRange day must be 1..31
func TestNextDueDate_OutOfRange(t *testing.T) {
	for _, day := range []int{-1, 0, 32, 100} {
		_, err := NextDueDate(day, date(2024, time.June, 10))
		if !errors.Is(err, ErrInvalidDueDay) {
			t.Errorf("NextDueDate(%d) error = %v, want ErrInvalidDueDay", day, err)
		}
	}
}

// TestNextDueDate_AlwaysSameDayOfMonth for days 1..28 the result always
// exists and carries exactly the requested day, in the current or next month
func TestNextDueDate_AlwaysSameDayOfMonth(t *testing.T) {
	refs := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2023, time.February, 28),
		date(2024, time.June, 15),
		date(2024, time.December, 31),
	}

	for _, ref := range refs {
		for day := 1; day <= 28; day++ {
			got, err := NextDueDate(day, ref)
			if err != nil {
				t.Fatalf("NextDueDate(%d, %v) error = %v, want nil", day, ref, err)
			}
			if got.Day() != day {
				t.Errorf("NextDueDate(%d, %v) = %v, day != %d", day, ref, got, day)
			}
			monthsAhead := (got.Year()-ref.Year())*12 + int(got.Month()-ref.Month())
			if monthsAhead != 0 && monthsAhead != 1 {
				t.Errorf("NextDueDate(%d, %v) = %v, not in current or next month", day, ref, got)
			}
		}
	}
}

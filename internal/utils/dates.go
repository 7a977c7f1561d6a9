package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage format of every date column.
const DateLayout = "2006-01-02"

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders d in DateLayout.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// RentalDays counts the days of a rental with both the pickup and the return day included.
// A same-day rental is one day.
func RentalDays(start, end Date) (int, error) {
	diff := end.time().Sub(start.time())
	if diff < 0 {
		return 0, fmt.Errorf("return date must be on or after rental date")
	}
	return int(diff.Hours()/24) + 1, nil
}

// DurationLabel renders a day count the way the shop writes durations.
func DurationLabel(days int) string {
	return fmt.Sprintf("%d ngày", days)
}

package item

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/teranos/semval/errors"
)

// Calendar models.
const (
	Gregorian = 1
	Julian    = 2
)

// Precision says how many of the calendar fields of a Time are meaningful.
type Precision int

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionDay
	PrecisionTime
)

// Time is a calendar date with optional time of day. Fields beyond the
// precision are zero and are not serialized.
type Time struct {
	Model     int
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Second    int
	Precision Precision
}

func (Time) Kind() Kind { return KindTime }

func (t Time) Hash() string { return t.Serialize() }

// SortKey is the Julian day number, which orders dates across calendar
// models.
func (t Time) SortKey() string {
	return strconv.FormatFloat(t.JulianDay(), 'f', -1, 64)
}

// Serialize writes "model/year[/month[/day[/hour/minute/second]]]".
func (t Time) Serialize() string {
	fields := []int{t.Model, t.Year}
	if t.Precision >= PrecisionMonth {
		fields = append(fields, t.Month)
	}
	if t.Precision >= PrecisionDay {
		fields = append(fields, t.Day)
	}
	if t.Precision >= PrecisionTime {
		fields = append(fields, t.Hour, t.Minute, t.Second)
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, "/")
}

func (Time) sealed() {}

// JulianDay returns the astronomical Julian day of t. Missing month and day
// count as the first.
func (t Time) JulianDay() float64 {
	month, day := t.Month, t.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	a := floorDiv(14-month, 12)
	y := t.Year + 4800 - a
	m := month + 12*a - 3

	jdn := day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4)
	if t.Model == Julian {
		jdn -= 32083
	} else {
		jdn += -floorDiv(y, 100) + floorDiv(y, 400) - 32045
	}
	frac := (float64(t.Hour)-12)/24 + float64(t.Minute)/1440 + float64(t.Second)/86400
	return math.Round((float64(jdn)+frac)*1e6) / 1e6
}

// ISO renders t as an ISO 8601 style string truncated at its precision.
func (t Time) ISO() string {
	switch t.Precision {
	case PrecisionYear:
		return fmt.Sprintf("%04d", t.Year)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", t.Year, t.Month)
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

func deserializeTime(s string) (Item, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || len(parts) == 5 || len(parts) == 6 || len(parts) > 7 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "time item %q", s)
	}
	vals := make([]int, 7)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidRequest, "time item %q: field %d", s, i)
		}
		vals[i] = n
	}
	t := Time{
		Model: vals[0], Year: vals[1], Month: vals[2], Day: vals[3],
		Hour: vals[4], Minute: vals[5], Second: vals[6],
	}
	switch len(parts) {
	case 2:
		t.Precision = PrecisionYear
	case 3:
		t.Precision = PrecisionMonth
	case 4:
		t.Precision = PrecisionDay
	default:
		t.Precision = PrecisionTime
	}
	return t, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
